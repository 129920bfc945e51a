package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/filingdesk/internal/clock"
	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
	"github.com/kolade-dev/filingdesk/internal/security"
	"golang.org/x/crypto/bcrypt"
)

// ChallengeTTL is how long an issued second-factor code stays valid. Expiry
// is evaluated lazily at verification time.
const ChallengeTTL = 5 * time.Minute

const challengeSentMessage = "A 6-digit verification code has been sent to your email."

type AuthCredentialStore interface {
	FindByID(id string) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	Insert(user *models.User) error
	SetChallenge(userID string, challenge models.Challenge) error
	ConsumeChallenge(userID string, code string, now time.Time) (bool, error)
}

// ChallengeIssued is the outcome of the first login step. Code carries the
// issued code only when the delivery channel echoes it (demo deployments).
type ChallengeIssued struct {
	Message string
	Code    string
}

type AuthService struct {
	users        AuthCredentialStore
	clock        clock.Clock
	sender       ChallengeSender
	generateCode func() (string, error)
}

func NewAuthService(users AuthCredentialStore, timeSource clock.Clock, sender ChallengeSender) *AuthService {
	return &AuthService{
		users:        users,
		clock:        timeSource,
		sender:       sender,
		generateCode: security.ChallengeCode,
	}
}

// WithCodeGenerator swaps the challenge-code source. Used by tests to pin
// codes without patching crypto/rand.
func (service *AuthService) WithCodeGenerator(generate func() (string, error)) *AuthService {
	service.generateCode = generate
	return service
}

// Register creates an Agent account with the fixed default permission set.
func (service *AuthService) Register(name string, emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if strings.TrimSpace(name) == "" {
		return models.User{}, ErrInvalidInput
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleAgent,
		Permissions:  models.AgentDefaultPermissions(),
		CreatedAt:    service.clock.Now(),
	}
	if err := service.users.Insert(&user); err != nil {
		return models.User{}, err
	}
	return user.Redacted(), nil
}

// Authenticate is the first login step: it checks the credentials, issues a
// fresh challenge (silently replacing any prior one) and hands the code to
// the delivery channel. Unknown email and wrong password fail identically.
func (service *AuthService) Authenticate(emailRaw string, password string) (ChallengeIssued, error) {
	email := NormalizeEmail(emailRaw)
	if email == "" {
		return ChallengeIssued{}, domain.ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ChallengeIssued{}, domain.ErrInvalidCredentials
		}
		return ChallengeIssued{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ChallengeIssued{}, domain.ErrInvalidCredentials
	}

	code, err := service.generateCode()
	if err != nil {
		return ChallengeIssued{}, fmt.Errorf("generate challenge code: %w", err)
	}

	challenge := models.Challenge{
		Code:      code,
		ExpiresAt: service.clock.Now().Add(ChallengeTTL),
	}
	if err := service.users.SetChallenge(user.ID, challenge); err != nil {
		return ChallengeIssued{}, err
	}

	echo, err := service.sender.Deliver(user.Email, code)
	if err != nil {
		return ChallengeIssued{}, fmt.Errorf("deliver challenge code: %w", err)
	}
	return ChallengeIssued{Message: challengeSentMessage, Code: echo}, nil
}

// VerifyChallenge is the second login step. The pending challenge is consumed
// on every attempt, so a failed or expired code cannot be retried and a
// verified code cannot be replayed. The returned principal carries no secret.
func (service *AuthService) VerifyChallenge(emailRaw string, code string) (models.User, error) {
	email := NormalizeEmail(emailRaw)
	if email == "" {
		return models.User{}, domain.ErrUnknownPrincipal
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return models.User{}, domain.ErrUnknownPrincipal
		}
		return models.User{}, err
	}

	consumed, err := service.users.ConsumeChallenge(user.ID, strings.TrimSpace(code), service.clock.Now())
	if err != nil {
		return models.User{}, err
	}
	if !consumed {
		return models.User{}, domain.ErrChallengeInvalid
	}
	return user.Redacted(), nil
}

// FindByID resolves a session subject back to its principal, secret redacted.
func (service *AuthService) FindByID(userID string) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	return user.Redacted(), nil
}

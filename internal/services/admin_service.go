package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kolade-dev/filingdesk/internal/clock"
	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
	"github.com/kolade-dev/filingdesk/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type AdminCredentialStore interface {
	Insert(user *models.User) error
	ListByRole(role string) ([]models.User, error)
	DeleteByIDAndRole(id string, role string) error
}

// AdminService manages administrator accounts.
type AdminService struct {
	users AdminCredentialStore
	clock clock.Clock
}

func NewAdminService(users AdminCredentialStore, timeSource clock.Clock) *AdminService {
	return &AdminService{users: users, clock: timeSource}
}

func (service *AdminService) ListAdmins() ([]models.User, error) {
	admins, err := service.users.ListByRole(models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	for index := range admins {
		admins[index] = admins[index].Redacted()
	}
	return admins, nil
}

// CreateAdmin provisions an Admin account with an explicit permission set and
// an unusable random placeholder secret; the real secret is set out of band.
func (service *AdminService) CreateAdmin(acting models.User, name string, emailRaw string, permissions []string) (models.User, error) {
	if err := Authorize(acting, models.PermissionCreateUsers); err != nil {
		return models.User{}, err
	}

	email := NormalizeEmail(emailRaw)
	if email == "" || strings.TrimSpace(name) == "" {
		return models.User{}, ErrInvalidInput
	}

	placeholder, err := security.PlaceholderSecret()
	if err != nil {
		return models.User{}, fmt.Errorf("generate placeholder secret: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash placeholder secret: %w", err)
	}

	admin := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleAdmin,
		Permissions:  append([]string(nil), permissions...),
		CreatedAt:    service.clock.Now(),
	}
	if err := service.users.Insert(&admin); err != nil {
		return models.User{}, err
	}
	return admin.Redacted(), nil
}

// DeleteAdmin irrevocably removes another administrator. Principals never
// delete themselves.
func (service *AdminService) DeleteAdmin(acting models.User, targetID string) error {
	if err := Authorize(acting, models.PermissionDeleteUsers); err != nil {
		return err
	}
	if targetID == acting.ID {
		return domain.ErrSelfDeletion
	}
	return service.users.DeleteByIDAndRole(targetID, models.RoleAdmin)
}

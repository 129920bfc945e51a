// Package store holds the process-local implementations of the credential
// and record stores. Every mutation runs under a single lock hold, so no
// caller ever observes an entity mid-update.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
)

type UserStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	emails map[string]string // normalized email -> user id
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[string]models.User),
		emails: make(map[string]string),
	}
}

func normalizeEmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (store *UserStore) CountUsers() (int64, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return int64(len(store.users)), nil
}

func (store *UserStore) FindByID(id string) (models.User, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	user, exists := store.users[id]
	if !exists {
		return models.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (store *UserStore) FindByNormalizedEmail(email string) (models.User, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	id, exists := store.emails[normalizeEmailKey(email)]
	if !exists {
		return models.User{}, domain.ErrNotFound
	}
	return store.users[id], nil
}

func (store *UserStore) Insert(user *models.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	emailKey := normalizeEmailKey(user.Email)
	if _, taken := store.emails[emailKey]; taken {
		return domain.ErrDuplicateEmail
	}
	store.users[user.ID] = *user
	store.emails[emailKey] = user.ID
	return nil
}

// SetChallenge attaches a pending challenge, replacing any prior unconsumed
// one. A user holds at most one challenge at a time.
func (store *UserStore) SetChallenge(userID string, challenge models.Challenge) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, exists := store.users[userID]
	if !exists {
		return domain.ErrNotFound
	}
	user.Challenge = challenge
	store.users[userID] = user
	return nil
}

// ConsumeChallenge clears the pending challenge in the same lock hold that
// evaluates it, whatever the outcome, and reports whether the submitted code
// matched an unexpired challenge. A second call with the same code finds
// nothing left to consume.
func (store *UserStore) ConsumeChallenge(userID string, code string, now time.Time) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, exists := store.users[userID]
	if !exists {
		return false, domain.ErrNotFound
	}

	challenge := user.Challenge
	if !challenge.Pending() {
		return false, nil
	}

	user.Challenge = models.Challenge{}
	store.users[userID] = user

	matched := challenge.Code == code && !now.After(challenge.ExpiresAt)
	return matched, nil
}

func (store *UserStore) ListByRole(role string) ([]models.User, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	matched := make([]models.User, 0)
	for _, user := range store.users {
		if user.Role == role {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (store *UserStore) DeleteByIDAndRole(id string, role string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, exists := store.users[id]
	if !exists || user.Role != role {
		return domain.ErrNotFound
	}
	delete(store.users, id)
	delete(store.emails, normalizeEmailKey(user.Email))
	return nil
}

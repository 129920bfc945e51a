package db

import (
	"errors"
	"strings"
	"time"

	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
	"gorm.io/gorm"
)

// UserStore is the SQLite-backed credential store. Challenge writes ride on
// single statements or transactions so concurrent logins cannot observe a
// half-written challenge.
type UserStore struct {
	database *gorm.DB
}

func NewUserStore(database *gorm.DB) *UserStore {
	return &UserStore{database: database}
}

func normalizedEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (store *UserStore) CountUsers() (int64, error) {
	var count int64
	if err := store.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (store *UserStore) FindByID(id string) (models.User, error) {
	var user models.User
	if err := store.database.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, domain.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (store *UserStore) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	err := store.database.
		Where("lower(trim(email)) = ?", normalizedEmail(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, domain.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (store *UserStore) Insert(user *models.User) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		var matched int64
		if err := tx.Model(&models.User{}).
			Where("lower(trim(email)) = ?", normalizedEmail(user.Email)).
			Count(&matched).Error; err != nil {
			return err
		}
		if matched > 0 {
			return domain.ErrDuplicateEmail
		}
		return tx.Create(user).Error
	})
}

func (store *UserStore) SetChallenge(userID string, challenge models.Challenge) error {
	result := store.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"challenge_code":       challenge.Code,
		"challenge_expires_at": challenge.ExpiresAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ConsumeChallenge clears any pending challenge in the same transaction that
// evaluates it and reports whether the submitted code matched before expiry.
func (store *UserStore) ConsumeChallenge(userID string, code string, now time.Time) (bool, error) {
	matched := false
	err := store.database.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		challenge := user.Challenge
		if !challenge.Pending() {
			return nil
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"challenge_code":       "",
			"challenge_expires_at": time.Time{},
		}).Error; err != nil {
			return err
		}

		matched = challenge.Code == code && !now.After(challenge.ExpiresAt)
		return nil
	})
	return matched, err
}

func (store *UserStore) ListByRole(role string) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := store.database.Where("role = ?", role).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (store *UserStore) DeleteByIDAndRole(id string, role string) error {
	result := store.database.Where("id = ? AND role = ?", id, role).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package db

import (
	"errors"
	"strings"
	"time"

	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
	"gorm.io/gorm"
)

// CompanyStore is the SQLite-backed compliance-record store.
type CompanyStore struct {
	database *gorm.DB
}

func NewCompanyStore(database *gorm.DB) *CompanyStore {
	return &CompanyStore{database: database}
}

func (store *CompanyStore) CountRecords() (int64, error) {
	var count int64
	if err := store.database.Model(&models.Company{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (store *CompanyStore) FindByID(id string) (models.Company, error) {
	var company models.Company
	if err := store.database.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Company{}, domain.ErrNotFound
		}
		return models.Company{}, err
	}
	return company, nil
}

func (store *CompanyStore) Insert(company *models.Company) error {
	return store.database.Transaction(func(tx *gorm.DB) error {
		var matched int64
		if err := tx.Model(&models.Company{}).
			Where("lower(trim(company_name)) = ? AND filing_year = ?",
				strings.ToLower(strings.TrimSpace(company.CompanyName)), company.FilingYear).
			Count(&matched).Error; err != nil {
			return err
		}
		if matched > 0 {
			return domain.ErrDuplicateRecord
		}
		return tx.Create(company).Error
	})
}

// UpdateStatus applies the transition and contact-date stamp as one
// transaction and returns the record as written.
func (store *CompanyStore) UpdateStatus(id string, status string, contactDate time.Time) (models.Company, error) {
	var updated models.Company
	err := store.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.Company{}).Where("id = ?", id).Updates(map[string]any{
			"returns_status":    status,
			"last_contact_date": contactDate,
		}).Error; err != nil {
			return err
		}

		updated.ReturnsStatus = status
		updated.LastContactDate = contactDate
		return nil
	})
	if err != nil {
		return models.Company{}, err
	}
	return updated, nil
}

func (store *CompanyStore) List() ([]models.Company, error) {
	companies := make([]models.Company, 0)
	if err := store.database.Order("created_at ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (store *CompanyStore) Search(term string) ([]models.Company, error) {
	needle := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	companies := make([]models.Company, 0)
	err := store.database.
		Where("lower(company_name) LIKE ? OR lower(client_email) LIKE ?", needle, needle).
		Order("created_at ASC").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

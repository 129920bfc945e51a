package store

import (
	"strings"
	"sync"
	"time"

	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
)

type CompanyStore struct {
	mu        sync.RWMutex
	companies map[string]models.Company
	order     []string // insertion order for List
}

func NewCompanyStore() *CompanyStore {
	return &CompanyStore{companies: make(map[string]models.Company)}
}

func normalizedCompanyName(companyName string) string {
	return strings.ToLower(strings.TrimSpace(companyName))
}

func (store *CompanyStore) CountRecords() (int64, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return int64(len(store.companies)), nil
}

func (store *CompanyStore) FindByID(id string) (models.Company, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	company, exists := store.companies[id]
	if !exists {
		return models.Company{}, domain.ErrNotFound
	}
	return company, nil
}

func (store *CompanyStore) Insert(company *models.Company) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.companies {
		if existing.FilingYear == company.FilingYear &&
			normalizedCompanyName(existing.CompanyName) == normalizedCompanyName(company.CompanyName) {
			return domain.ErrDuplicateRecord
		}
	}
	store.companies[company.ID] = *company
	store.order = append(store.order, company.ID)
	return nil
}

// UpdateStatus applies a status transition and stamps the contact date in a
// single lock hold; concurrent transitions on one record serialize here.
func (store *CompanyStore) UpdateStatus(id string, status string, contactDate time.Time) (models.Company, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	company, exists := store.companies[id]
	if !exists {
		return models.Company{}, domain.ErrNotFound
	}
	company.ReturnsStatus = status
	company.LastContactDate = contactDate
	store.companies[id] = company
	return company, nil
}

func (store *CompanyStore) List() ([]models.Company, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	listed := make([]models.Company, 0, len(store.order))
	for _, id := range store.order {
		listed = append(listed, store.companies[id])
	}
	return listed, nil
}

func (store *CompanyStore) Search(term string) ([]models.Company, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(term))
	matched := make([]models.Company, 0)
	for _, id := range store.order {
		company := store.companies[id]
		if strings.Contains(strings.ToLower(company.CompanyName), needle) ||
			strings.Contains(strings.ToLower(company.ClientEmail), needle) {
			matched = append(matched, company)
		}
	}
	return matched, nil
}

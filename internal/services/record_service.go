package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/filingdesk/internal/clock"
	"github.com/kolade-dev/filingdesk/internal/domain"
	"github.com/kolade-dev/filingdesk/internal/models"
)

type RecordStore interface {
	FindByID(id string) (models.Company, error)
	Insert(company *models.Company) error
	UpdateStatus(id string, status string, contactDate time.Time) (models.Company, error)
	List() ([]models.Company, error)
	Search(term string) ([]models.Company, error)
}

// RecordService exposes the compliance-record lifecycle: creation, manual
// status transitions and read access.
type RecordService struct {
	records RecordStore
	clock   clock.Clock
}

func NewRecordService(records RecordStore, timeSource clock.Clock) *RecordService {
	return &RecordService{records: records, clock: timeSource}
}

// Create adds a filing record for a company and year. The (company name,
// filing year) pair is unique regardless of letter casing; a rejected create
// leaves the store untouched.
func (service *RecordService) Create(acting models.User, companyName string, agentEmail string, clientEmail string, filingYear int, status string) (models.Company, error) {
	if err := Authorize(acting, models.PermissionCreateCompanyRecord); err != nil {
		return models.Company{}, err
	}
	if strings.TrimSpace(companyName) == "" || filingYear <= 0 {
		return models.Company{}, ErrInvalidInput
	}
	if !models.ValidReturnsStatus(status) {
		return models.Company{}, domain.ErrInvalidStatus
	}

	company := models.Company{
		ID:              uuid.NewString(),
		CompanyName:     strings.TrimSpace(companyName),
		AgentEmail:      strings.TrimSpace(agentEmail),
		ClientEmail:     strings.TrimSpace(clientEmail),
		FilingYear:      filingYear,
		ReturnsStatus:   status,
		LastContactDate: service.today(),
		CreatedAt:       service.clock.Now(),
	}
	if err := service.records.Insert(&company); err != nil {
		return models.Company{}, err
	}
	return company, nil
}

// SetStatus moves a record to any of the four statuses and stamps the contact
// date. Any authenticated principal may call it; the UI allows unrestricted
// manual override and the model matches.
func (service *RecordService) SetStatus(recordID string, status string) (models.Company, error) {
	if !models.ValidReturnsStatus(status) {
		return models.Company{}, domain.ErrInvalidStatus
	}
	return service.records.UpdateStatus(recordID, status, service.today())
}

func (service *RecordService) Get(recordID string) (models.Company, error) {
	return service.records.FindByID(recordID)
}

func (service *RecordService) List() ([]models.Company, error) {
	return service.records.List()
}

// Search matches the term case-insensitively against company names and
// client emails. No match is an empty result, not an error.
func (service *RecordService) Search(term string) ([]models.Company, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return service.records.List()
	}
	return service.records.Search(trimmed)
}

func (service *RecordService) today() time.Time {
	now := service.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

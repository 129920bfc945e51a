package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/filingdesk/internal/clock"
	"github.com/kolade-dev/filingdesk/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type SetupCredentialStore interface {
	CountUsers() (int64, error)
	Insert(user *models.User) error
}

type SetupRecordStore interface {
	CountRecords() (int64, error)
	Insert(company *models.Company) error
}

// SetupService seeds the demonstration data set into empty stores: the two
// reference accounts and a handful of filing records to explore the portal
// with. It never touches a store that already holds data.
type SetupService struct {
	users   SetupCredentialStore
	records SetupRecordStore
	clock   clock.Clock
}

func NewSetupService(users SetupCredentialStore, records SetupRecordStore, timeSource clock.Clock) *SetupService {
	return &SetupService{users: users, records: records, clock: timeSource}
}

func (service *SetupService) SeedDemoData() error {
	if err := service.seedUsers(); err != nil {
		return err
	}
	return service.seedCompanies()
}

func (service *SetupService) seedUsers() error {
	count, err := service.users.CountUsers()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		name        string
		email       string
		password    string
		role        string
		permissions []string
	}{
		{
			name:     "Admin User",
			email:    "admin@cac.gov.ng",
			password: "adminpassword",
			role:     models.RoleAdmin,
			permissions: []string{
				models.PermissionCreateUsers,
				models.PermissionDeleteUsers,
				models.PermissionCreateCompanyRecord,
				models.PermissionDeleteCompanyRecord,
				models.PermissionViewAllRecords,
			},
		},
		{
			name:        "CAC Agent",
			email:       "agent@cac.gov.ng",
			password:    "password123",
			role:        models.RoleAgent,
			permissions: models.AgentDefaultPermissions(),
		},
	}

	for _, seed := range seeds {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		user := models.User{
			ID:           uuid.NewString(),
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: string(passwordHash),
			Role:         seed.role,
			Permissions:  seed.permissions,
			CreatedAt:    service.clock.Now(),
		}
		if err := service.users.Insert(&user); err != nil {
			return fmt.Errorf("seed user %s: %w", seed.email, err)
		}
	}
	return nil
}

func (service *SetupService) seedCompanies() error {
	count, err := service.records.CountRecords()
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		companyName string
		clientEmail string
		contactDate string
		status      string
	}{
		{companyName: "Innovate Nigeria PLC", clientEmail: "client1@test.com", contactDate: "2024-03-01", status: models.StatusFiled},
		{companyName: "Lagos Tech Hub Ltd", clientEmail: "client2@test.com", contactDate: "2024-05-15", status: models.StatusPending},
		{companyName: "Abuja Logistics Inc.", clientEmail: "client3@test.com", contactDate: "2024-05-10", status: models.StatusAwaitingResponse},
		{companyName: "Port Harcourt Energy Corp", clientEmail: "client4@test.com", contactDate: "2024-04-20", status: models.StatusOverdue},
		{companyName: "Kano Textiles Co.", clientEmail: "client5@test.com", contactDate: "2024-05-18", status: models.StatusPending},
	}

	for _, seed := range seeds {
		contactDate, err := time.ParseInLocation("2006-01-02", seed.contactDate, time.UTC)
		if err != nil {
			return fmt.Errorf("parse seed contact date: %w", err)
		}
		company := models.Company{
			ID:              uuid.NewString(),
			CompanyName:     seed.companyName,
			AgentEmail:      "agent@cac.gov.ng",
			ClientEmail:     seed.clientEmail,
			FilingYear:      2023,
			ReturnsStatus:   seed.status,
			LastContactDate: contactDate,
			CreatedAt:       service.clock.Now(),
		}
		if err := service.records.Insert(&company); err != nil {
			return fmt.Errorf("seed company %s: %w", seed.companyName, err)
		}
	}
	return nil
}

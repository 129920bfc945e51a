package api

import (
	"time"

	"github.com/kolade-dev/filingdesk/internal/models"
	"github.com/kolade-dev/filingdesk/internal/reminder"
	"github.com/kolade-dev/filingdesk/internal/services"
)

const (
	authCookieName = "filingdesk_auth"
	contextUserKey = "current_user"

	authTokenTTL = 12 * time.Hour
)

type Handler struct {
	auth         *services.AuthService
	admins       *services.AdminService
	records      *services.RecordService
	drafts       reminder.Generator
	secretKey    []byte
	cookieSecure bool
}

func NewHandler(auth *services.AuthService, admins *services.AdminService, records *services.RecordService, drafts reminder.Generator, secretKey string, cookieSecure bool) *Handler {
	return &Handler{
		auth:         auth,
		admins:       admins,
		records:      records,
		drafts:       drafts,
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
	}
}

type credentialsInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type verifyInput struct {
	Email string `json:"email" form:"email"`
	Code  string `json:"code" form:"code"`
}

type companyInput struct {
	CompanyName   string `json:"company_name" form:"company_name"`
	AgentEmail    string `json:"agent_email" form:"agent_email"`
	ClientEmail   string `json:"client_email" form:"client_email"`
	FilingYear    int    `json:"filing_year" form:"filing_year"`
	ReturnsStatus string `json:"returns_status" form:"returns_status"`
}

type statusInput struct {
	ReturnsStatus string `json:"returns_status" form:"returns_status"`
}

type adminInput struct {
	Name        string   `json:"name" form:"name"`
	Email       string   `json:"email" form:"email"`
	Permissions []string `json:"permissions" form:"permissions"`
}

type userResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type companyResponse struct {
	ID              string `json:"id"`
	CompanyName     string `json:"company_name"`
	AgentEmail      string `json:"agent_email"`
	ClientEmail     string `json:"client_email"`
	FilingYear      int    `json:"filing_year"`
	ReturnsStatus   string `json:"returns_status"`
	LastContactDate string `json:"last_contact_date"`
}

func buildUserResponse(user models.User) userResponse {
	permissions := user.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return userResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: permissions,
	}
}

func buildCompanyResponse(company models.Company) companyResponse {
	return companyResponse{
		ID:              company.ID,
		CompanyName:     company.CompanyName,
		AgentEmail:      company.AgentEmail,
		ClientEmail:     company.ClientEmail,
		FilingYear:      company.FilingYear,
		ReturnsStatus:   company.ReturnsStatus,
		LastContactDate: company.LastContactDate.Format("2006-01-02"),
	}
}

func buildCompanyResponses(companies []models.Company) []companyResponse {
	responses := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		responses = append(responses, buildCompanyResponse(company))
	}
	return responses
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/kolade-dev/filingdesk/internal/clock"
	"github.com/kolade-dev/filingdesk/internal/models"
	"github.com/kolade-dev/filingdesk/internal/reminder"
	"github.com/kolade-dev/filingdesk/internal/services"
	"github.com/kolade-dev/filingdesk/internal/store"
)

const testSecretKey = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	users := store.NewUserStore()
	companies := store.NewCompanyStore()
	timeSource := clock.System{}

	if err := services.NewSetupService(users, companies, timeSource).SeedDemoData(); err != nil {
		t.Fatalf("seed demo data: %v", err)
	}

	auth := services.NewAuthService(users, timeSource, services.ConsoleSender{})
	admins := services.NewAdminService(users, timeSource)
	records := services.NewRecordService(companies, timeSource)
	drafts, err := reminder.NewTemplateGenerator()
	if err != nil {
		t.Fatalf("new draft generator: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, NewHandler(auth, admins, records, drafts, testSecretKey, false))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body any, cookies []*http.Cookie) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response, payload
}

func decodeInto(t *testing.T, payload []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("decode response %s: %v", payload, err)
	}
}

// loginAs walks the full two-step login for a seeded account and returns the
// session cookies. The demo delivery channel echoes the code back, so the
// test can complete the second step without a mailbox.
func loginAs(t *testing.T, app *fiber.App, email string, password string) []*http.Cookie {
	t.Helper()

	response, payload := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	}, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", email, response.StatusCode, payload)
	}

	var issued struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	decodeInto(t, payload, &issued)
	if issued.Code == "" {
		t.Fatalf("login %s: no echoed code in %s", email, payload)
	}

	response, payload = doJSON(t, app, http.MethodPost, "/api/auth/verify", fiber.Map{
		"email": email,
		"code":  issued.Code,
	}, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("verify %s: status %d: %s", email, response.StatusCode, payload)
	}

	cookies := response.Cookies()
	if len(cookies) == 0 {
		t.Fatalf("verify %s: no session cookie set", email)
	}
	return cookies
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	response, _ := doJSON(t, app, http.MethodGet, "/healthz", nil, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
}

func TestRegisterCreatesAgent(t *testing.T) {
	app := newTestApp(t)

	response, payload := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "New Agent",
		"email":    "new.agent@cac.gov.ng",
		"password": "longenoughpassword",
	}, nil)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", response.StatusCode, payload)
	}

	var created userResponse
	decodeInto(t, payload, &created)
	if created.Role != models.RoleAgent {
		t.Fatalf("expected role %q, got %q", models.RoleAgent, created.Role)
	}
	if len(created.Permissions) != 1 || created.Permissions[0] != models.PermissionViewAllRecords {
		t.Fatalf("unexpected default permissions: %v", created.Permissions)
	}
	if bytes.Contains(payload, []byte("password")) {
		t.Fatalf("response leaks credential material: %s", payload)
	}

	// The same email cannot register twice, whatever its casing.
	response, payload = doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "Copycat",
		"email":    "NEW.AGENT@cac.gov.ng",
		"password": "anotherpassword",
	}, nil)
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", response.StatusCode, payload)
	}
}

func TestLoginThenVerifyStartsSession(t *testing.T) {
	app := newTestApp(t)
	cookies := loginAs(t, app, "agent@cac.gov.ng", "password123")

	response, payload := doJSON(t, app, http.MethodGet, "/api/auth/me", nil, cookies)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", response.StatusCode, payload)
	}

	var me userResponse
	decodeInto(t, payload, &me)
	if me.Email != "agent@cac.gov.ng" {
		t.Fatalf("expected the agent session, got %q", me.Email)
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	app := newTestApp(t)

	response, payload := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "agent@cac.gov.ng",
		"password": "not-the-password",
	}, nil)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", response.StatusCode, payload)
	}
}

func TestVerifyWrongCodeIsUnauthorized(t *testing.T) {
	app := newTestApp(t)

	response, payload := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "agent@cac.gov.ng",
		"password": "password123",
	}, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d: %s", response.StatusCode, payload)
	}

	response, payload = doJSON(t, app, http.MethodPost, "/api/auth/verify", fiber.Map{
		"email": "agent@cac.gov.ng",
		"code":  "000000",
	}, nil)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", response.StatusCode, payload)
	}
}

func TestCompaniesRequireSession(t *testing.T) {
	app := newTestApp(t)
	response, _ := doJSON(t, app, http.MethodGet, "/api/companies", nil, nil)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}
}

func TestListAndSearchCompanies(t *testing.T) {
	app := newTestApp(t)
	cookies := loginAs(t, app, "agent@cac.gov.ng", "password123")

	response, payload := doJSON(t, app, http.MethodGet, "/api/companies", nil, cookies)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d: %s", response.StatusCode, payload)
	}
	var listed []companyResponse
	decodeInto(t, payload, &listed)
	if len(listed) != 5 {
		t.Fatalf("expected the 5 seeded records, got %d", len(listed))
	}

	response, payload = doJSON(t, app, http.MethodGet, "/api/companies?q=lagos", nil, cookies)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("search: status %d: %s", response.StatusCode, payload)
	}
	var matched []companyResponse
	decodeInto(t, payload, &matched)
	if len(matched) != 1 || matched[0].CompanyName != "Lagos Tech Hub Ltd" {
		t.Fatalf("expected the Lagos record, got %v", matched)
	}
}

func TestCreateCompanyNeedsPermission(t *testing.T) {
	app := newTestApp(t)
	input := fiber.Map{
		"company_name":   "Enugu Coal Works Ltd",
		"agent_email":    "agent@cac.gov.ng",
		"client_email":   "finance@enugucoal.ng",
		"filing_year":    2023,
		"returns_status": models.StatusPending,
	}

	agentCookies := loginAs(t, app, "agent@cac.gov.ng", "password123")
	response, payload := doJSON(t, app, http.MethodPost, "/api/companies", input, agentCookies)
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for the agent, got %d: %s", response.StatusCode, payload)
	}

	adminCookies := loginAs(t, app, "admin@cac.gov.ng", "adminpassword")
	response, payload = doJSON(t, app, http.MethodPost, "/api/companies", input, adminCookies)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for the admin, got %d: %s", response.StatusCode, payload)
	}
	var created companyResponse
	decodeInto(t, payload, &created)
	if created.ID == "" || created.CompanyName != "Enugu Coal Works Ltd" {
		t.Fatalf("unexpected created record: %v", created)
	}

	// The same company and filing year cannot be registered twice.
	response, payload = doJSON(t, app, http.MethodPost, "/api/companies", input, adminCookies)
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for the duplicate, got %d: %s", response.StatusCode, payload)
	}
}

func TestUpdateCompanyStatus(t *testing.T) {
	app := newTestApp(t)
	cookies := loginAs(t, app, "agent@cac.gov.ng", "password123")

	_, payload := doJSON(t, app, http.MethodGet, "/api/companies", nil, cookies)
	var listed []companyResponse
	decodeInto(t, payload, &listed)
	if len(listed) == 0 {
		t.Fatal("no seeded records to update")
	}
	target := listed[0]

	response, payload := doJSON(t, app, http.MethodPatch, "/api/companies/"+target.ID+"/status", fiber.Map{
		"returns_status": models.StatusFiled,
	}, cookies)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", response.StatusCode, payload)
	}
	var updated companyResponse
	decodeInto(t, payload, &updated)
	if updated.ReturnsStatus != models.StatusFiled {
		t.Fatalf("expected status %q, got %q", models.StatusFiled, updated.ReturnsStatus)
	}

	response, payload = doJSON(t, app, http.MethodPatch, "/api/companies/"+target.ID+"/status", fiber.Map{
		"returns_status": "Lost",
	}, cookies)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d: %s", response.StatusCode, payload)
	}

	response, payload = doJSON(t, app, http.MethodPatch, "/api/companies/missing/status", fiber.Map{
		"returns_status": models.StatusFiled,
	}, cookies)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown record, got %d: %s", response.StatusCode, payload)
	}
}

func TestCompanyReminderDraft(t *testing.T) {
	app := newTestApp(t)
	cookies := loginAs(t, app, "agent@cac.gov.ng", "password123")

	_, payload := doJSON(t, app, http.MethodGet, "/api/companies", nil, cookies)
	var listed []companyResponse
	decodeInto(t, payload, &listed)
	if len(listed) == 0 {
		t.Fatal("no seeded records to draft for")
	}
	target := listed[0]

	response, payload := doJSON(t, app, http.MethodPost, "/api/companies/"+target.ID+"/reminder", nil, cookies)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", response.StatusCode, payload)
	}
	var drafted struct {
		Draft string `json:"draft"`
	}
	decodeInto(t, payload, &drafted)
	if !bytes.Contains([]byte(drafted.Draft), []byte(target.CompanyName)) {
		t.Fatalf("draft does not mention %q:\n%s", target.CompanyName, drafted.Draft)
	}
}

func TestAdminLifecycle(t *testing.T) {
	app := newTestApp(t)
	adminCookies := loginAs(t, app, "admin@cac.gov.ng", "adminpassword")

	response, payload := doJSON(t, app, http.MethodPost, "/api/admins", fiber.Map{
		"name":        "Second Admin",
		"email":       "second.admin@cac.gov.ng",
		"permissions": []string{models.PermissionCreateCompanyRecord},
	}, adminCookies)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create admin: status %d: %s", response.StatusCode, payload)
	}
	var created userResponse
	decodeInto(t, payload, &created)
	if created.Role != models.RoleAdmin {
		t.Fatalf("expected role %q, got %q", models.RoleAdmin, created.Role)
	}

	response, payload = doJSON(t, app, http.MethodGet, "/api/admins", nil, adminCookies)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("list admins: status %d: %s", response.StatusCode, payload)
	}
	var admins []userResponse
	decodeInto(t, payload, &admins)
	if len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(admins))
	}

	// An admin cannot remove their own account.
	var self userResponse
	_, mePayload := doJSON(t, app, http.MethodGet, "/api/auth/me", nil, adminCookies)
	decodeInto(t, mePayload, &self)
	response, payload = doJSON(t, app, http.MethodDelete, "/api/admins/"+self.ID, nil, adminCookies)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for self deletion, got %d: %s", response.StatusCode, payload)
	}

	response, payload = doJSON(t, app, http.MethodDelete, "/api/admins/"+created.ID, nil, adminCookies)
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("delete admin: status %d: %s", response.StatusCode, payload)
	}
}

func TestAdminRoutesRequirePermission(t *testing.T) {
	app := newTestApp(t)
	agentCookies := loginAs(t, app, "agent@cac.gov.ng", "password123")

	response, payload := doJSON(t, app, http.MethodPost, "/api/admins", fiber.Map{
		"name":        "Sneaky Admin",
		"email":       "sneaky@cac.gov.ng",
		"permissions": []string{},
	}, agentCookies)
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", response.StatusCode, payload)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	cookies := loginAs(t, app, "agent@cac.gov.ng", "password123")

	response, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil, cookies)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("logout: status %d", response.StatusCode)
	}

	// The logout response carries an expired cookie; a client honoring it
	// no longer holds a session.
	cleared := response.Cookies()
	if len(cleared) == 0 || cleared[0].Value != "" {
		t.Fatal("expected logout to clear the session cookie")
	}

	response, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", nil, nil)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a cookie, got %d", response.StatusCode)
	}
}

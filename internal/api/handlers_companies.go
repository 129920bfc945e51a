package api

import "github.com/gofiber/fiber/v2"

// ListCompanies returns every record, or the case-insensitive matches when a
// ?q= term is present.
func (handler *Handler) ListCompanies(c *fiber.Ctx) error {
	companies, err := handler.records.Search(c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildCompanyResponses(companies))
}

func (handler *Handler) CreateCompany(c *fiber.Ctx) error {
	acting, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input companyInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	company, err := handler.records.Create(acting, input.CompanyName, input.AgentEmail, input.ClientEmail, input.FilingYear, input.ReturnsStatus)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildCompanyResponse(company))
}

// UpdateCompanyStatus applies a manual status override. Any authenticated
// principal may call it; no extra permission gates the transition.
func (handler *Handler) UpdateCompanyStatus(c *fiber.Ctx) error {
	var input statusInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	company, err := handler.records.SetStatus(c.Params("id"), input.ReturnsStatus)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildCompanyResponse(company))
}

func (handler *Handler) CompanyReminderDraft(c *fiber.Ctx) error {
	company, err := handler.records.Get(c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	draft, err := handler.drafts.GenerateReminderDraft(company)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "failed to generate reminder draft")
	}
	return c.JSON(fiber.Map{"draft": draft})
}

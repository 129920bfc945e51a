package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/verify", handler.VerifyChallenge)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	companies := api.Group("/companies", handler.AuthRequired)
	companies.Get("", handler.ListCompanies)
	companies.Post("", handler.CreateCompany)
	companies.Patch("/:id/status", handler.UpdateCompanyStatus)
	companies.Post("/:id/reminder", handler.CompanyReminderDraft)

	admins := api.Group("/admins", handler.AuthRequired)
	admins.Get("", handler.ListAdmins)
	admins.Post("", handler.CreateAdmin)
	admins.Delete("/:id", handler.DeleteAdmin)
}

package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListAdmins(c *fiber.Ctx) error {
	admins, err := handler.admins.ListAdmins()
	if err != nil {
		return respondServiceError(c, err)
	}

	responses := make([]userResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, buildUserResponse(admin))
	}
	return c.JSON(responses)
}

func (handler *Handler) CreateAdmin(c *fiber.Ctx) error {
	acting, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input adminInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	admin, err := handler.admins.CreateAdmin(acting, input.Name, input.Email, input.Permissions)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildUserResponse(admin))
}

func (handler *Handler) DeleteAdmin(c *fiber.Ctx) error {
	acting, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.admins.DeleteAdmin(acting, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

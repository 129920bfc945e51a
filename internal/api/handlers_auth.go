package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.auth.Register(input.Name, input.Email, input.Password)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildUserResponse(user))
}

// Login is the first authentication step: on valid credentials a challenge is
// issued and its delivery message returned. The code field is populated only
// by echoing delivery channels (demo deployments).
func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	issued, err := handler.auth.Authenticate(input.Email, input.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	response := fiber.Map{"message": issued.Message}
	if issued.Code != "" {
		response["code"] = issued.Code
	}
	return c.JSON(response)
}

// VerifyChallenge is the second authentication step; success starts a session.
func (handler *Handler) VerifyChallenge(c *fiber.Ctx) error {
	var input verifyInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.auth.VerifyChallenge(input.Email, input.Code)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(buildUserResponse(user))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(buildUserResponse(user))
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hostelhub_backend/internals/features/users/auth/dto"
	"hostelhub_backend/internals/features/users/auth/service"
	helper "hostelhub_backend/internals/helpers"
)

type AuthController struct {
	Service   *service.AuthService
	Validator *validator.Validate
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{Service: s, Validator: helper.NewValidator()}
}

// POST /auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := ac.Service.Login(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", out)
}

// POST /auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := ac.Service.Register(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, out.Message, out)
}

// GET /auth/verify?token=
func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	if err := ac.Service.VerifyEmail(c.UserContext(), c.Query("token")); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Email verified successfully. You can now log in.", nil)
}

// GET /auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	u, err := ac.Service.Me(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToMeResponse(u))
}

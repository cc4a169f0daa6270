package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/auth"
	"github.com/jhoicas/sistema-facturador/internal/application/dto"
)

// AuthHandler maneja login, logout y sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y contraseña son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me GET /api/auth/me: usuario de la sesión persistida.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, err := h.uc.CurrentUser(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if u == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "sin sesión activa"})
	}
	return c.JSON(u)
}

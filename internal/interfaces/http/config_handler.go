package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
	"github.com/jhoicas/sistema-facturador/internal/application/usecase"
)

// ConfigHandler configuración del emisor y gestión de usuarios (solo admin).
type ConfigHandler struct {
	settings *usecase.SettingsUseCase
	users    *usecase.UserUseCase
}

// NewConfigHandler construye el handler.
func NewConfigHandler(settings *usecase.SettingsUseCase, users *usecase.UserUseCase) *ConfigHandler {
	return &ConfigHandler{settings: settings, users: users}
}

// GetSettings GET /api/config
func (h *ConfigHandler) GetSettings(c *fiber.Ctx) error {
	out, err := h.settings.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings PUT /api/config
func (h *ConfigHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.settings.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListUsers GET /api/config/usuarios
func (h *ConfigHandler) ListUsers(c *fiber.Ctx) error {
	list, err := h.users.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateUser POST /api/config/usuarios
func (h *ConfigHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.SaveUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUser PUT /api/config/usuarios/:username
func (h *ConfigHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.SaveUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Update(c.UserContext(), c.Params("username"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser DELETE /api/config/usuarios/:username
func (h *ConfigHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("username")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-facturador/internal/application/dto"
)

// adminChecker rol vigente del usuario. Lo implementa *auth.AuthUseCase.
type adminChecker interface {
	IsAdmin(ctx context.Context, username string) (bool, error)
}

// sectionChecker contrato mínimo para autorizar secciones. Lo implementa *auth.AuthUseCase.
type sectionChecker interface {
	CanAccess(ctx context.Context, username, section string) (bool, error)
}

// RequireSection verifica que el usuario del token tenga acceso a la sección.
// El acceso se consulta contra el documento vigente, no contra el token.
// Usar después de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay usuario en el contexto.
//   - 403 si la sección no está permitida.
//   - 503 si no se pudo leer el documento.
func RequireSection(section string, checker sectionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := GetUsername(c)
		if username == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}

		ok, err := checker.CanAccess(c.UserContext(), username, section)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCESS_CHECK_FAILED",
				Message: "no se pudo verificar el acceso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SECTION_DENIED",
				Message: "sin acceso a la sección '" + section + "'",
			})
		}
		return c.Next()
	}
}

// RequireAdmin como RequireRole(admin), pero contra el rol guardado en el documento.
func RequireAdmin(checker adminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := GetUsername(c)
		if username == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}
		ok, err := checker.IsAdmin(c.UserContext(), username)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCESS_CHECK_FAILED",
				Message: "no se pudo verificar el acceso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requiere rol admin",
			})
		}
		return c.Next()
	}
}

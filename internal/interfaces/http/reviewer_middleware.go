package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// reviewerChecker es el contrato mínimo que necesita el middleware para verificar el rol.
// Lo implementa *identity.Service.
type reviewerChecker interface {
	RequireReviewer(ctx context.Context, userID string) (*entity.User, error)
}

// RequireReviewer corta la petición si el perfil del usuario (no el token) no es supervisor o admin.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 → sin usuario en sesión o perfil inexistente.
//   - 403 → rol usuario.
//   - 503 → el almacén de perfiles no respondió tras los reintentos.
//
// Un token que declara un rol que el perfil ya no tiene queda registrado.
func RequireReviewer(checker reviewerChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := checker.RequireReviewer(c.UserContext(), GetUserID(c))
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, domain.ErrForbidden):
			if role := GetRole(c); entity.IsReviewerRole(role) {
				log.Warn().Str("user_id", GetUserID(c)).Str("token_role", role).Msg("rol del token no coincide con el perfil")
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol supervisor o admin"})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no identificado"})
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ROLE_CHECK_FAILED", Message: "no se pudo verificar el rol, intente más tarde"})
		}
	}
}

package http_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Precios-api/internal/interfaces/http"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// buildReviewerApp expone /protected detrás de AuthMiddleware + RequireReviewer y devuelve el rol del token.
func buildReviewerApp(t *testing.T, roles map[string]string) *fiber.App {
	t.Helper()
	db := memory.New()
	repos := db.Repos()
	for id, role := range roles {
		require.NoError(t, repos.Users.Create(context.Background(), &entity.User{
			ID: id, Email: id + "@precios.test", Name: id, Role: role, CreatedAt: time.Now().UTC(),
		}))
	}
	ident := identity.NewService(repos.Users, identity.Config{Attempts: 1}, logger.Nop())
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireReviewer(ident, logger.Nop()), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRole(c))
	})
	return app
}

func reviewerGet(t *testing.T, app *fiber.App, userID, tokenRole string) int {
	t.Helper()
	resp := get(t, app, bearer(t, userID, tokenRole, testExpMin))
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRequireReviewer_PerfilDecideSobreElToken(t *testing.T) {
	degradado := uuid.NewString()
	supervisor := uuid.NewString()
	app := buildReviewerApp(t, map[string]string{
		degradado:  entity.RoleUsuario,
		supervisor: entity.RoleSupervisor,
	})

	// el token dice admin pero el perfil ya no lo es
	assert.Equal(t, http.StatusForbidden, reviewerGet(t, app, degradado, entity.RoleAdmin))
	// el token dice usuario pero el perfil es supervisor
	assert.Equal(t, http.StatusOK, reviewerGet(t, app, supervisor, entity.RoleUsuario))
}

func TestRequireReviewer_PerfilInexistente_Retorna401(t *testing.T) {
	app := buildReviewerApp(t, nil)
	assert.Equal(t, http.StatusUnauthorized, reviewerGet(t, app, uuid.NewString(), entity.RoleAdmin))
}

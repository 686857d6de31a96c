package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
	"github.com/jhoicas/Precios-api/pkg/logger"
	"github.com/jhoicas/Precios-api/pkg/retry"
)

// maxAttempts tope de consultas del perfil por llamada.
const maxAttempts = 3

// Config reintentos de la consulta de perfil.
type Config struct {
	Attempts int
	Delay    time.Duration
}

// Service resuelve el perfil del usuario que llama (rol y puntos) desde el almacén de perfiles.
// Solo reintenta ante domain.ErrUnavailable; no encontrado o no autorizado se devuelven de inmediato.
type Service struct {
	users repository.UserRepository
	retry retry.Config
	log   *logger.Logger
}

// NewService construye el servicio de identidad.
func NewService(users repository.UserRepository, cfg Config, log *logger.Logger) *Service {
	attempts := cfg.Attempts
	if attempts < 1 || attempts > maxAttempts {
		attempts = maxAttempts
	}
	s := &Service{users: users, log: log.Named("identity")}
	s.retry = retry.Config{
		MaxAttempts: attempts,
		Backoff:     retry.LinearBackoff(cfg.Delay),
		ShouldRetry: s.transient,
	}
	return s
}

func (s *Service) transient(err error) bool {
	if !errors.Is(err, domain.ErrUnavailable) {
		return false
	}
	s.log.Warn().Err(err).Msg("perfil no disponible, reintentando")
	return true
}

// Profile devuelve el perfil de userID. ErrUnauthorized si no hay usuario en sesión
// o si el perfil no existe.
func (s *Service) Profile(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := retry.DoWithResult(ctx, s.retry, func() (*entity.User, error) {
		return s.users.GetByID(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: perfil inexistente", domain.ErrUnauthorized)
	}
	return user, nil
}

// RequireReviewer devuelve el perfil si tiene rol supervisor o admin; si no, ErrForbidden.
func (s *Service) RequireReviewer(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsReviewer() {
		return nil, fmt.Errorf("%w: se requiere rol supervisor o admin", domain.ErrForbidden)
	}
	return user, nil
}

package repository

import (
	"context"

	"github.com/jhoicas/Precios-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para perfiles de usuario (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// AddPoints incremento atómico del saldo; false si el usuario no existe.
	AddPoints(ctx context.Context, id string, delta int64) (bool, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Precios-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe un comercio con ese nombre.
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Store, error)
	// FindOrCreateByName obtiene o inserta (no verificado) de forma atómica: a lo sumo
	// un comercio por nombre aunque haya llamadas concurrentes.
	FindOrCreateByName(ctx context.Context, name string, now time.Time) (*entity.Store, error)
	ListVerified(ctx context.Context) ([]*entity.Store, error)
	// MarkVerified devuelve false si el comercio no existe.
	MarkVerified(ctx context.Context, id string) (bool, error)
}

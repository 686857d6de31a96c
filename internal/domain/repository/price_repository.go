package repository

import (
	"context"

	"github.com/jhoicas/Precios-api/internal/domain/entity"
)

// PriceRepository puerto del libro de precios (todos los estados).
type PriceRepository interface {
	Create(ctx context.Context, price *entity.Price) error
	GetByID(ctx context.Context, id string) (*entity.Price, error)
	// ListPending precios pendientes, más recientes primero.
	ListPending(ctx context.Context) ([]*entity.Price, error)
	// ListVerifiedByProducts precios verificados de los productos dados,
	// ordenados por fecha de registro ascendente y luego por ID.
	ListVerifiedByProducts(ctx context.Context, productIDs []string) ([]*entity.Price, error)
	// ListRecentVerified los limit precios verificados más recientes.
	ListRecentVerified(ctx context.Context, limit int) ([]*entity.Price, error)
	// Resolve cambia el estado solo si el precio sigue pendiente (compare-and-swap).
	// Devuelve false si el precio no existe o ya no estaba pendiente.
	Resolve(ctx context.Context, id string, to entity.PriceState, reviewerID string) (bool, error)
}

// ValidationRepository puerto del registro de auditoría (solo inserción).
type ValidationRepository interface {
	Create(ctx context.Context, v *entity.Validation) error
	ListByPrice(ctx context.Context, priceID string) ([]*entity.Validation, error)
}

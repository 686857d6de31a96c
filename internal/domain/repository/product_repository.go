package repository

import (
	"context"

	"github.com/jhoicas/Precios-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicateBarcode si el código ya existe.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetByIDs lectura en lote; los IDs inexistentes se omiten del mapa.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// Search busca term en nombre o marca (sin distinguir mayúsculas) o como código exacto.
	Search(ctx context.Context, term string, limit int) ([]*entity.Product, error)
}

package memory

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. El código de barras es único cuando está presente.
type ProductRepo struct {
	s session
}

// Create inserta el producto o devuelve ErrDuplicateBarcode.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(func(t *tables) {
		if product.HasBarcode() {
			for _, p := range t.products {
				if p.Barcode == product.Barcode {
					err = domain.ErrDuplicateBarcode
					return
				}
			}
		}
		if _, ok := t.products[product.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		t.products[product.ID] = *product
	})
	return err
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Product
	r.s.read(func(t *tables) {
		if p, ok := t.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetByBarcode coincidencia exacta.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if barcode == "" {
		return nil, nil
	}
	var out *entity.Product
	r.s.read(func(t *tables) {
		for _, p := range t.products {
			if p.Barcode == barcode {
				out = &p
				return
			}
		}
	})
	return out, nil
}

// GetByIDs lectura en lote.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Product, len(ids))
	r.s.read(func(t *tables) {
		for _, id := range ids {
			if p, ok := t.products[id]; ok {
				out[id] = &p
			}
		}
	})
	return out, nil
}

// Search nombre o marca contienen term (plegado de mayúsculas Unicode) o barcode == term.
// Primero la coincidencia exacta por código, luego por fecha de creación descendente.
func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fold := cases.Fold()
	needle := fold.String(term)
	var out []*entity.Product
	r.s.read(func(t *tables) {
		for _, p := range t.products {
			if p.Barcode == term ||
				strings.Contains(fold.String(p.Name), needle) ||
				strings.Contains(fold.String(p.Brand), needle) {
				out = append(out, &p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if bi, bj := out[i].Barcode == term, out[j].Barcode == term; bi != bj {
			return bi
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

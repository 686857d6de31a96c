package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var (
	_ repository.PriceRepository      = (*PriceRepo)(nil)
	_ repository.ValidationRepository = (*ValidationRepo)(nil)
)

// PriceRepo libro de precios en memoria.
type PriceRepo struct {
	s session
}

// Create inserta el precio.
func (r *PriceRepo) Create(ctx context.Context, price *entity.Price) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(func(t *tables) {
		if _, ok := t.prices[price.ID]; ok {
			err = domain.ErrDuplicate
			return
		}
		t.prices[price.ID] = *price
	})
	return err
}

// GetByID obtiene un precio por ID; (nil, nil) si no existe.
func (r *PriceRepo) GetByID(ctx context.Context, id string) (*entity.Price, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Price
	r.s.read(func(t *tables) {
		if p, ok := t.prices[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PriceRepo) filter(keep func(p entity.Price) bool) []*entity.Price {
	var out []*entity.Price
	r.s.read(func(t *tables) {
		for _, p := range t.prices {
			if keep(p) {
				out = append(out, &p)
			}
		}
	})
	return out
}

func newestFirst(out []*entity.Price) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.After(out[j].RegisteredAt)
		}
		return out[i].ID > out[j].ID
	})
}

// ListPending precios pendientes, más recientes primero.
func (r *PriceRepo) ListPending(ctx context.Context) ([]*entity.Price, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.filter(func(p entity.Price) bool { return p.Pending() })
	newestFirst(out)
	return out, nil
}

// ListVerifiedByProducts verificados de los productos dados, registro ascendente.
func (r *PriceRepo) ListVerifiedByProducts(ctx context.Context, productIDs []string) ([]*entity.Price, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	out := r.filter(func(p entity.Price) bool {
		_, ok := wanted[p.ProductID]
		return ok && p.Verified()
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListRecentVerified los limit verificados más recientes.
func (r *PriceRepo) ListRecentVerified(ctx context.Context, limit int) ([]*entity.Price, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.filter(func(p entity.Price) bool { return p.Verified() })
	newestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Resolve compare-and-swap sobre el estado bajo el lock de escritura.
func (r *PriceRepo) Resolve(ctx context.Context, id string, to entity.PriceState, reviewerID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	swapped := false
	r.s.write(func(t *tables) {
		p, ok := t.prices[id]
		if !ok || !p.Pending() {
			return
		}
		p.State = to
		p.ReviewerID = reviewerID
		t.prices[id] = p
		swapped = true
	})
	return swapped, nil
}

// ValidationRepo registro de auditoría en memoria; una validación por precio.
type ValidationRepo struct {
	s session
}

// Create inserta la validación; ErrDuplicate si el precio ya tiene una.
func (r *ValidationRepo) Create(ctx context.Context, v *entity.Validation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(func(t *tables) {
		for _, existing := range t.validations {
			if existing.PriceID == v.PriceID {
				err = domain.ErrDuplicate
				return
			}
		}
		t.validations[v.ID] = *v
	})
	return err
}

// ListByPrice validaciones de un precio por fecha de decisión.
func (r *ValidationRepo) ListByPrice(ctx context.Context, priceID string) ([]*entity.Validation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entity.Validation
	r.s.read(func(t *tables) {
		for _, v := range t.validations {
			if v.PriceID == priceID {
				out = append(out, &v)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DecidedAt.Before(out[j].DecidedAt) })
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo comercios en memoria; el nombre es único.
type StoreRepo struct {
	s session
}

func findStoreByName(t *tables, name string) (entity.Store, bool) {
	for _, st := range t.stores {
		if st.Name == name {
			return st, true
		}
	}
	return entity.Store{}, false
}

// Create inserta el comercio o devuelve ErrDuplicate si el nombre ya existe.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(func(t *tables) {
		if _, ok := findStoreByName(t, store.Name); ok {
			err = domain.ErrDuplicate
			return
		}
		t.stores[store.ID] = *store
	})
	return err
}

// GetByID obtiene un comercio por ID; (nil, nil) si no existe.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Store
	r.s.read(func(t *tables) {
		if st, ok := t.stores[id]; ok {
			out = &st
		}
	})
	return out, nil
}

// GetByIDs lectura en lote.
func (r *StoreRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Store, len(ids))
	r.s.read(func(t *tables) {
		for _, id := range ids {
			if st, ok := t.stores[id]; ok {
				out[id] = &st
			}
		}
	})
	return out, nil
}

// FindOrCreateByName busca e inserta bajo el mismo lock de escritura.
func (r *StoreRepo) FindOrCreateByName(ctx context.Context, name string, now time.Time) (*entity.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out entity.Store
	r.s.write(func(t *tables) {
		if st, ok := findStoreByName(t, name); ok {
			out = st
			return
		}
		out = entity.Store{ID: uuid.NewString(), Name: name, CreatedAt: now}
		t.stores[out.ID] = out
	})
	return &out, nil
}

// ListVerified comercios verificados ordenados por nombre.
func (r *StoreRepo) ListVerified(ctx context.Context) ([]*entity.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entity.Store
	r.s.read(func(t *tables) {
		for _, st := range t.stores {
			if st.Verified {
				out = append(out, &st)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MarkVerified marca el comercio como verificado.
func (r *StoreRepo) MarkVerified(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	found := false
	r.s.write(func(t *tables) {
		st, ok := t.stores[id]
		if !ok {
			return
		}
		st.Verified = true
		t.stores[id] = st
		found = true
	})
	return found, nil
}

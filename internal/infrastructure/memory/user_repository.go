package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo perfiles en memoria; email único sin distinguir mayúsculas.
type UserRepo struct {
	s session
}

// Create inserta el usuario o devuelve ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(func(t *tables) {
		for _, u := range t.users {
			if strings.EqualFold(u.Email, user.Email) {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		t.users[user.ID] = *user
	})
	return err
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.User
	r.s.read(func(t *tables) {
		if u, ok := t.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

// GetByIDs lectura en lote.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]*entity.User, len(ids))
	r.s.read(func(t *tables) {
		for _, id := range ids {
			if u, ok := t.users[id]; ok {
				out[id] = &u
			}
		}
	})
	return out, nil
}

// GetByEmail busca por email; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.User
	r.s.read(func(t *tables) {
		for _, u := range t.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return
			}
		}
	})
	return out, nil
}

// AddPoints incremento bajo el lock de escritura.
func (r *UserRepo) AddPoints(ctx context.Context, id string, delta int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	found := false
	r.s.write(func(t *tables) {
		u, ok := t.users[id]
		if !ok {
			return
		}
		u.Points += delta
		t.users[id] = u
		found = true
	})
	return found, nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, name, address, verified, created_at`

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador sobre el pool o una transacción.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Verified, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un comercio; ErrDuplicate si el nombre ya existe.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, address, verified, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Address, s.Verified, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert store", err)
	}
	return nil
}

// GetByID obtiene un comercio por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get store", err)
	}
	return s, nil
}

func (r *StoreRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	var out []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, wrapErr("scan store", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return out, nil
}

// GetByIDs lectura en lote con ANY.
func (r *StoreRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Store, error) {
	out := make(map[string]*entity.Store, len(ids))
	ids = onlyUUIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	list, err := r.list(ctx, "get stores", `SELECT `+storeColumns+` FROM stores WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		out[s.ID] = s
	}
	return out, nil
}

// FindOrCreateByName inserta con ON CONFLICT DO NOTHING y relee: dos llamadas
// concurrentes con el mismo nombre terminan en la misma fila.
func (r *StoreRepo) FindOrCreateByName(ctx context.Context, name string, now time.Time) (*entity.Store, error) {
	insert := `
		INSERT INTO stores (id, name, address, verified, created_at)
		VALUES ($1, $2, '', false, $3)
		ON CONFLICT (name) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), name, now); err != nil {
		return nil, wrapErr("insert store", err)
	}
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE name = $1`, name))
	if err != nil {
		return nil, wrapErr("get store by name", err)
	}
	return s, nil
}

// ListVerified comercios verificados ordenados por nombre.
func (r *StoreRepo) ListVerified(ctx context.Context) ([]*entity.Store, error) {
	return r.list(ctx, "list verified stores", `SELECT `+storeColumns+` FROM stores WHERE verified ORDER BY name`)
}

// MarkVerified marca el comercio como verificado.
func (r *StoreRepo) MarkVerified(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `UPDATE stores SET verified = true WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("verify store", err)
	}
	return tag.RowsAffected() == 1, nil
}

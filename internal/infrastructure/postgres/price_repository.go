package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

const priceColumns = `id, product_id, store_id, user_id, amount, state, COALESCE(reviewer_id::text, ''), registered_at`

// PriceRepo implementación del puerto PriceRepository sobre PostgreSQL.
// amount es NUMERIC y se lee como decimal.Decimal gracias al codec registrado en NewPool.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador sobre el pool o una transacción.
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

func scanPrice(row pgx.Row) (*entity.Price, error) {
	var p entity.Price
	var state string
	if err := row.Scan(&p.ID, &p.ProductID, &p.StoreID, &p.UserID, &p.Amount, &state, &p.ReviewerID, &p.RegisteredAt); err != nil {
		return nil, err
	}
	p.State = entity.PriceState(state)
	return &p, nil
}

func (r *PriceRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Price, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	var out []*entity.Price
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, wrapErr("scan price", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return out, nil
}

// Create persiste un precio.
func (r *PriceRepo) Create(ctx context.Context, p *entity.Price) error {
	query := `
		INSERT INTO prices (id, product_id, store_id, user_id, amount, state, reviewer_id, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProductID, p.StoreID, p.UserID, p.Amount, string(p.State), p.ReviewerID, p.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert price", err)
	}
	return nil
}

// GetByID obtiene un precio por ID.
func (r *PriceRepo) GetByID(ctx context.Context, id string) (*entity.Price, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanPrice(r.q.QueryRow(ctx, `SELECT `+priceColumns+` FROM prices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get price", err)
	}
	return p, nil
}

// ListPending precios pendientes, más recientes primero.
func (r *PriceRepo) ListPending(ctx context.Context) ([]*entity.Price, error) {
	return r.list(ctx, "list pending prices",
		`SELECT `+priceColumns+` FROM prices WHERE state = $1 ORDER BY registered_at DESC, id DESC`,
		string(entity.PriceStatePending))
}

// ListVerifiedByProducts una sola consulta para todo el conjunto de productos.
func (r *PriceRepo) ListVerifiedByProducts(ctx context.Context, productIDs []string) ([]*entity.Price, error) {
	productIDs = onlyUUIDs(productIDs)
	if len(productIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list verified prices",
		`SELECT `+priceColumns+` FROM prices
		 WHERE state = $1 AND product_id = ANY($2::uuid[])
		 ORDER BY registered_at, id`,
		string(entity.PriceStateVerified), productIDs)
}

// ListRecentVerified los limit verificados más recientes.
func (r *PriceRepo) ListRecentVerified(ctx context.Context, limit int) ([]*entity.Price, error) {
	return r.list(ctx, "list recent prices",
		`SELECT `+priceColumns+` FROM prices WHERE state = $1 ORDER BY registered_at DESC, id DESC LIMIT $2`,
		string(entity.PriceStateVerified), limit)
}

// Resolve UPDATE condicionado a state = 'pendiente'; 0 filas = otro revisor llegó antes.
func (r *PriceRepo) Resolve(ctx context.Context, id string, to entity.PriceState, reviewerID string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query := `
		UPDATE prices SET state = $2, reviewer_id = $3
		WHERE id = $1 AND state = $4`
	tag, err := r.q.Exec(ctx, query, id, string(to), reviewerID, string(entity.PriceStatePending))
	if err != nil {
		return false, wrapErr("resolve price", err)
	}
	return tag.RowsAffected() == 1, nil
}

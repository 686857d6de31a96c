package postgres

import (
	"context"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var _ repository.ValidationRepository = (*ValidationRepo)(nil)

// ValidationRepo registro de auditoría; solo INSERT y SELECT.
type ValidationRepo struct {
	q Querier
}

// NewValidationRepository construye el adaptador sobre el pool o una transacción.
func NewValidationRepository(q Querier) *ValidationRepo {
	return &ValidationRepo{q: q}
}

// Create persiste la validación; validations_price_id_key impide una segunda por precio.
func (r *ValidationRepo) Create(ctx context.Context, v *entity.Validation) error {
	query := `
		INSERT INTO validations (id, price_id, reviewer_id, verdict, decided_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, v.ID, v.PriceID, v.ReviewerID, string(v.Verdict), v.DecidedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert validation", err)
	}
	return nil
}

// ListByPrice historial de un precio.
func (r *ValidationRepo) ListByPrice(ctx context.Context, priceID string) ([]*entity.Validation, error) {
	if !isUUID(priceID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, price_id, reviewer_id, verdict, decided_at
		FROM validations WHERE price_id = $1 ORDER BY decided_at`, priceID)
	if err != nil {
		return nil, wrapErr("list validations", err)
	}
	defer rows.Close()
	var out []*entity.Validation
	for rows.Next() {
		var v entity.Validation
		var verdict string
		if err := rows.Scan(&v.ID, &v.PriceID, &v.ReviewerID, &verdict, &v.DecidedAt); err != nil {
			return nil, wrapErr("scan validation", err)
		}
		v.Verdict = entity.Verdict(verdict)
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list validations", err)
	}
	return out, nil
}

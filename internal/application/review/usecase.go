package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/application/ports"
	"github.com/jhoicas/Precios-api/internal/application/rewards"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// UseCase flujo de revisión: un revisor aprueba o rechaza un precio pendiente.
type UseCase struct {
	tx       repository.TxRunner
	repos    repository.TxRepos
	identity *identity.Service
	metrics  ports.Metrics
	rewards  *rewards.Ledger
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, repos repository.TxRepos, ident *identity.Service, metrics ports.Metrics, log *logger.Logger) *UseCase {
	return &UseCase{
		tx:       tx,
		repos:    repos,
		identity: ident,
		metrics:  metrics,
		rewards:  rewards.NewLedger(repos.Users, metrics, log),
		log:      log.Named("review"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ReviewPrice aplica la decisión sobre un precio pendiente.
// El rol se resuelve desde el perfil del revisor. En una sola transacción: transición
// condicional del estado, validación de auditoría y, si se aprueba, PointsApprovedPrice
// para quien lo envió. ErrNotPending si otro revisor llegó antes.
func (uc *UseCase) ReviewPrice(ctx context.Context, callerID, priceID string, decision entity.Decision) (*dto.ReviewPriceResponse, error) {
	if !decision.Valid() {
		return nil, domain.ErrInvalidDecision
	}
	reviewer, err := uc.identity.RequireReviewer(ctx, callerID)
	if err != nil {
		return nil, err
	}

	var (
		price      *entity.Price
		validation *entity.Validation
		points     int64
	)
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Prices.GetByID(ctx, priceID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("precio %s: %w", priceID, domain.ErrNotFound)
		}
		ok, err := r.Prices.Resolve(ctx, p.ID, decision.TargetState(), reviewer.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotPending
		}
		p.State = decision.TargetState()
		p.ReviewerID = reviewer.ID

		v := &entity.Validation{
			ID:         uuid.New().String(),
			PriceID:    p.ID,
			ReviewerID: reviewer.ID,
			Verdict:    decision.Verdict(),
			DecidedAt:  uc.now().UTC(),
		}
		if err := r.Validations.Create(ctx, v); err != nil {
			return err
		}
		if decision == entity.DecisionApprove {
			if err := rewards.Credit(ctx, r.Users, p.UserID, rewards.PointsApprovedPrice); err != nil {
				return err
			}
			points = rewards.PointsApprovedPrice
		}
		price, validation = p, v
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PriceReviewed(string(validation.Verdict))
	uc.rewards.Credited(price.UserID, points)
	uc.log.Info().
		Str("price_id", price.ID).
		Str("reviewer_id", reviewer.ID).
		Str("submitter_id", price.UserID).
		Str("state", string(price.State)).
		Int64("points", points).
		Msg("precio revisado")

	return &dto.ReviewPriceResponse{
		Price:        dto.FromPrice(price),
		Validation:   dto.FromValidation(validation),
		PointsEarned: points,
	}, nil
}

// ListValidations historial de auditoría de un precio. Solo revisores.
func (uc *UseCase) ListValidations(ctx context.Context, callerID, priceID string) (*dto.ValidationListResponse, error) {
	if _, err := uc.identity.RequireReviewer(ctx, callerID); err != nil {
		return nil, err
	}
	price, err := uc.repos.Prices.GetByID(ctx, priceID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repos.Validations.ListByPrice(ctx, priceID)
	if err != nil {
		return nil, err
	}
	out := &dto.ValidationListResponse{Items: make([]dto.ValidationResponse, 0, len(list))}
	for _, v := range list {
		out.Items = append(out.Items, dto.FromValidation(v))
	}
	return out, nil
}

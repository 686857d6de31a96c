package rewards

import (
	"context"
	"fmt"

	"github.com/jhoicas/Precios-api/internal/application/ports"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// Tabla fija de premios, sin límite de frecuencia.
const (
	PointsApprovedPrice int64 = 10
	PointsNewProduct    int64 = 20
)

// Credit suma amount al saldo del usuario con un incremento atómico en el almacenamiento.
// Usar con el UserRepository de la misma transacción que el evento que origina el premio.
func Credit(ctx context.Context, users repository.UserRepository, userID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: puntos negativos", domain.ErrInvalidInput)
	}
	if userID == "" {
		return fmt.Errorf("%w: usuario requerido", domain.ErrInvalidInput)
	}
	ok, err := users.AddPoints(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("usuario %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

// Ledger acredita puntos fuera de una transacción de negocio y registra los
// premios ya confirmados por los casos de uso que usan Credit dentro de su transacción.
type Ledger struct {
	users   repository.UserRepository
	metrics ports.Metrics
	log     *logger.Logger
}

// NewLedger construye el libro de puntos.
func NewLedger(users repository.UserRepository, metrics ports.Metrics, log *logger.Logger) *Ledger {
	return &Ledger{users: users, metrics: metrics, log: log.Named("rewards")}
}

// CreditPoints acredita amount (>= 0) al usuario.
func (l *Ledger) CreditPoints(ctx context.Context, userID string, amount int64) error {
	if err := Credit(ctx, l.users, userID, amount); err != nil {
		return err
	}
	l.Credited(userID, amount)
	return nil
}

// Credited registra un premio ya confirmado. Llamar después del commit.
func (l *Ledger) Credited(userID string, amount int64) {
	if amount == 0 {
		return
	}
	l.metrics.PointsCredited(amount)
	l.log.Info().Str("user_id", userID).Int64("points", amount).Msg("puntos acreditados")
}

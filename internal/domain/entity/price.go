package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceState estado del ciclo de vida de un precio reportado.
type PriceState string

// Estados válidos. pendiente → verificado | rechazado; ambos terminales.
const (
	PriceStatePending  PriceState = "pendiente"
	PriceStateVerified PriceState = "verificado"
	PriceStateRejected PriceState = "rechazado"
)

// Price es un precio observado por un usuario para un producto en un comercio.
// State es la única fuente de verdad; Verified() se deriva de él.
type Price struct {
	ID           string
	ProductID    string
	StoreID      string
	UserID       string // quien lo reportó
	Amount       decimal.Decimal
	State        PriceState
	ReviewerID   string // vacío mientras está pendiente
	RegisteredAt time.Time
}

// Verified indica si el precio fue aprobado y entra en la agregación.
func (p *Price) Verified() bool {
	return p.State == PriceStateVerified
}

// Pending indica si el precio espera revisión.
func (p *Price) Pending() bool {
	return p.State == PriceStatePending
}

// Decision acción de un revisor sobre un precio pendiente.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid indica si la decisión es conocida.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// TargetState estado al que lleva la decisión.
func (d Decision) TargetState() PriceState {
	if d == DecisionApprove {
		return PriceStateVerified
	}
	return PriceStateRejected
}

// Verdict valor registrado en la validación de auditoría.
func (d Decision) Verdict() Verdict {
	if d == DecisionApprove {
		return VerdictApproved
	}
	return VerdictRejected
}

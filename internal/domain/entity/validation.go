package entity

import "time"

// Verdict resultado registrado en una validación.
type Verdict string

const (
	VerdictApproved Verdict = "aprobado"
	VerdictRejected Verdict = "rechazado"
)

// Validation registro inmutable de auditoría: una por precio revisado.
type Validation struct {
	ID         string
	PriceID    string
	ReviewerID string
	Verdict    Verdict
	DecidedAt  time.Time
}

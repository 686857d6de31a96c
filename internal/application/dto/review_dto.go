package dto

import "time"

// ReviewPriceRequest decisión del revisor: approve | reject.
type ReviewPriceRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

// ReviewPriceResponse resultado de la revisión.
type ReviewPriceResponse struct {
	Price        PriceResponse      `json:"price"`
	Validation   ValidationResponse `json:"validation"`
	PointsEarned int64              `json:"points_earned"`
}

// ValidationResponse registro de auditoría.
type ValidationResponse struct {
	ID         string    `json:"id"`
	PriceID    string    `json:"price_id"`
	ReviewerID string    `json:"reviewer_id"`
	Verdict    string    `json:"verdict"`
	DecidedAt  time.Time `json:"decided_at"`
}

// ValidationListResponse historial de validaciones de un precio.
type ValidationListResponse struct {
	Items []ValidationResponse `json:"items"`
}

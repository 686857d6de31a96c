package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitPriceRequest entrada para reportar un precio en un comercio existente.
type SubmitPriceRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	StoreID   string          `json:"store_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

// SubmitPriceByStoreNameRequest entrada para reportar un precio nombrando el comercio;
// si el comercio no existe se crea sin verificar.
type SubmitPriceByStoreNameRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	StoreName string          `json:"store_name" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

// PriceResponse salida de un precio.
type PriceResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	StoreID      string          `json:"store_id"`
	UserID       string          `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	State        string          `json:"state"`
	Verified     bool            `json:"verified"`
	ReviewerID   string          `json:"reviewer_id,omitempty"`
	RegisteredAt time.Time       `json:"registered_at"`
}

// PendingPriceResponse precio pendiente con producto, comercio y autor para la cola de revisión.
type PendingPriceResponse struct {
	PriceResponse
	Product *ProductResponse `json:"product,omitempty"`
	Store   *StoreResponse   `json:"store,omitempty"`
	User    *UserSummary     `json:"user,omitempty"`
}

// PendingQueueResponse cola de revisión.
type PendingQueueResponse struct {
	Items []PendingPriceResponse `json:"items"`
	Total int                    `json:"total"`
}

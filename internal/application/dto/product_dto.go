package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Barcode es opcional.
type CreateProductRequest struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Brand    string `json:"brand" validate:"required,min=1,max=200"`
	Category string `json:"category"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"barcode,omitempty"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Category  string    `json:"category"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductResponse producto creado y puntos ganados por el aporte.
type CreateProductResponse struct {
	Product      ProductResponse `json:"product"`
	PointsEarned int64           `json:"points_earned"`
}

// LowestPriceResponse precio verificado más bajo de un producto y su comercio.
type LowestPriceResponse struct {
	PriceID      string          `json:"price_id"`
	Amount       decimal.Decimal `json:"amount"`
	StoreID      string          `json:"store_id"`
	StoreName    string          `json:"store_name"`
	RegisteredAt time.Time       `json:"registered_at"`
}

// ProductWithPrice producto anotado con su precio más bajo (nil si no hay precios verificados).
type ProductWithPrice struct {
	ProductResponse
	LowestPrice *LowestPriceResponse `json:"lowest_price"`
}

// ProductPricesResponse detalle de producto con todos sus precios verificados (menor a mayor).
type ProductPricesResponse struct {
	Product ProductResponse      `json:"product"`
	Prices  []StorePriceResponse `json:"prices"`
}

// StorePriceResponse precio verificado con nombre de comercio.
type StorePriceResponse struct {
	PriceID      string          `json:"price_id"`
	Amount       decimal.Decimal `json:"amount"`
	StoreID      string          `json:"store_id"`
	StoreName    string          `json:"store_name"`
	RegisteredAt time.Time       `json:"registered_at"`
}

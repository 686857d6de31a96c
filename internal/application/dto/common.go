package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProductListResponse lista de productos anotados con su precio más bajo.
type ProductListResponse struct {
	Items []ProductWithPrice `json:"items"`
	Total int                `json:"total"`
}

// IDResponse respuesta mínima con el ID creado.
type IDResponse struct {
	ID string `json:"id"`
}

package dto

import "time"

// CreateStoreRequest entrada para alta de un comercio verificado (revisores).
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
}

// FindOrCreateStoreRequest entrada para obtener o crear un comercio por nombre exacto.
type FindOrCreateStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// StoreResponse salida de un comercio.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreListResponse lista de comercios.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
}

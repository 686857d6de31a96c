package dto

import "github.com/jhoicas/Precios-api/internal/domain/entity"

// FromProduct convierte la entidad a su representación de salida.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  p.Category,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
	}
}

// FromStore convierte la entidad a su representación de salida.
func FromStore(s *entity.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Verified:  s.Verified,
		CreatedAt: s.CreatedAt,
	}
}

// FromPrice convierte la entidad; Verified se deriva del estado.
func FromPrice(p *entity.Price) PriceResponse {
	return PriceResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		StoreID:      p.StoreID,
		UserID:       p.UserID,
		Amount:       p.Amount,
		State:        string(p.State),
		Verified:     p.Verified(),
		ReviewerID:   p.ReviewerID,
		RegisteredAt: p.RegisteredAt,
	}
}

// FromValidation convierte la entidad a su representación de salida.
func FromValidation(v *entity.Validation) ValidationResponse {
	return ValidationResponse{
		ID:         v.ID,
		PriceID:    v.PriceID,
		ReviewerID: v.ReviewerID,
		Verdict:    string(v.Verdict),
		DecidedAt:  v.DecidedAt,
	}
}

// FromUser convierte el perfil (sin password).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Points:    u.Points,
		CreatedAt: u.CreatedAt,
	}
}

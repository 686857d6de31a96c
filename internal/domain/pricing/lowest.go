package pricing

import "github.com/jhoicas/Precios-api/internal/domain/entity"

// Lowest devuelve el precio verificado de menor monto (servicio de dominio, sin estado).
// Empate: gana el registrado primero; si también coincide la fecha, el de ID menor.
// Los precios no verificados se ignoran. Devuelve nil si no hay candidatos.
func Lowest(prices []*entity.Price) *entity.Price {
	var best *entity.Price
	for _, p := range prices {
		if p == nil || !p.Verified() {
			continue
		}
		if best == nil || Better(p, best) {
			best = p
		}
	}
	return best
}

// LowestByProduct agrupa por producto y aplica Lowest a cada grupo.
// Los productos sin precio verificado no aparecen en el mapa.
func LowestByProduct(prices []*entity.Price) map[string]*entity.Price {
	out := make(map[string]*entity.Price)
	for _, p := range prices {
		if p == nil || !p.Verified() {
			continue
		}
		if cur, ok := out[p.ProductID]; !ok || Better(p, cur) {
			out[p.ProductID] = p
		}
	}
	return out
}

// Better indica si a debe preferirse sobre b como precio más bajo.
func Better(a, b *entity.Price) bool {
	if c := a.Amount.Cmp(b.Amount); c != 0 {
		return c < 0
	}
	if !a.RegisteredAt.Equal(b.RegisteredAt) {
		return a.RegisteredAt.Before(b.RegisteredAt)
	}
	return a.ID < b.ID
}

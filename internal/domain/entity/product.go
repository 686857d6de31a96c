package entity

import "time"

// Categorías sugeridas al registrar un producto (texto libre; no se valida contra esta lista).
var ProductCategories = []string{
	"general", "alimentos", "bebidas", "limpieza", "higiene",
	"mascotas", "electrodomesticos", "ropa", "otros",
}

// DefaultCategory se asigna cuando el contribuyente no elige categoría.
const DefaultCategory = "general"

// Product representa un producto del catálogo colaborativo.
// Barcode es único cuando está presente; un producto cargado a mano puede no tenerlo.
type Product struct {
	ID        string
	Barcode   string // vacío = sin código de barras
	Name      string
	Brand     string
	Category  string
	CreatedBy string // usuario que lo registró
	CreatedAt time.Time
}

// HasBarcode indica si el producto tiene código de barras.
func (p *Product) HasBarcode() bool {
	return p.Barcode != ""
}

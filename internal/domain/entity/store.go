package entity

import "time"

// Store representa un comercio donde se observan precios.
// Name identifica al comercio: un envío que nombra un comercio existente lo reutiliza.
// Solo los comercios verificados se ofrecen como destino en el flujo normal de carga.
type Store struct {
	ID        string
	Name      string
	Address   string
	Verified  bool
	CreatedAt time.Time
}

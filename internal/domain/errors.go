package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las categorías base (InvalidInput, NotFound, Conflict, Unauthorized, Forbidden, Unavailable)
// se comparan con errors.Is; los errores específicos envuelven su categoría.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrUnavailable  = errors.New("servicio no disponible")

	ErrInvalidAmount      = fmt.Errorf("%w: el precio debe ser mayor que cero", ErrInvalidInput)
	ErrInvalidDecision    = fmt.Errorf("%w: decisión desconocida", ErrInvalidInput)
	ErrDuplicateBarcode   = fmt.Errorf("%w: el código de barras ya existe", ErrConflict)
	ErrDuplicate          = fmt.Errorf("%w: recurso duplicado", ErrConflict)
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrNotPending         = fmt.Errorf("%w: el precio ya fue revisado", ErrConflict)
)

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Validación de movimientos: se detectan antes de cualquier llamada al store.
	ErrInvalidQuantity  = errors.New("la cantidad debe ser un entero positivo")
	ErrMissingItem      = errors.New("debe seleccionar un artículo válido")
	ErrInvalidDirection = errors.New("tipo de movimiento inválido")

	ErrInvalidCSV = errors.New("archivo CSV inválido")
)

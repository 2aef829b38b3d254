package entity

import (
	"math"
	"time"
)

// MaxQuantity tope de las columnas INTEGER de cantidad y punto de reorden.
const MaxQuantity = math.MaxInt32

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// Condición de la mercancía en entradas.
const (
	ConditionUsable   = "Layak Pakai"
	ConditionUnusable = "Tidak Layak Pakai"
)

// Motivos de salida.
const (
	ReasonNormalUse = "Pemakaian Normal"
	ReasonDamaged   = "Rusak"
	ReasonLost      = "Hilang"
	ReasonOther     = "Lainnya"
)

// StockMovement registro inmutable del ledger de un artículo.
type StockMovement struct {
	ID        string
	ItemID    string // vacío si el artículo ya no existe (movimiento huérfano)
	Type      string // in, out
	Quantity  int    // siempre positivo; el signo lo da Type
	Condition *string
	Reason    *string
	CreatedAt time.Time

	// Datos del artículo resueltos por JOIN (vacíos si es huérfano).
	ItemCode string
	ItemName string
}

// IsValidCondition indica si c es una condición de entrada conocida.
func IsValidCondition(c string) bool {
	return c == ConditionUsable || c == ConditionUnusable
}

// IsValidReason indica si r es un motivo de salida conocido.
func IsValidReason(r string) bool {
	switch r {
	case ReasonNormalUse, ReasonDamaged, ReasonLost, ReasonOther:
		return true
	}
	return false
}

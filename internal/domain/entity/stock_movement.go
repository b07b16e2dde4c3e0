package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementKindInbound    = "inbound"
	MovementKindOutbound   = "outbound"
	MovementKindAdjustment = "adjustment"
)

// ValidMovementKind informa si kind es un tipo de movimiento soportado.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindInbound, MovementKindOutbound, MovementKindAdjustment:
		return true
	}
	return false
}

// StockMovement es una entrada del ledger de inventario: delta con signo,
// tipo y actor. Append-only; nunca se edita ni se borra después de creado.
// La cantidad cacheada del Inventory siempre equivale a la suma de deltas.
type StockMovement struct {
	ID          string
	InventoryID string
	Delta       int    // positivo entrada, negativo salida; nunca 0
	Kind        string // inbound, outbound, adjustment
	Reason      string
	UserID      string // actor que registró el movimiento
	CreatedAt   time.Time
}

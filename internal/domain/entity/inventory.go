package entity

import "time"

// Estados de stock para reportes.
const (
	StockStatusOK  = "OK"
	StockStatusLow = "LOW"
	StockStatusOut = "OUT"
)

// Inventory representa el inventario de un producto (relación uno a uno).
// Se crea automáticamente con el producto, en cantidad cero, y solo se
// modifica aplicando movimientos o ajustando reservas; nunca por asignación
// directa de Quantity.
//
// Invariantes: Quantity >= 0, Reserved >= 0, Reserved <= Quantity.
type Inventory struct {
	ID        string
	ProductID string
	Quantity  int
	Reserved  int
	Location  string // ubicación física en bodega (ej. "A-12-3"), puede estar vacía
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available devuelve la cantidad no reservada.
func (i *Inventory) Available() int {
	return i.Quantity - i.Reserved
}

// StockStatus clasifica el stock contra el mínimo del producto.
func (i *Inventory) StockStatus(stockMinimum int) string {
	switch {
	case i.Quantity <= 0:
		return StockStatusOut
	case i.Quantity <= stockMinimum:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}

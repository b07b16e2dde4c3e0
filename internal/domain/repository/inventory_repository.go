package repository

import "github.com/litethinking/gestion-api/internal/domain/entity"

// InventoryRow inventario con los datos del producto asociados, para
// listados y el reporte PDF.
type InventoryRow struct {
	Inventory   entity.Inventory
	ProductCode string
	ProductName string
	CompanyID   string
	StockMin    int
}

// InventoryRepository define el puerto de persistencia para Inventory.
// Quantity y Reserved solo se modifican vía UpdateQuantities dentro de la
// transacción que escribe el movimiento (ver TxRunner).
type InventoryRepository interface {
	// Create inserta el inventario si no existe uno para el producto
	// (idempotente: ON CONFLICT DO NOTHING + lectura).
	Create(inv *entity.Inventory) error
	GetByID(id string) (*entity.Inventory, error)
	GetByProduct(productID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Inventory, error)
	UpdateQuantities(inv *entity.Inventory) error
	UpdateLocation(id, location string) error
	ListByCompany(companyID string, limit, offset int) ([]*InventoryRow, error)
	ListAll(limit, offset int) ([]*InventoryRow, error)
}

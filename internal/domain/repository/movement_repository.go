package repository

import "github.com/litethinking/gestion-api/internal/domain/entity"

// StockMovementRepository define el puerto del ledger de movimientos.
// Solo inserción y lectura: los movimientos nunca se editan ni se borran.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByInventory(inventoryID string, limit, offset int) ([]*entity.StockMovement, error)
	// SumDeltas devuelve la suma de deltas del inventario; debe coincidir
	// siempre con la cantidad cacheada (verificado por el job de conciliación).
	SumDeltas(inventoryID string) (int, error)
}

package dto

import "time"

// InventoryResponse salida de un inventario.
type InventoryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Reserved  int       `json:"reserved"`
	Available int       `json:"available"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryRowResponse inventario con datos del producto, para listados.
type InventoryRowResponse struct {
	InventoryResponse
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	StockStatus string `json:"stock_status"` // OK, LOW, OUT
}

// InventoryListResponse lista paginada de inventarios.
type InventoryListResponse struct {
	Items []InventoryRowResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// UpdateInventoryRequest solo permite cambiar la ubicación; la cantidad
// únicamente se mueve aplicando movimientos.
type UpdateInventoryRequest struct {
	Location *string `json:"location" validate:"omitempty,max=100"`
}

// ApplyMovementRequest body para POST /api/inventories/:id/movements.
// Delta lleva signo: positivo entra, negativo sale.
type ApplyMovementRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Kind   string `json:"kind" validate:"required,oneof=inbound outbound adjustment"`
	Reason string `json:"reason" validate:"required,min=1"`
}

// ReserveRequest body para reservar o liberar unidades.
type ReserveRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID          string    `json:"id"`
	InventoryID string    `json:"inventory_id"`
	Delta       int       `json:"delta"`
	Kind        string    `json:"kind"`
	Reason      string    `json:"reason"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse ledger paginado, del más reciente al más antiguo.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ApplyMovementResponse resultado de aplicar un movimiento: la entrada del
// ledger y el inventario con la cantidad ya actualizada.
type ApplyMovementResponse struct {
	Movement  MovementResponse  `json:"movement"`
	Inventory InventoryResponse `json:"inventory"`
}

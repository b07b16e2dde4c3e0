package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El código se genera
// automáticamente a partir del nombre; no se acepta en el request.
type CreateProductRequest struct {
	CompanyID    string          `json:"company_id" validate:"required,uuid"`
	Name         string          `json:"name" validate:"required,min=2,max=200"`
	Description  string          `json:"description" validate:"required"`
	Kind         string          `json:"kind" validate:"required,oneof=physical digital service"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	StockMinimum int             `json:"stock_minimum" validate:"omitempty,min=0"`
}

// UpdateProductRequest entrada para actualizar un producto. Code y CompanyID
// son inmutables y no aparecen aquí.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description  *string          `json:"description"`
	Kind         *string          `json:"kind" validate:"omitempty,oneof=physical digital service"`
	PriceUSD     *decimal.Decimal `json:"price_usd"`
	Active       *bool            `json:"active"`
	StockMinimum *int             `json:"stock_minimum" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto. COP y EUR se derivan del precio
// USD con las tasas configuradas.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Kind         string          `json:"kind"`
	PriceUSD     decimal.Decimal `json:"price_usd"`
	PriceCOP     decimal.Decimal `json:"price_cop"`
	PriceEUR     decimal.Decimal `json:"price_eur"`
	Active       bool            `json:"active"`
	StockMinimum int             `json:"stock_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductWithInventoryResponse salida de la creación de producto: el
// producto y su inventario aprovisionado en la misma transacción.
type ProductWithInventoryResponse struct {
	Product   ProductResponse   `json:"product"`
	Inventory InventoryResponse `json:"inventory"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

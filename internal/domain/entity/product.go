package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto válidos.
const (
	ProductKindPhysical = "physical"
	ProductKindDigital  = "digital"
	ProductKindService  = "service"
)

// ValidProductKind informa si kind es uno de los tipos soportados.
func ValidProductKind(kind string) bool {
	switch kind {
	case ProductKindPhysical, ProductKindDigital, ProductKindService:
		return true
	}
	return false
}

// Product representa un producto del catálogo de una empresa.
// Code se genera automáticamente ("LA-001") y es inmutable una vez asignado;
// el precio canónico se almacena en USD y las demás monedas se derivan por tasa.
type Product struct {
	ID           string
	CompanyID    string
	Code         string // único global, prefijo de 2 letras + secuencia
	Name         string
	Description  string
	Kind         string          // physical, digital, service
	PriceUSD     decimal.Decimal // > 0
	Active       bool
	StockMinimum int // umbral de reabastecimiento, >= 0
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PriceIn convierte el precio USD a otra moneda con la tasa dada.
func (p *Product) PriceIn(rate decimal.Decimal) decimal.Decimal {
	return p.PriceUSD.Mul(rate)
}

// NeedsRestock informa si el stock actual está en o por debajo del mínimo.
func (p *Product) NeedsRestock(quantity int) bool {
	return quantity <= p.StockMinimum
}

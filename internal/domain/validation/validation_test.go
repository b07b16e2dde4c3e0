package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litethinking/gestion-api/internal/domain/validation"
)

// ──────────────────────────────────────────────────────────────────────────────
// NIT
// ──────────────────────────────────────────────────────────────────────────────

func TestNIT_Valido(t *testing.T) {
	casos := []string{
		"900123456",
		"900123456-1",
		"900.123.456-1",
		"123456789012345", // 15 dígitos, tope
	}
	for _, nit := range casos {
		assert.NoError(t, validation.NIT(nit), "NIT %q debe ser válido", nit)
	}
}

func TestNIT_Invalido(t *testing.T) {
	casos := map[string]string{
		"vacío":            "",
		"muy corto":        "12345678",
		"muy largo":        "1234567890123456",
		"con letras":       "90012345A",
		"solo separadores": "---",
	}
	for nombre, nit := range casos {
		assert.Error(t, validation.NIT(nit), "caso %s: NIT %q debe ser inválido", nombre, nit)
	}
}

func TestCleanNIT_QuitaSeparadores(t *testing.T) {
	assert.Equal(t, "9001234561", validation.CleanNIT("900.123.456-1"))
	assert.Equal(t, "900123456", validation.CleanNIT(" 900123456 "))
}

// ──────────────────────────────────────────────────────────────────────────────
// Email y teléfono
// ──────────────────────────────────────────────────────────────────────────────

func TestEmail(t *testing.T) {
	assert.NoError(t, validation.Email("contacto@empresa.com.co"))
	assert.Error(t, validation.Email(""))
	assert.Error(t, validation.Email("sin-arroba.com"))
	assert.Error(t, validation.Email("a@b"))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, validation.Phone("601 234 5678"))
	assert.NoError(t, validation.Phone("310-555-0199"))
	assert.Error(t, validation.Phone(""))
	assert.Error(t, validation.Phone("123456"), "menos de 7 dígitos")
	assert.Error(t, validation.Phone("123456789012345678901"), "más de 20 dígitos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Precio, cantidad y rango de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestPrice(t *testing.T) {
	assert.NoError(t, validation.Price(decimal.NewFromFloat(1200.00)))
	assert.Error(t, validation.Price(decimal.Zero), "precio cero inválido")
	assert.Error(t, validation.Price(decimal.NewFromInt(-5)), "precio negativo inválido")
	assert.Error(t, validation.Price(decimal.RequireFromString("10000000000.00")), "excede el tope")
}

func TestQuantity(t *testing.T) {
	assert.NoError(t, validation.Quantity(10, false))
	assert.NoError(t, validation.Quantity(0, true))
	assert.Error(t, validation.Quantity(0, false))
	assert.Error(t, validation.Quantity(-1, true))
}

func TestStockRange(t *testing.T) {
	assert.NoError(t, validation.StockRange(10, 3))
	assert.NoError(t, validation.StockRange(0, 0))
	assert.Error(t, validation.StockRange(-1, 0))
	assert.Error(t, validation.StockRange(5, -1))
	assert.Error(t, validation.StockRange(5, 6), "reserva mayor al stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Código de producto
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCode(t *testing.T) {
	assert.NoError(t, validation.ProductCode("LA-001"))
	assert.NoError(t, validation.ProductCode("MO-042"))
	assert.Error(t, validation.ProductCode(""))
	assert.Error(t, validation.ProductCode("1A-001"), "debe empezar con letras")
	assert.Error(t, validation.ProductCode("L"), "muy corto")
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidationError — acumulación por campo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidationError_AcumulaTodosLosCampos(t *testing.T) {
	ve := validation.NewValidationError()
	ve.AddErr("nit", validation.NIT("123"))
	ve.AddErr("email", validation.Email("malo"))
	ve.AddErr("phone", validation.Phone("3105550199")) // válido, no debe agregarse

	require.True(t, ve.HasErrors())
	assert.Len(t, ve.Fields, 2, "debe reportar exactamente los dos campos inválidos")
	assert.Contains(t, ve.Fields, "nit")
	assert.Contains(t, ve.Fields, "email")
	assert.NotContains(t, ve.Fields, "phone")
}

func TestValidationError_ErrOrNil(t *testing.T) {
	ve := validation.NewValidationError()
	assert.NoError(t, ve.ErrOrNil(), "sin violaciones debe ser nil")

	ve.Add("name", "el nombre es obligatorio")
	err := ve.ErrOrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestValidationError_ConservaPrimerMensaje(t *testing.T) {
	ve := validation.NewValidationError()
	ve.Add("nit", "primero")
	ve.Add("nit", "segundo")
	assert.Equal(t, "primero", ve.Fields["nit"])
}

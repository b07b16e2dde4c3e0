// Package validation reúne las reglas de validación de campos del dominio:
// NIT, email, teléfono, precios, cantidades y códigos de producto.
// Las funciones no tienen efectos secundarios: devuelven nil si el valor
// cumple la regla o un error describiendo la violación.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError acumula violaciones por campo. Se construye con Add y se
// devuelve solo si tiene al menos un campo (ver ErrOrNil).
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un acumulador vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra la violación de un campo. Conserva el primer mensaje si el
// campo ya fue reportado.
func (e *ValidationError) Add(field, reason string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = reason
	}
}

// AddErr registra err como violación del campo si err no es nil.
func (e *ValidationError) AddErr(field string, err error) {
	if err != nil {
		e.Add(field, err.Error())
	}
}

// HasErrors informa si hay al menos una violación registrada.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil devuelve el error si hay violaciones, o nil si no.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Error implementa error listando los campos violados en orden estable.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validación: " + strings.Join(parts, "; ")
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NIT valida el formato del NIT: 9 a 15 dígitos después de limpiar puntos
// y guiones, todos numéricos.
func NIT(nit string) error {
	clean := CleanNIT(nit)
	if clean == "" {
		return fmt.Errorf("el NIT no puede estar vacío")
	}
	if len(clean) < 9 || len(clean) > 15 {
		return fmt.Errorf("el NIT debe tener entre 9 y 15 dígitos")
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return fmt.Errorf("el NIT debe contener solo números")
		}
	}
	return nil
}

// CleanNIT normaliza el NIT quitando espacios, puntos y guiones.
func CleanNIT(nit string) string {
	clean := strings.TrimSpace(nit)
	clean = strings.ReplaceAll(clean, ".", "")
	return strings.ReplaceAll(clean, "-", "")
}

// Email valida el formato de una dirección de correo.
func Email(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("email inválido")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("formato de email inválido")
	}
	return nil
}

// Phone valida el teléfono: entre 7 y 20 dígitos después de limpiar
// espacios y guiones.
func Phone(phone string) error {
	clean := strings.TrimSpace(phone)
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")
	if clean == "" {
		return fmt.Errorf("el teléfono no puede estar vacío")
	}
	if len(clean) < 7 {
		return fmt.Errorf("el teléfono debe tener al menos 7 dígitos")
	}
	if len(clean) > 20 {
		return fmt.Errorf("el teléfono no puede exceder 20 dígitos")
	}
	return nil
}

// maxPrice tope del esquema: NUMERIC(12,2).
var maxPrice = decimal.RequireFromString("9999999999.99")

// Price valida que un precio sea mayor a cero y no exceda el tope del esquema.
func Price(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("el precio debe ser mayor a 0")
	}
	if price.GreaterThan(maxPrice) {
		return fmt.Errorf("el precio no puede ser mayor a %s", maxPrice)
	}
	return nil
}

// Quantity valida una cantidad. Con allowZero=false exige cantidad positiva.
func Quantity(quantity int, allowZero bool) error {
	if quantity < 0 {
		return fmt.Errorf("la cantidad no puede ser negativa")
	}
	if !allowZero && quantity == 0 {
		return fmt.Errorf("la cantidad debe ser mayor a 0")
	}
	return nil
}

// StockRange valida la relación cantidad/reserva de un inventario:
// ambas no negativas y reserved <= quantity.
func StockRange(quantity, reserved int) error {
	if quantity < 0 {
		return fmt.Errorf("la cantidad actual no puede ser negativa")
	}
	if reserved < 0 {
		return fmt.Errorf("la cantidad reservada no puede ser negativa")
	}
	if reserved > quantity {
		return fmt.Errorf("la cantidad reservada (%d) no puede ser mayor a la cantidad actual (%d)", reserved, quantity)
	}
	return nil
}

// ProductCode valida el formato de un código: inicia con al menos 2 letras,
// máximo 50 caracteres.
func ProductCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("el código no puede estar vacío")
	}
	if len(code) > 50 {
		return fmt.Errorf("el código no puede exceder 50 caracteres")
	}
	if len(code) < 2 || !isLetter(rune(code[0])) || !isLetter(rune(code[1])) {
		return fmt.Errorf("el código debe empezar con al menos 2 letras")
	}
	return nil
}

// TextLength valida la longitud (después de trim) de un campo de texto.
func TextLength(text, field string, min, max int) error {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return fmt.Errorf("%s no puede estar vacío", field)
	}
	if len([]rune(clean)) < min {
		return fmt.Errorf("%s debe tener al menos %d caracteres", field, min)
	}
	if max > 0 && len([]rune(clean)) > max {
		return fmt.Errorf("%s no puede exceder %d caracteres", field, max)
	}
	return nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

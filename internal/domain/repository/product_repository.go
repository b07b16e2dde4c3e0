package repository

import "github.com/litethinking/gestion-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// El código es único global; LastCodeWithPrefix soporta la generación
// secuencial ("LA-001", "LA-002", ...).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// LastCodeWithPrefix devuelve el mayor código existente con el prefijo
	// dado ("LA-" → "LA-007") o cadena vacía si no hay ninguno.
	LastCodeWithPrefix(prefix string) (string, error)
}

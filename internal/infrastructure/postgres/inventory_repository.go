package postgres

import (
	"context"
	"fmt"

	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre
// PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventarios. Pasar pool
// o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, quantity, reserved, location, created_at, updated_at`

// Create inserta el inventario si el producto aún no tiene uno. Idempotente:
// con ON CONFLICT DO NOTHING un segundo intento no falla, y la lectura
// posterior devuelve la fila vigente.
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ProductID, inv.Quantity, inv.Reserved, inv.Location,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	existing, err := r.GetByProduct(inv.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		*inv = *existing
	}
	return nil
}

// GetByID obtiene un inventario por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	return r.getBy(`WHERE id = $1`, id)
}

// GetByProduct obtiene el inventario de un producto (relación uno a uno).
func (r *InventoryRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	return r.getBy(`WHERE product_id = $1`, productID)
}

func (r *InventoryRepo) getBy(where string, arg any) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories ` + where
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.Reserved, &inv.Location,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate obtiene el inventario y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *InventoryRepo) GetForUpdate(id string) (*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventories WHERE id = $1
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.Reserved, &inv.Location,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// UpdateQuantities escribe cantidad y reserva. Los CHECK del esquema
// (quantity >= 0, reserved entre 0 y quantity) son la última defensa.
func (r *InventoryRepo) UpdateQuantities(inv *entity.Inventory) error {
	query := `
		UPDATE inventories SET quantity = $2, reserved = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Quantity, inv.Reserved, inv.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update inventory quantities: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLocation cambia la etiqueta de ubicación.
func (r *InventoryRepo) UpdateLocation(id, location string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventories SET location = $2, updated_at = now() WHERE id = $1`,
		id, location,
	)
	if err != nil {
		return fmt.Errorf("update inventory location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const inventoryRowQuery = `
	SELECT i.id, i.product_id, i.quantity, i.reserved, i.location, i.created_at, i.updated_at,
	       p.code, p.name, p.company_id, p.stock_minimum
	FROM inventories i
	JOIN products p ON p.id = i.product_id`

// ListByCompany lista inventarios de una empresa con datos del producto.
func (r *InventoryRepo) ListByCompany(companyID string, limit, offset int) ([]*repository.InventoryRow, error) {
	query := inventoryRowQuery + `
	WHERE p.company_id = $3
	ORDER BY p.code LIMIT $1 OFFSET $2`
	return r.listRows(query, limit, offset, companyID)
}

// ListAll lista todos los inventarios con datos del producto.
func (r *InventoryRepo) ListAll(limit, offset int) ([]*repository.InventoryRow, error) {
	query := inventoryRowQuery + `
	ORDER BY p.code LIMIT $1 OFFSET $2`
	return r.listRows(query, limit, offset)
}

func (r *InventoryRepo) listRows(query string, limit, offset int, extra ...any) ([]*repository.InventoryRow, error) {
	args := append([]any{limit, offset}, extra...)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()

	var list []*repository.InventoryRow
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(
			&row.Inventory.ID, &row.Inventory.ProductID, &row.Inventory.Quantity,
			&row.Inventory.Reserved, &row.Inventory.Location,
			&row.Inventory.CreatedAt, &row.Inventory.UpdatedAt,
			&row.ProductCode, &row.ProductName, &row.CompanyID, &row.StockMin,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
	"github.com/litethinking/gestion-api/internal/domain/validation"
)

// UseCase motor de inventario: aplica movimientos al ledger y gestiona
// reservas, de forma transaccional con bloqueo de fila (SELECT FOR UPDATE).
// La cantidad cacheada del inventario siempre equivale a la suma de deltas
// del ledger; ningún camino la asigna directamente.
type UseCase struct {
	txRunner    TxRunner
	invRepo     repository.InventoryRepository
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el motor de inventario.
func NewUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		movRepo:     movRepo,
		productRepo: productRepo,
	}
}

// ApplyMovement valida el movimiento, bloquea la fila del inventario,
// verifica que la cantidad resultante no quede negativa ni por debajo de la
// reserva, y escribe el movimiento + la cantidad cacheada en una sola
// transacción. Devuelve domain.ErrInsufficientStock si el delta no cabe.
func (uc *UseCase) ApplyMovement(ctx context.Context, actor auth.Actor, inventoryID string, in dto.ApplyMovementRequest) (*dto.ApplyMovementResponse, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}

	if err := uc.authorize(actor, inventoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		InventoryID: inventoryID,
		Delta:       in.Delta,
		Kind:        in.Kind,
		Reason:      in.Reason,
		UserID:      actor.UserID,
		CreatedAt:   now,
	}

	var updated *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del inventario para evitar condiciones de carrera
		inv, err := invRepo.GetForUpdate(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		newQty := inv.Quantity + in.Delta
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		// La reserva vigente también acota las salidas
		if newQty < inv.Reserved {
			return domain.ErrInsufficientStock
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		inv.Quantity = newQty
		inv.UpdatedAt = now
		if err := invRepo.UpdateQuantities(inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ApplyMovementResponse{
		Movement:  *toMovementResponse(mov),
		Inventory: *ToInventoryResponse(updated),
	}, nil
}

// Reserve aparta unidades del inventario. Falla con ErrInsufficientStock si
// la reserva resultante excede la cantidad disponible.
func (uc *UseCase) Reserve(ctx context.Context, actor auth.Actor, inventoryID string, quantity int) (*dto.InventoryResponse, error) {
	if err := validation.Quantity(quantity, false); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.authorize(actor, inventoryID); err != nil {
		return nil, err
	}

	var updated *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.StockMovementRepository,
	) error {
		inv, err := invRepo.GetForUpdate(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		newReserved := inv.Reserved + quantity
		if newReserved > inv.Quantity {
			return domain.ErrInsufficientStock
		}
		inv.Reserved = newReserved
		inv.UpdatedAt = time.Now()
		if err := invRepo.UpdateQuantities(inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToInventoryResponse(updated), nil
}

// Release libera unidades reservadas. Falla con ErrInvalidInput si se
// intenta liberar más de lo reservado.
func (uc *UseCase) Release(ctx context.Context, actor auth.Actor, inventoryID string, quantity int) (*dto.InventoryResponse, error) {
	if err := validation.Quantity(quantity, false); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.authorize(actor, inventoryID); err != nil {
		return nil, err
	}

	var updated *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.StockMovementRepository,
	) error {
		inv, err := invRepo.GetForUpdate(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		newReserved := inv.Reserved - quantity
		if newReserved < 0 {
			return domain.ErrInvalidInput
		}
		inv.Reserved = newReserved
		inv.UpdatedAt = time.Now()
		if err := invRepo.UpdateQuantities(inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToInventoryResponse(updated), nil
}

// ListMovements devuelve el ledger del inventario, del más reciente al más
// antiguo.
func (uc *UseCase) ListMovements(actor auth.Actor, inventoryID string, limit, offset int) (*dto.MovementListResponse, error) {
	if err := uc.authorize(actor, inventoryID); err != nil {
		return nil, err
	}
	list, err := uc.movRepo.ListByInventory(inventoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetByID obtiene un inventario, verificando el acceso por empresa.
func (uc *UseCase) GetByID(actor auth.Actor, inventoryID string) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeProduct(actor, inv.ProductID); err != nil {
		return nil, err
	}
	return ToInventoryResponse(inv), nil
}

// List lista inventarios con datos de producto. Administradores ven todo;
// externos solo su empresa.
func (uc *UseCase) List(actor auth.Actor, limit, offset int) (*dto.InventoryListResponse, error) {
	var (
		rows []*repository.InventoryRow
		err  error
	)
	if actor.IsAdmin() {
		rows, err = uc.invRepo.ListAll(limit, offset)
	} else {
		rows, err = uc.invRepo.ListByCompany(actor.CompanyID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryRowResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.InventoryRowResponse{
			InventoryResponse: *ToInventoryResponse(&r.Inventory),
			ProductCode:       r.ProductCode,
			ProductName:       r.ProductName,
			StockStatus:       r.Inventory.StockStatus(r.StockMin),
		})
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateLocation cambia la etiqueta de ubicación. Es el único campo del
// inventario editable por la API.
func (uc *UseCase) UpdateLocation(actor auth.Actor, inventoryID string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if err := uc.authorize(actor, inventoryID); err != nil {
		return nil, err
	}
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if in.Location != nil {
		if err := uc.invRepo.UpdateLocation(inventoryID, *in.Location); err != nil {
			return nil, err
		}
		inv.Location = *in.Location
	}
	return ToInventoryResponse(inv), nil
}

// authorize resuelve el producto del inventario y verifica el acceso del
// actor a su empresa.
func (uc *UseCase) authorize(actor auth.Actor, inventoryID string) error {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.authorizeProduct(actor, inv.ProductID)
}

func (uc *UseCase) authorizeProduct(actor auth.Actor, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !actor.CanAccessCompany(product.CompanyID) {
		return domain.ErrForbidden
	}
	return nil
}

// validateMovement verifica tipo, signo y motivo del movimiento.
func validateMovement(in dto.ApplyMovementRequest) error {
	if !entity.ValidMovementKind(in.Kind) {
		return domain.ErrInvalidInput
	}
	if in.Delta == 0 {
		return domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.MovementKindInbound:
		if in.Delta < 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementKindOutbound:
		if in.Delta > 0 {
			return domain.ErrInvalidInput
		}
	}
	if err := validation.TextLength(in.Reason, "reason", 1, 500); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// ToInventoryResponse mapea la entidad al DTO de salida.
func ToInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	if inv == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:        inv.ID,
		ProductID: inv.ProductID,
		Quantity:  inv.Quantity,
		Reserved:  inv.Reserved,
		Available: inv.Available(),
		Location:  inv.Location,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		InventoryID: m.InventoryID,
		Delta:       m.Delta,
		Kind:        m.Kind,
		Reason:      m.Reason,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

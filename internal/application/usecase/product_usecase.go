package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/application/inventory"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
	"github.com/litethinking/gestion-api/internal/domain/validation"
	"github.com/litethinking/gestion-api/pkg/config"
)

// codeRetries intentos de inserción ante colisión del código generado.
const codeRetries = 3

// CatalogTxRunner ejecuta la creación de producto + inventario en una sola
// transacción: o se insertan ambos o ninguno.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// ProductUseCase catálogo de productos. La creación aprovisiona el
// inventario (cantidad cero) en la misma transacción; el código se genera
// automáticamente del nombre y es inmutable.
type ProductUseCase struct {
	txRunner    CatalogTxRunner
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	invRepo     repository.InventoryRepository
	rates       config.CurrencyConfig
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(
	txRunner CatalogTxRunner,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	invRepo repository.InventoryRepository,
	rates config.CurrencyConfig,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		companyRepo: companyRepo,
		invRepo:     invRepo,
		rates:       rates,
	}
}

// Create registra un producto y su inventario inicial (cantidad cero) de
// forma atómica. Devuelve ambos; si cualquiera de las dos inserciones
// falla, ninguna persiste.
func (uc *ProductUseCase) Create(ctx context.Context, actor auth.Actor, in dto.CreateProductRequest) (*dto.ProductWithInventoryResponse, error) {
	if !actor.CanAccessCompany(in.CompanyID) {
		return nil, domain.ErrForbidden
	}

	v := validation.NewValidationError()
	v.AddErr("name", validation.TextLength(in.Name, "name", 2, 200))
	v.AddErr("description", validation.TextLength(in.Description, "description", 1, 2000))
	v.AddErr("price_usd", validation.Price(in.PriceUSD))
	if !entity.ValidProductKind(in.Kind) {
		v.Add("kind", "tipo de producto inválido")
	}
	if in.StockMinimum < 0 {
		v.Add("stock_minimum", "el stock mínimo no puede ser negativo")
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.Active {
		return nil, domain.ErrNotFound
	}

	// Dos altas concurrentes con el mismo prefijo pueden leer la misma
	// secuencia; el índice único rechaza una y se reintenta con el código
	// siguiente en vez de devolver un 409 al cliente.
	var product *entity.Product
	var inv *entity.Inventory
	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := uc.nextCode(in.Name)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		product = &entity.Product{
			ID:           uuid.New().String(),
			CompanyID:    in.CompanyID,
			Code:         code,
			Name:         in.Name,
			Description:  in.Description,
			Kind:         in.Kind,
			PriceUSD:     in.PriceUSD,
			Active:       true,
			StockMinimum: in.StockMinimum,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		inv = &entity.Inventory{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  0,
			Reserved:  0,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = uc.txRunner.RunCatalog(ctx, func(
			productRepo repository.ProductRepository,
			invRepo repository.InventoryRepository,
		) error {
			if err := productRepo.Create(product); err != nil {
				return err
			}
			return invRepo.Create(inv)
		})
		if errors.Is(err, domain.ErrDuplicate) && attempt < codeRetries-1 {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	return &dto.ProductWithInventoryResponse{
		Product:   *uc.toProductResponse(product),
		Inventory: *inventory.ToInventoryResponse(inv),
	}, nil
}

// GetByID obtiene un producto con precios en las tres monedas.
func (uc *ProductUseCase) GetByID(actor auth.Actor, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessCompany(product.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return uc.toProductResponse(product), nil
}

// GetByCode busca un producto por su código.
func (uc *ProductUseCase) GetByCode(actor auth.Actor, code string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessCompany(product.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return uc.toProductResponse(product), nil
}

// Update modifica un producto. El código y la empresa son inmutables.
func (uc *ProductUseCase) Update(actor auth.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessCompany(product.CompanyID) {
		return nil, domain.ErrForbidden
	}

	v := validation.NewValidationError()
	if in.Name != nil {
		v.AddErr("name", validation.TextLength(*in.Name, "name", 2, 200))
	}
	if in.PriceUSD != nil {
		v.AddErr("price_usd", validation.Price(*in.PriceUSD))
	}
	if in.Kind != nil && !entity.ValidProductKind(*in.Kind) {
		v.Add("kind", "tipo de producto inválido")
	}
	if in.StockMinimum != nil && *in.StockMinimum < 0 {
		v.Add("stock_minimum", "el stock mínimo no puede ser negativo")
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Kind != nil {
		product.Kind = *in.Kind
	}
	if in.PriceUSD != nil {
		product.PriceUSD = *in.PriceUSD
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.StockMinimum != nil {
		product.StockMinimum = *in.StockMinimum
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// Deactivate borra lógicamente un producto. El inventario y el ledger se
// conservan.
func (uc *ProductUseCase) Deactivate(actor auth.Actor, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !actor.CanAccessCompany(product.CompanyID) {
		return domain.ErrForbidden
	}
	product.Active = false
	product.UpdatedAt = time.Now()
	return uc.productRepo.Update(product)
}

// List lista productos. Administradores ven todos; externos solo los de su
// empresa. companyID opcional filtra por empresa (sujeto al mismo control).
func (uc *ProductUseCase) List(actor auth.Actor, page dto.PageRequest, companyID string) (*dto.ProductListResponse, error) {
	page.DefaultPage()

	if companyID == "" && !actor.IsAdmin() {
		companyID = actor.CompanyID
	}
	if companyID != "" && !actor.CanAccessCompany(companyID) {
		return nil, domain.ErrForbidden
	}

	var (
		products []*entity.Product
		err      error
	)
	if companyID != "" {
		products, err = uc.productRepo.ListByCompany(companyID, page.Limit, page.Offset)
	} else {
		products, err = uc.productRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *uc.toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetInventory obtiene el inventario del producto (relación uno a uno).
func (uc *ProductUseCase) GetInventory(actor auth.Actor, productID string) (*dto.InventoryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanAccessCompany(product.CompanyID) {
		return nil, domain.ErrForbidden
	}
	inv, err := uc.invRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inventory.ToInventoryResponse(inv), nil
}

// nextCode genera el siguiente código para el prefijo derivado del nombre:
// dos primeras letras en mayúscula + secuencia de tres dígitos ("LA-001").
func (uc *ProductUseCase) nextCode(name string) (string, error) {
	prefix := codePrefix(name)
	if prefix == "" {
		return "", domain.ErrInvalidInput
	}
	last, err := uc.productRepo.LastCodeWithPrefix(prefix + "-")
	if err != nil {
		return "", err
	}
	seq := 1
	if last != "" {
		raw := strings.TrimPrefix(last, prefix+"-")
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("código existente malformado: %s", last)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s-%03d", prefix, seq), nil
}

// codePrefix extrae las dos primeras letras del nombre, en mayúscula,
// ignorando dígitos, espacios y símbolos. Devuelve "" si no hay dos letras.
func codePrefix(name string) string {
	var letters []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 2 {
				return string(letters)
			}
		}
	}
	return ""
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Kind:         p.Kind,
		PriceUSD:     p.PriceUSD,
		PriceCOP:     p.PriceIn(uc.rates.USDToCOP).Round(2),
		PriceEUR:     p.PriceIn(uc.rates.USDToEUR).Round(2),
		Active:       p.Active,
		StockMinimum: p.StockMinimum,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litethinking/gestion-api/internal/application/dto"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
	"github.com/litethinking/gestion-api/pkg/config"
)

func testRates() config.CurrencyConfig {
	return config.CurrencyConfig{
		USDToCOP: decimal.RequireFromString("4000"),
		USDToEUR: decimal.RequireFromString("0.92"),
	}
}

func setupProductUseCase(companies ...*entity.Company) (*ProductUseCase, *memProductRepo, *memInventoryRepo) {
	productRepo := newMemProductRepo()
	invRepo := newMemInventoryRepo()
	companyRepo := newMemCompanyRepo(companies...)
	runner := &memCatalogTxRunner{productRepo: productRepo, invRepo: invRepo}
	uc := NewProductUseCase(runner, productRepo, companyRepo, invRepo, testRates())
	return uc, productRepo, invRepo
}

func validProductRequest(companyID string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		CompanyID:    companyID,
		Name:         "Laptop Lenovo ThinkPad",
		Description:  "Portátil de 14 pulgadas",
		Kind:         entity.ProductKindPhysical,
		PriceUSD:     decimal.RequireFromString("1200.50"),
		StockMinimum: 5,
	}
}

func TestProductCreate_AprovisionaInventarioEnCero(t *testing.T) {
	company := sampleCompany()
	uc, _, invRepo := setupProductUseCase(company)

	res, err := uc.Create(context.Background(), adminActor(), validProductRequest(company.ID))
	require.NoError(t, err)

	assert.Equal(t, "LA-001", res.Product.Code)
	assert.Equal(t, res.Product.ID, res.Inventory.ProductID)
	assert.Equal(t, 0, res.Inventory.Quantity)
	assert.Equal(t, 0, res.Inventory.Reserved)

	// El inventario quedó persistido junto con el producto
	inv, _ := invRepo.GetByProduct(res.Product.ID)
	require.NotNil(t, inv)
}

func TestProductCreate_GeneraCodigosSecuenciales(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)
	ctx := context.Background()

	first, err := uc.Create(ctx, adminActor(), validProductRequest(company.ID))
	require.NoError(t, err)
	assert.Equal(t, "LA-001", first.Product.Code)

	req := validProductRequest(company.ID)
	req.Name = "Lavadora Samsung"
	second, err := uc.Create(ctx, adminActor(), req)
	require.NoError(t, err)
	assert.Equal(t, "LA-002", second.Product.Code)

	req = validProductRequest(company.ID)
	req.Name = "Monitor Dell"
	third, err := uc.Create(ctx, adminActor(), req)
	require.NoError(t, err)
	assert.Equal(t, "MO-001", third.Product.Code)
}

// racingCatalogTxRunner simula un alta concurrente: justo antes de la primera
// transacción inserta otro producto con el mismo código generado.
type racingCatalogTxRunner struct {
	inner       *memCatalogTxRunner
	productRepo *memProductRepo
	raced       bool
}

func (r *racingCatalogTxRunner) RunCatalog(ctx context.Context, fn func(repository.ProductRepository, repository.InventoryRepository) error) error {
	if !r.raced {
		r.raced = true
		competitor := &entity.Product{
			ID:        "prod-rival",
			CompanyID: "comp-1",
			Code:      "LA-001",
			Name:      "Laptop rival",
			Kind:      entity.ProductKindPhysical,
			Active:    true,
		}
		_ = r.productRepo.Create(competitor)
	}
	return r.inner.RunCatalog(ctx, fn)
}

func TestProductCreate_ReintentaAnteColisionDeCodigo(t *testing.T) {
	company := sampleCompany()
	productRepo := newMemProductRepo()
	invRepo := newMemInventoryRepo()
	runner := &racingCatalogTxRunner{
		inner:       &memCatalogTxRunner{productRepo: productRepo, invRepo: invRepo},
		productRepo: productRepo,
	}
	uc := NewProductUseCase(runner, productRepo, newMemCompanyRepo(company), invRepo, testRates())

	res, err := uc.Create(context.Background(), adminActor(), validProductRequest(company.ID))
	require.NoError(t, err, "la colisión de código debe reintentarse, no propagarse")

	// El rival conservó LA-001; el alta reintentó con la secuencia siguiente
	assert.Equal(t, "LA-002", res.Product.Code)
	inv, _ := invRepo.GetByProduct(res.Product.ID)
	require.NotNil(t, inv)
}

func TestProductCreate_PrefijoIgnoraDigitosYSimbolos(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)

	req := validProductRequest(company.ID)
	req.Name = "42\" Televisor LG"
	res, err := uc.Create(context.Background(), adminActor(), req)
	require.NoError(t, err)
	assert.Equal(t, "TE-001", res.Product.Code)
}

func TestProductCreate_NombreSinLetrasEsInvalido(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)

	req := validProductRequest(company.ID)
	req.Name = "12345"
	_, err := uc.Create(context.Background(), adminActor(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestProductCreate_PrecioInvalido(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)

	req := validProductRequest(company.ID)
	req.PriceUSD = decimal.Zero
	_, err := uc.Create(context.Background(), adminActor(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_usd")

	req.PriceUSD = decimal.RequireFromString("-10")
	_, err = uc.Create(context.Background(), adminActor(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_usd")
}

func TestProductCreate_EmpresaInactivaRechaza(t *testing.T) {
	company := sampleCompany()
	company.Active = false
	uc, productRepo, invRepo := setupProductUseCase(company)

	_, err := uc.Create(context.Background(), adminActor(), validProductRequest(company.ID))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Nada quedó persistido
	assert.Empty(t, productRepo.products)
	assert.Empty(t, invRepo.items)
}

func TestProductCreate_ExternoSoloEnSuEmpresa(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)

	_, err := uc.Create(context.Background(), externalActor("comp-otra"), validProductRequest(company.ID))
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	res, err := uc.Create(context.Background(), externalActor(company.ID), validProductRequest(company.ID))
	require.NoError(t, err)
	assert.Equal(t, company.ID, res.Product.CompanyID)
}

func TestProductResponse_DerivaPreciosCOPyEUR(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)

	req := validProductRequest(company.ID)
	req.PriceUSD = decimal.RequireFromString("100")
	res, err := uc.Create(context.Background(), adminActor(), req)
	require.NoError(t, err)

	assert.True(t, res.Product.PriceUSD.Equal(decimal.RequireFromString("100")))
	assert.True(t, res.Product.PriceCOP.Equal(decimal.RequireFromString("400000")))
	assert.True(t, res.Product.PriceEUR.Equal(decimal.RequireFromString("92")))
}

func TestProductUpdate_ElCodigoNoCambia(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)

	created, err := uc.Create(context.Background(), adminActor(), validProductRequest(company.ID))
	require.NoError(t, err)

	newName := "Laptop renombrada"
	newPrice := decimal.RequireFromString("999.99")
	updated, err := uc.Update(adminActor(), created.Product.ID, dto.UpdateProductRequest{
		Name:     &newName,
		PriceUSD: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.True(t, updated.PriceUSD.Equal(newPrice))
	// El código se asigna al crear y nunca cambia, aunque cambie el nombre
	assert.Equal(t, created.Product.Code, updated.Code)
}

func TestProductDeactivate_ConservaElInventario(t *testing.T) {
	company := sampleCompany()
	uc, productRepo, invRepo := setupProductUseCase(company)

	created, err := uc.Create(context.Background(), adminActor(), validProductRequest(company.ID))
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(adminActor(), created.Product.ID))

	stored, _ := productRepo.GetByID(created.Product.ID)
	assert.False(t, stored.Active)
	inv, _ := invRepo.GetByProduct(created.Product.ID)
	assert.NotNil(t, inv)
}

func TestProductList_ExternoVeSoloSuEmpresa(t *testing.T) {
	mine := sampleCompany()
	other := sampleCompany()
	other.ID = "comp-2"
	other.NIT = "901999888"
	other.Email = "otro@x.com"
	uc, _, _ := setupProductUseCase(mine, other)
	ctx := context.Background()

	_, err := uc.Create(ctx, adminActor(), validProductRequest(mine.ID))
	require.NoError(t, err)
	req := validProductRequest(other.ID)
	req.Name = "Silla ergonómica"
	_, err = uc.Create(ctx, adminActor(), req)
	require.NoError(t, err)

	res, err := uc.List(externalActor(mine.ID), dto.PageRequest{}, "")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, mine.ID, res.Items[0].CompanyID)

	// Pedir explícitamente otra empresa es forbidden
	_, err = uc.List(externalActor(mine.ID), dto.PageRequest{}, other.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	// El administrador sin filtro ve todos
	all, err := uc.List(adminActor(), dto.PageRequest{}, "")
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestProductGetInventory(t *testing.T) {
	company := sampleCompany()
	uc, _, _ := setupProductUseCase(company)

	created, err := uc.Create(context.Background(), adminActor(), validProductRequest(company.ID))
	require.NoError(t, err)

	inv, err := uc.GetInventory(adminActor(), created.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Inventory.ID, inv.ID)

	_, err = uc.GetInventory(adminActor(), "prod-inexistente")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

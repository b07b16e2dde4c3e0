package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litethinking/gestion-api/internal/application/ports"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/entity"
	"github.com/litethinking/gestion-api/internal/domain/repository"
)

type stubReportInventoryRepo struct {
	repository.InventoryRepository
	byCompany map[string][]*repository.InventoryRow
}

func (s *stubReportInventoryRepo) ListByCompany(companyID string, limit, offset int) ([]*repository.InventoryRow, error) {
	return s.byCompany[companyID], nil
}

func (s *stubReportInventoryRepo) ListAll(limit, offset int) ([]*repository.InventoryRow, error) {
	var all []*repository.InventoryRow
	for _, rows := range s.byCompany {
		all = append(all, rows...)
	}
	return all, nil
}

type captureGenerator struct {
	report *ports.InventoryReport
}

func (g *captureGenerator) InventoryPDF(report *ports.InventoryReport) ([]byte, error) {
	g.report = report
	return []byte("%PDF-1.4"), nil
}

func reportRow(companyID, code string, quantity, reserved, stockMin int) *repository.InventoryRow {
	return &repository.InventoryRow{
		Inventory:   entity.Inventory{ID: "inv-" + code, Quantity: quantity, Reserved: reserved, Location: "A-1"},
		ProductCode: code,
		ProductName: "Producto " + code,
		CompanyID:   companyID,
		StockMin:    stockMin,
	}
}

func TestInventoryPDF_ExternoRecibeSoloSuEmpresa(t *testing.T) {
	invRepo := &stubReportInventoryRepo{byCompany: map[string][]*repository.InventoryRow{
		"comp-1": {reportRow("comp-1", "LA-001", 10, 2, 5)},
		"comp-2": {reportRow("comp-2", "MO-001", 3, 0, 5)},
	}}
	gen := &captureGenerator{}
	uc := NewReportUseCase(invRepo, newMemCompanyRepo(sampleCompany()), gen)

	pdf, err := uc.InventoryPDF(externalActor("comp-1"), "")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, gen.report)
	assert.Equal(t, "Acme S.A.S.", gen.report.CompanyName)
	require.Len(t, gen.report.Rows, 1)
	row := gen.report.Rows[0]
	assert.Equal(t, "LA-001", row.ProductCode)
	assert.Equal(t, 8, row.Available, "disponible = cantidad - reservado")
	assert.Equal(t, entity.StockStatusOK, row.StockStatus)
}

func TestInventoryPDF_ExternoNoPuedePedirOtraEmpresa(t *testing.T) {
	invRepo := &stubReportInventoryRepo{byCompany: map[string][]*repository.InventoryRow{}}
	uc := NewReportUseCase(invRepo, newMemCompanyRepo(sampleCompany()), &captureGenerator{})

	_, err := uc.InventoryPDF(externalActor("comp-1"), "comp-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInventoryPDF_AdminSinEmpresaRecibeReporteGlobal(t *testing.T) {
	invRepo := &stubReportInventoryRepo{byCompany: map[string][]*repository.InventoryRow{
		"comp-1": {reportRow("comp-1", "LA-001", 10, 0, 5)},
		"comp-2": {reportRow("comp-2", "MO-001", 0, 0, 5)},
	}}
	gen := &captureGenerator{}
	uc := NewReportUseCase(invRepo, newMemCompanyRepo(sampleCompany()), gen)

	_, err := uc.InventoryPDF(adminActor(), "")
	require.NoError(t, err)

	assert.Equal(t, "Todas las empresas", gen.report.CompanyName)
	assert.Len(t, gen.report.Rows, 2)
}

func TestInventoryPDF_ClasificaElStockContraElMinimo(t *testing.T) {
	invRepo := &stubReportInventoryRepo{byCompany: map[string][]*repository.InventoryRow{
		"comp-1": {
			reportRow("comp-1", "LA-001", 10, 0, 5), // OK
			reportRow("comp-1", "LA-002", 3, 0, 5),  // LOW
			reportRow("comp-1", "LA-003", 0, 0, 5),  // OUT
		},
	}}
	gen := &captureGenerator{}
	uc := NewReportUseCase(invRepo, newMemCompanyRepo(sampleCompany()), gen)

	_, err := uc.InventoryPDF(adminActor(), "comp-1")
	require.NoError(t, err)

	require.Len(t, gen.report.Rows, 3)
	assert.Equal(t, entity.StockStatusOK, gen.report.Rows[0].StockStatus)
	assert.Equal(t, entity.StockStatusLow, gen.report.Rows[1].StockStatus)
	assert.Equal(t, entity.StockStatusOut, gen.report.Rows[2].StockStatus)
}

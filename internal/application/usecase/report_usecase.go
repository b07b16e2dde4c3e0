package usecase

import (
	"time"

	"github.com/litethinking/gestion-api/internal/application/auth"
	"github.com/litethinking/gestion-api/internal/application/ports"
	"github.com/litethinking/gestion-api/internal/domain"
	"github.com/litethinking/gestion-api/internal/domain/repository"
)

// reportMaxRows tope de filas del reporte PDF.
const reportMaxRows = 1000

// ReportUseCase genera el reporte PDF de inventario.
type ReportUseCase struct {
	invRepo     repository.InventoryRepository
	companyRepo repository.CompanyRepository
	generator   ports.ReportGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	invRepo repository.InventoryRepository,
	companyRepo repository.CompanyRepository,
	generator ports.ReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		invRepo:     invRepo,
		companyRepo: companyRepo,
		generator:   generator,
	}
}

// InventoryPDF arma y genera el reporte de inventario. Un administrador sin
// companyID recibe el reporte global; los externos siempre el de su empresa.
func (uc *ReportUseCase) InventoryPDF(actor auth.Actor, companyID string) ([]byte, error) {
	if companyID == "" && !actor.IsAdmin() {
		companyID = actor.CompanyID
	}
	if companyID != "" && !actor.CanAccessCompany(companyID) {
		return nil, domain.ErrForbidden
	}

	companyName := "Todas las empresas"
	if companyID != "" {
		company, err := uc.companyRepo.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
		companyName = company.Name
	}

	var (
		rows []*repository.InventoryRow
		err  error
	)
	if companyID != "" {
		rows, err = uc.invRepo.ListByCompany(companyID, reportMaxRows, 0)
	} else {
		rows, err = uc.invRepo.ListAll(reportMaxRows, 0)
	}
	if err != nil {
		return nil, err
	}

	report := &ports.InventoryReport{
		CompanyName: companyName,
		GeneratedAt: time.Now(),
		Rows:        make([]ports.InventoryReportRow, 0, len(rows)),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, ports.InventoryReportRow{
			ProductCode: r.ProductCode,
			ProductName: r.ProductName,
			Quantity:    r.Inventory.Quantity,
			Reserved:    r.Inventory.Reserved,
			Available:   r.Inventory.Available(),
			Location:    r.Inventory.Location,
			StockStatus: r.Inventory.StockStatus(r.StockMin),
		})
	}

	return uc.generator.InventoryPDF(report)
}

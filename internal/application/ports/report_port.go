package ports

import "time"

// InventoryReportRow una fila del reporte de inventario.
type InventoryReportRow struct {
	ProductCode string
	ProductName string
	Quantity    int
	Reserved    int
	Available   int
	Location    string
	StockStatus string // OK, LOW, OUT
}

// InventoryReport datos del reporte PDF de inventario.
type InventoryReport struct {
	CompanyName string // "Todas las empresas" para el reporte global
	GeneratedAt time.Time
	Rows        []InventoryReportRow
}

// ReportGenerator define el puerto de generación de reportes PDF.
type ReportGenerator interface {
	InventoryPDF(report *InventoryReport) ([]byte, error)
}

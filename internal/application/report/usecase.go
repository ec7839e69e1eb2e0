package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Repos puertos de lectura usados por los reportes.
type Repos struct {
	Companies  repository.CompanyRepository
	Products   repository.ProductRepository
	Production repository.ProductionRepository
	Employees  repository.EmployeeRepository
	Categories repository.CategoryRepository
	Units      repository.UnitRepository
}

// UseCase casos de uso de reportes.
type UseCase struct {
	repos Repos
	pdf   ProductionSheetRenderer
	xlsx  StockWorkbookRenderer
}

func NewUseCase(repos Repos, pdf ProductionSheetRenderer, xlsx StockWorkbookRenderer) *UseCase {
	return &UseCase{repos: repos, pdf: pdf, xlsx: xlsx}
}

// ProductionSheetPDF genera la hoja de costos de una operación. Devuelve los bytes y un nombre de archivo.
func (uc *UseCase) ProductionSheetPDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	sheet, err := uc.ProductionSheet(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.RenderProductionSheet(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("render production sheet: %w", err)
	}
	return b, fmt.Sprintf("produccion-%s.pdf", entity.DateOf(sheet.Date).Format("2006-01-02")), nil
}

// ProductionSheet resuelve la operación y sus nombres. Productos borrados aparecen como "(eliminado)".
func (uc *UseCase) ProductionSheet(ctx context.Context, companyID, id string) (*ProductionSheet, error) {
	if companyID == "" {
		return nil, domain.ErrUnauthorized
	}
	op, err := uc.repos.Production.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names, err := uc.productNames(ctx, companyID)
	if err != nil {
		return nil, err
	}

	sheet := &ProductionSheet{
		OperationID:     op.ID,
		Name:            op.Name,
		Date:            op.Date,
		OutputProduct:   names.product(op.OutputProductID),
		OutputUnit:      names.unit(op.OutputProductID),
		OutputQuantity:  op.OutputQuantity,
		AdditionalCosts: op.AdditionalCosts,
		TotalCost:       op.OutputCost,
		Notes:           op.Notes,
	}
	if company != nil {
		sheet.CompanyName = company.Name
	}
	if op.EmployeeID != "" {
		emp, err := uc.repos.Employees.GetByID(ctx, companyID, op.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp != nil {
			sheet.EmployeeName = emp.Name
		}
	}

	materialsCost := decimal.Zero
	for _, m := range op.Materials {
		cost := m.Cost()
		materialsCost = materialsCost.Add(cost)
		sheet.Materials = append(sheet.Materials, SheetMaterial{
			Product:     names.product(m.ProductID),
			Unit:        names.unit(m.ProductID),
			Quantity:    m.QuantityUsed,
			CostPerUnit: m.CostPerUnit,
			Cost:        inventory.RoundCost(cost),
		})
	}
	sheet.MaterialsCost = inventory.RoundCost(materialsCost)
	if op.OutputQuantity.IsPositive() {
		sheet.CostPerUnit = inventory.RoundCost(op.OutputCost.Div(op.OutputQuantity))
	}
	return sheet, nil
}

// StockWorkbook genera el XLSX de existencias, ordenado por nombre de producto.
func (uc *UseCase) StockWorkbook(ctx context.Context, companyID string) ([]byte, error) {
	lines, companyName, err := uc.StockLines(ctx, companyID)
	if err != nil {
		return nil, err
	}
	b, err := uc.xlsx.RenderStockWorkbook(ctx, companyName, lines)
	if err != nil {
		return nil, fmt.Errorf("render stock workbook: %w", err)
	}
	return b, nil
}

// StockLines arma las filas del reporte de existencias.
func (uc *UseCase) StockLines(ctx context.Context, companyID string) ([]StockLine, string, error) {
	if companyID == "" {
		return nil, "", domain.ErrUnauthorized
	}
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	names, err := uc.productNames(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	lines := make([]StockLine, 0, len(names.products))
	for _, p := range names.products {
		lines = append(lines, StockLine{
			Name:       p.Name,
			Category:   names.categories[p.CategoryID],
			Unit:       names.units[p.UnitID],
			Stock:      p.CurrentStock,
			MinStock:   p.MinStock,
			AvgCost:    p.AvgCost,
			StockValue: inventory.RoundCost(p.StockValue()),
			LowStock:   p.IsLowStock(),
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return strings.ToLower(lines[i].Name) < strings.ToLower(lines[j].Name)
	})
	var companyName string
	if company != nil {
		companyName = company.Name
	}
	return lines, companyName, nil
}

type nameIndex struct {
	products   map[string]*entity.Product
	categories map[string]string
	units      map[string]string
}

func (n nameIndex) product(id string) string {
	if p, ok := n.products[id]; ok {
		return p.Name
	}
	return "(eliminado)"
}

func (n nameIndex) unit(productID string) string {
	if p, ok := n.products[productID]; ok {
		return n.units[p.UnitID]
	}
	return ""
}

func (uc *UseCase) productNames(ctx context.Context, companyID string) (nameIndex, error) {
	idx := nameIndex{
		products:   map[string]*entity.Product{},
		categories: map[string]string{},
		units:      map[string]string{},
	}
	products, err := uc.repos.Products.ListByCompany(ctx, companyID)
	if err != nil {
		return idx, err
	}
	for _, p := range products {
		idx.products[p.ID] = p
	}
	cats, err := uc.repos.Categories.ListByCompany(ctx, companyID)
	if err != nil {
		return idx, err
	}
	for _, c := range cats {
		idx.categories[c.ID] = c.Name
	}
	units, err := uc.repos.Units.ListByCompany(ctx, companyID)
	if err != nil {
		return idx, err
	}
	for _, u := range units {
		idx.units[u.ID] = u.ShortName
	}
	return idx, nil
}

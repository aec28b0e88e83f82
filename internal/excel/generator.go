package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the contract balance workbook: a summary sheet with the
// contract header and a detail sheet with per-item balances.
func (g *Generator) Generate(report model.BalanceReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumo"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	detailSheet := "Itens"
	file.NewSheet(detailSheet)
	if err := g.writeItems(file, detailSheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.BalanceReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Escola")
	set("B1", report.School.Name)
	set("A2", "Fornecedor")
	set("B2", report.Contract.SupplierName)
	set("A3", "CNPJ do fornecedor")
	set("B3", report.Contract.SupplierDoc)
	set("A4", "Vigência")
	set("B4", fmt.Sprintf("%s a %s",
		report.Contract.StartAt.Format("02/01/2006"),
		report.Contract.EndAt.Format("02/01/2006")))
	set("A5", "Gerado em")
	set("B5", report.GeneratedAt.Format("02/01/2006 15:04"))

	var totalContracted, totalAcquired float64
	for _, item := range report.Contract.Items {
		totalContracted += item.ContractedQuantity * item.UnitPrice
		totalAcquired += item.AcquiredQuantity * item.UnitPrice
	}
	set("A7", "Valor contratado")
	set("B7", totalContracted)
	set("A8", "Valor consumido")
	set("B8", totalAcquired)
	set("A9", "Saldo")
	set("B9", totalContracted-totalAcquired)

	return file.SetColWidth(sheet, "A", "B", 28)
}

func (g *Generator) writeItems(file *excelize.File, sheet string, report model.BalanceReport) error {
	headers := []string{"Produto", "Unidade", "Preço unit.", "Qtde. contratada", "Qtde. adquirida", "Saldo", "% consumido"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, item := range report.Contract.Items {
		consumed := 0.0
		if item.ContractedQuantity > 0 {
			consumed = item.AcquiredQuantity / item.ContractedQuantity * 100
		}
		values := []interface{}{
			item.Description,
			item.Unit,
			item.UnitPrice,
			item.ContractedQuantity,
			item.AcquiredQuantity,
			item.Balance(),
			fmt.Sprintf("%.1f%%", consumed),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := file.SetColWidth(sheet, "A", "A", 36); err != nil {
		return err
	}
	return file.SetColWidth(sheet, "B", "G", 18)
}

package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/rezieresouza-rgb/portal-gestao/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the printable order guide from the order's snapshot
// lines. Reads only; the ledger is never touched here.
func (g *Generator) Generate(doc model.OrderDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Core fonts are cp1252, which covers Portuguese.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Guia de Fornecimento"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Guia %s de %s", doc.Order.OrderNumber, formatDate(doc.Order.IssueDate))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Contrato: %s (de %s a %s)", doc.Contract.SupplierName, formatDate(doc.Contract.StartAt), formatDate(doc.Contract.EndAt))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addPartyBlock(pdf, tr, "Escola", []string{
		doc.School.Name,
		fmt.Sprintf("CNPJ: %s", safeValue(doc.School.CNPJ)),
		fmt.Sprintf("Endereço: %s", safeValue(doc.School.Address)),
		fmt.Sprintf("Telefone: %s", safeValue(doc.School.Phone)),
	})
	pdf.Ln(2)
	addPartyBlock(pdf, tr, "Fornecedor", []string{
		doc.Contract.SupplierName,
		fmt.Sprintf("CNPJ: %s", safeValue(doc.Contract.SupplierDoc)),
	})
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Itens"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	headers := []string{"Produto", "Unid.", "Qtde.", "Preço unit.", "Total"}
	colWidths := []float64{80, 20, 25, 30, 25}
	drawTableRow(pdf, tr, headers, colWidths, true)

	for _, item := range doc.Order.Items {
		row := []string{
			item.Description,
			item.Unit,
			formatQuantity(item.Quantity),
			formatCurrency(item.UnitPrice),
			formatCurrency(item.LineTotal()),
		}
		drawTableRow(pdf, tr, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Valor total: R$ %s", formatCurrency(doc.Order.TotalValue))), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Data de entrega: %s", formatDate(doc.Order.DeliveryDate))), "", 1, "L", false, 0, "")
	if doc.Order.Observations != "" {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("Observações: %s", doc.Order.Observations)), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Assinaturas"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	signatureBlock(pdf, tr, "Escola", doc.School.Director)
	signatureBlock(pdf, tr, "Fornecedor", "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPartyBlock(pdf *gofpdf.Fpdf, tr func(string) string, title string, lines []string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, tr func(string) string, role, name string) {
	pdf.Ln(10)
	pdf.CellFormat(90, 6, "_________________________________", "", 1, "L", false, 0, "")
	label := role
	if name != "" {
		label = fmt.Sprintf("%s - %s", role, name)
	}
	pdf.CellFormat(90, 6, tr(label), "", 1, "L", false, 0, "")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// formatQuantity prints one decimal place; formatCurrency prints two with a
// decimal comma, matching the portal's display convention.
func formatQuantity(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 1, 64), ".", ",", 1)
}

func formatCurrency(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

func safeValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

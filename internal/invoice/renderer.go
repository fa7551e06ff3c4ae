package invoice

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

var (
	ErrIncompleteSnapshot = errors.New("order snapshot is incomplete")
	ErrNotReady           = errors.New("invoice not ready")
)

// Renderer turns a fixed order snapshot into a retrievable document and
// later resolves the stored handle back to it.
type Renderer interface {
	Render(order *domain.Order) (string, error)
	Resolve(handle string) error
}

// PDF renders invoices to disk with one file per bill number.
type PDF struct {
	dir      string
	logoPath string
}

func NewPDF(dir string) *PDF {
	return &PDF{dir: dir, logoPath: "static/logo.png"}
}

func (p *PDF) Render(order *domain.Order) (string, error) {
	if order == nil || order.BillNumber == "" || len(order.Lines) == 0 {
		return "", ErrIncompleteSnapshot
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create invoice dir: %w", err)
	}
	path := filepath.Join(p.dir, fmt.Sprintf("invoice_%s.pdf", order.BillNumber))

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	if _, err := os.Stat(p.logoPath); err == nil {
		pdf.ImageOptions(p.logoPath, 10, 10, 38, 0, false, gofpdf.ImageOptions{}, 0, "")
		pdf.Ln(30)
	}

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	info := [][2]string{
		{"Bill #:", order.BillNumber},
		{"Date:", time.Now().Format("2006-01-02 15:04")},
		{"Customer:", order.Contact.Name},
		{"Phone:", order.Contact.Phone},
		{"Address:", order.Contact.Address},
	}
	for _, row := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Line-item table
	pdf.SetFillColor(215, 35, 35)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(12, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(96, 8, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(18, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, "Total", "1", 1, "C", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for i, line := range order.Lines {
		pdf.CellFormat(12, 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(96, 8, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 8, "$"+line.UnitPrice.Amount.StringFixed(4), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 8, "$"+line.Subtotal().Amount.StringFixed(4), "1", 1, "R", false, 0, "")
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(126, 8, "", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, fmt.Sprintf("Total (%s):", order.Total.Currency), "1", 0, "R", true, 0, "")
	pdf.CellFormat(32, 8, order.Total.Amount.StringFixed(2), "1", 1, "R", true, 0, "")
	if order.Method == domain.MethodQR {
		pdf.CellFormat(126, 8, "", "1", 0, "C", true, 0, "")
		pdf.CellFormat(32, 8, fmt.Sprintf("Total (%s):", order.SettlementTotal.Currency), "1", 0, "R", true, 0, "")
		pdf.CellFormat(32, 8, order.SettlementTotal.Amount.StringFixed(2), "1", 1, "R", true, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Thank you for shopping with us!", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write invoice: %w", err)
	}
	return path, nil
}

// Resolve checks the handle still points at a retrievable artifact.
func (p *PDF) Resolve(handle string) error {
	if handle == "" {
		return ErrNotReady
	}
	if _, err := os.Stat(handle); err != nil {
		return ErrNotReady
	}
	return nil
}

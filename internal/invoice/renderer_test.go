package invoice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

func paidOrder() *domain.Order {
	price := domain.NewMoney(decimal.NewFromFloat(0.0246305418719212), currency.USD)
	lines := []domain.CartLine{
		{ProductID: 1, Name: "Oversized Tee Black", UnitPrice: price, Quantity: 2},
		{ProductID: 2, Name: "Plaid Wool Shirt Jacket", UnitPrice: price, Quantity: 1},
	}
	total := domain.CartTotal(lines)
	return &domain.Order{
		BillNumber: "TRX1700000000000",
		SessionID:  "s1",
		Contact: domain.Contact{
			Name:    "Jane Doe",
			Email:   "jane@x.com",
			Phone:   "012345678",
			Address: "Street 271, Phnom Penh",
		},
		Lines:           lines,
		Method:          domain.MethodQR,
		Total:           total,
		SettlementTotal: total.Convert(decimal.NewFromInt(4060), currency.MustParseISO("KHR")),
		CreatedAt:       time.Now(),
	}
}

func TestPDF_RenderWritesFile(t *testing.T) {
	dir := t.TempDir()
	r := NewPDF(dir)

	path, err := r.Render(paidOrder())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "invoice_TRX1700000000000.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF", "output is not a pdf")
}

func TestPDF_RenderRejectsIncompleteSnapshots(t *testing.T) {
	r := NewPDF(t.TempDir())

	_, err := r.Render(nil)
	assert.ErrorIs(t, err, ErrIncompleteSnapshot)

	order := paidOrder()
	order.BillNumber = ""
	_, err = r.Render(order)
	assert.ErrorIs(t, err, ErrIncompleteSnapshot)

	order = paidOrder()
	order.Lines = nil
	_, err = r.Render(order)
	assert.ErrorIs(t, err, ErrIncompleteSnapshot)
}

func TestPDF_RenderIsReproduciblePerBill(t *testing.T) {
	r := NewPDF(t.TempDir())

	first, err := r.Render(paidOrder())
	require.NoError(t, err)
	second, err := r.Render(paidOrder())
	require.NoError(t, err)
	assert.Equal(t, first, second, "same bill, same handle")
}

func TestPDF_Resolve(t *testing.T) {
	r := NewPDF(t.TempDir())

	assert.ErrorIs(t, r.Resolve(""), ErrNotReady)
	assert.ErrorIs(t, r.Resolve("/nonexistent/invoice.pdf"), ErrNotReady)

	path, err := r.Render(paidOrder())
	require.NoError(t, err)
	assert.NoError(t, r.Resolve(path))
}

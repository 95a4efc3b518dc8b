package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookstore-api/internal/application/sales"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"44.98":     "44,98",
		"1000":      "1.000,00",
		"1234567.5": "1.234.567,50",
		"-25000":    "-25.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderSaleReceipt_GeneraPDF(t *testing.T) {
	now := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:       "4f6c2b1e-0c1d-4a59-9a57-3c7d2e4b8a10",
		ClientID: 123,
		Date:     now,
		Total:    decimal.RequireFromString("44.98"),
	}
	lines := []sales.ReceiptLine{
		{Detail: &entity.SaleDetail{BookID: 456, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99"), LineNo: 1}, BookTitle: "Cien años de soledad"},
		{Detail: &entity.SaleDetail{BookID: 457, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00"), LineNo: 2}},
	}

	out, err := NewReceiptRenderer("Librería").RenderSaleReceipt(context.Background(), sale, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

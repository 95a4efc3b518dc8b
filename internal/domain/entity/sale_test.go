package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
)

func TestSale_ComputeTotal(t *testing.T) {
	sale := &entity.Sale{Details: []*entity.SaleDetail{
		{Quantity: 10, UnitPrice: decimal.RequireFromString("15.50")},
		{Quantity: 3, UnitPrice: decimal.RequireFromString("22.00")},
		{Quantity: 7, UnitPrice: decimal.RequireFromString("11.99")},
	}}
	assert.Equal(t, "304.93", sale.ComputeTotal().StringFixed(2))
}

func TestSale_ComputeTotalSinLineas(t *testing.T) {
	assert.True(t, (&entity.Sale{}).ComputeTotal().IsZero())
}

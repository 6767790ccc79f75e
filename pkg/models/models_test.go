package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCloneDoesNotAlias(t *testing.T) {
	cbd := 1.5
	p := SeedProducts()[0]
	p.CBD = &cbd

	c := p.Clone()
	c.Tags[0] = "changed"
	c.Weights[0].Stock = 99
	*c.CBD = 9

	assert.Equal(t, "Relaxing", p.Tags[0])
	assert.Equal(t, 12, p.Weights[0].Stock)
	assert.Equal(t, 1.5, *p.CBD)
}

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{ProductID: "1", Weight: "3.5g", Price: decimal.NewFromInt(45), Quantity: 2},
		{ProductID: "2", Weight: "7g", Price: decimal.RequireFromString("9.99"), Quantity: 3},
	}
	assert.True(t, CartTotal(items).Equal(decimal.RequireFromString("119.97")))
	assert.True(t, CartTotal(nil).IsZero())
}

func TestOrderTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2026, 4, 20, 16, 20, 0, 0, time.UTC)
	order := Order{ID: "ABC", Timestamp: ts, Total: decimal.NewFromInt(40)}

	raw, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded Order
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Timestamp.Equal(ts))
	assert.True(t, decoded.Total.Equal(order.Total))
}

func TestNumericPricesDecode(t *testing.T) {
	var w WeightVariant
	require.NoError(t, json.Unmarshal([]byte(`{"weight":"3.5g","price":45,"stock":12}`), &w))
	assert.True(t, w.Price.Equal(decimal.NewFromInt(45)))
}

func TestNewShortCode(t *testing.T) {
	code := NewShortCode()
	assert.Len(t, code, 9)
	assert.NotEqual(t, code, NewShortCode())
}

func TestUniqueBrandsKeepsFirstSeenOrder(t *testing.T) {
	products := []Product{{Brand: "B"}, {Brand: "A"}, {Brand: "B"}, {Brand: ""}}
	assert.Equal(t, []string{"B", "A"}, UniqueBrands(products))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "admin", s.AdminPassword)
	assert.Equal(t, "0000", s.CustomerPin)
	assert.False(t, s.IsStoreOpen)
	assert.Equal(t, 100, s.Loyalty.RewardThreshold)
	assert.Equal(t, "Never", s.SourceSync.LastSync)
	assert.Len(t, DefaultCategories(), 10)
}

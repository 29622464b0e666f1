package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	a, ok := ParseAction(" Comprar ")
	assert.True(t, ok)
	assert.Equal(t, ActionBuy, a)

	a, ok = ParseAction("NO_COMPRAR")
	assert.True(t, ok)
	assert.Equal(t, ActionNoBuy, a)

	_, ok = ParseAction("vender")
	assert.False(t, ok)
}

func TestActionMessage(t *testing.T) {
	assert.Equal(t, "SUGERENCIA DE COMPRAS DE PRODUCTOS", ActionMessage(ActionBuy))
	assert.Equal(t, "NO COMPRAR POR SOBRESTOCK", ActionMessage(ActionNoBuy))
	assert.Equal(t, "NO COMPRAR POR SOBRESTOCK", ActionMessage(Action("otro")))
}

func TestStockStatusLabel(t *testing.T) {
	assert.Equal(t, "Disponible", StockStatusLabel(true))
	assert.Equal(t, "Sin stock", StockStatusLabel(false))
}

func TestPayloadTopAndSummary(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &PredictionPayload{
		Items:       make([]PredictionItem, 7),
		Suggestions: 4,
		Overstock:   3,
		GeneratedAt: now,
	}

	assert.Len(t, p.Top(5), 5)
	assert.Len(t, p.Top(50), 7)
	assert.Empty(t, p.Top(0))

	s := p.Summary()
	assert.Equal(t, 7, s.Total)
	assert.True(t, s.HasSuggestions)
	assert.True(t, s.HasStockSummary)
	assert.Equal(t, now, s.GeneratedAt)

	empty := (&PredictionPayload{}).Summary()
	assert.False(t, empty.HasSuggestions)
	assert.False(t, empty.HasStockSummary)
}

func TestPayloadWithAction(t *testing.T) {
	p := &PredictionPayload{Items: []PredictionItem{
		{Action: ActionBuy, Probability: 0.9, Reason: "first"},
		{Action: ActionNoBuy, Probability: 0.7},
		{Action: ActionBuy, Probability: 0.6, Reason: "second"},
		{Action: ActionNoBuy, Probability: 0.1},
	}}

	buys := p.WithAction(ActionBuy)
	require.Len(t, buys, 2)
	assert.Equal(t, "first", buys[0].Reason)
	assert.Equal(t, "second", buys[1].Reason)
	assert.Len(t, p.WithAction(ActionNoBuy), 2)

	var nilPayload *PredictionPayload
	assert.NotNil(t, nilPayload.WithAction(ActionBuy))
	assert.Empty(t, (&PredictionPayload{}).WithAction(ActionNoBuy))
}

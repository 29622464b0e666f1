package prediction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

func historyOf(quantities ...int) []domain.PurchaseRecord {
	history := make([]domain.PurchaseRecord, len(quantities))
	for i, q := range quantities {
		history[i] = domain.PurchaseRecord{PeriodLabel: "p", Quantity: q}
	}
	return history
}

func TestBuildFeatures(t *testing.T) {
	p := &domain.Product{
		ID:             5,
		NormalPrice:    price("1290.50"),
		Savings:        price("200"),
		SavingsPercent: price("0.155"),
		OnSale:         true,
	}

	f := BuildFeatures(historyOf(10, 20, 30, 40, 50, 60), p)
	require.Len(t, f, FeatureCount)

	assert.InDelta(t, 35.0, f[0], 1e-9)
	assert.InDelta(t, math.Sqrt(1750.0/6.0), f[1], 1e-9)
	assert.Equal(t, 60.0, f[2])
	assert.Equal(t, 50.0, f[3])
	assert.InDelta(t, 10.0, f[4], 1e-9)
	assert.InDelta(t, 1290.5, f[5], 1e-9)
	assert.InDelta(t, 200.0, f[6], 1e-9)
	assert.InDelta(t, 0.155, f[7], 1e-9)
	assert.Equal(t, 1.0, f[8])
	assert.Equal(t, 0.0, f[9])
}

func TestBuildFeaturesMissingData(t *testing.T) {
	p := &domain.Product{ID: 5, OutOfStock: true}

	f := BuildFeatures(nil, p)
	require.Len(t, f, FeatureCount)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 1}, f)
}

func TestBuildFeaturesShortSeriesUsesFullMean(t *testing.T) {
	f := BuildFeatures(historyOf(5, 7), &domain.Product{ID: 1})
	require.Len(t, f, FeatureCount)
	assert.InDelta(t, 6.0, f[0], 1e-9)
	assert.InDelta(t, 1.0, f[1], 1e-9)
	assert.InDelta(t, 1.0, f[4], 1e-9)
}

func TestBuildFeaturesOnSynthesizedHistory(t *testing.T) {
	for id := int64(1); id <= 20; id++ {
		p := &domain.Product{ID: id}
		assert.Len(t, BuildFeatures(SynthesizeHistory(p, julyBase), p), FeatureCount)
	}
}

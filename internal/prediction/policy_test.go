package prediction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		quantities  []int
		product     *domain.Product
		want        Decision
	}{
		{
			name:        "steady demand buys the projected gap",
			probability: 0.9,
			quantities:  []int{10, 10, 10, 10, 10, 10},
			product:     &domain.Product{ID: 1},
			want:        Decision{Action: domain.ActionBuy, Available: true, StockEstimate: 10, SuggestedQuantity: 1},
		},
		{
			name:        "threshold is inclusive",
			probability: CompraThreshold,
			quantities:  []int{10, 10, 10, 10, 10, 10},
			product:     &domain.Product{ID: 1},
			want:        Decision{Action: domain.ActionBuy, Available: true, StockEstimate: 10, SuggestedQuantity: 1},
		},
		{
			name:        "spike in last period falls back to average",
			probability: 0.7,
			quantities:  []int{1, 1, 1, 1, 1, 30},
			product:     &domain.Product{ID: 1},
			want:        Decision{Action: domain.ActionBuy, Available: true, StockEstimate: 6, SuggestedQuantity: 6},
		},
		{
			name:        "no buy keeps zero suggestion",
			probability: 0.2,
			quantities:  []int{1, 1, 1, 1, 1, 30},
			product:     &domain.Product{ID: 1},
			want:        Decision{Action: domain.ActionNoBuy, Available: true, StockEstimate: 6, SuggestedQuantity: 0},
		},
		{
			name:        "overstock",
			probability: 0.1,
			quantities:  []int{20, 20, 20, 20, 20, 5},
			product:     &domain.Product{ID: 1},
			want:        Decision{Action: domain.ActionNoBuy, Overstock: true, Available: true, StockEstimate: 18, SuggestedQuantity: 18},
		},
		{
			name:        "out of stock has no stock estimate",
			probability: 0.9,
			quantities:  []int{10, 10, 10, 10, 10, 10},
			product:     &domain.Product{ID: 1, OutOfStock: true},
			want:        Decision{Action: domain.ActionBuy, Available: false, StockEstimate: 0, SuggestedQuantity: 1},
		},
		{
			name:        "average rounds half to even",
			probability: 0.1,
			quantities:  []int{12, 13},
			product:     &domain.Product{ID: 1},
			want:        Decision{Action: domain.ActionNoBuy, Available: true, StockEstimate: 12, SuggestedQuantity: 1},
		},
		{
			name:        "zero history buys one unit",
			probability: 0.8,
			quantities:  []int{0, 0, 0},
			product:     &domain.Product{ID: 1},
			want:        Decision{Action: domain.ActionBuy, Available: true, StockEstimate: 0, SuggestedQuantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.probability, tt.quantities, tt.product))
		})
	}
}

func TestReferencePrice(t *testing.T) {
	assert.Equal(t, 0.0, ReferencePrice(&domain.Product{ID: 1}))
	assert.Equal(t, 15.0, ReferencePrice(&domain.Product{
		ID:        1,
		LowPrice:  decimal.NewNullDecimal(decimal.Zero),
		HighPrice: price("15"),
	}))
	assert.Equal(t, 3.0, ReferencePrice(&domain.Product{
		ID:          1,
		NormalPrice: price("-4"),
		LowPrice:    price("3"),
		HighPrice:   price("15"),
	}))
	assert.Equal(t, 1290.5, ReferencePrice(&domain.Product{ID: 1, NormalPrice: price("1290.50")}))
}

func TestReasonFor(t *testing.T) {
	tests := []struct {
		name string
		item domain.PredictionItem
		want string
	}{
		{
			name: "overstock without buy",
			item: domain.PredictionItem{Action: domain.ActionNoBuy, Overstock: true, LastQuantity: 0, MonthlyAverage: 10},
			want: ReasonOverstock,
		},
		{
			name: "overstock flag ignored when buying",
			item: domain.PredictionItem{Action: domain.ActionBuy, Overstock: true, LastQuantity: 0, MonthlyAverage: 10},
			want: ReasonNoSales,
		},
		{
			name: "rising",
			item: domain.PredictionItem{Action: domain.ActionBuy, LastQuantity: 20, MonthlyAverage: 15, Trend: 5, Probability: 0.55},
			want: ReasonRising,
		},
		{
			name: "rising needs confidence",
			item: domain.PredictionItem{Action: domain.ActionBuy, LastQuantity: 20, MonthlyAverage: 15, Trend: 5, Probability: 0.54, Volatility: 1},
			want: ReasonHealthy,
		},
		{
			name: "volatile",
			item: domain.PredictionItem{Action: domain.ActionBuy, LastQuantity: 10, MonthlyAverage: 10, Volatility: 5.01},
			want: ReasonVolatile,
		},
		{
			name: "low rotation",
			item: domain.PredictionItem{Action: domain.ActionNoBuy, LastQuantity: 9, MonthlyAverage: 10, Volatility: 1},
			want: ReasonLowRotate,
		},
		{
			name: "no history at all",
			item: domain.PredictionItem{Action: domain.ActionBuy},
			want: ReasonHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReasonFor(&tt.item))
		})
	}
}

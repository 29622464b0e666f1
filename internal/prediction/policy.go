package prediction

import (
	"math"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// CompraThreshold is the probability from which a product is worth buying.
const CompraThreshold = 0.50

const (
	ReasonOverstock = "above recent demand, wait before reordering"
	ReasonNoSales   = "no sales last period, restock opportunity"
	ReasonRising    = "rising sales trend"
	ReasonVolatile  = "volatile demand, controlled restock"
	ReasonLowRotate = "low rotation, stable levels, pause purchases"
	ReasonHealthy   = "demand has remained healthy."
)

// Decision is the outcome of the purchase policy for one product.
type Decision struct {
	Action            domain.Action
	Overstock         bool
	Available         bool
	StockEstimate     int
	SuggestedQuantity int
}

// Decide maps a probability and the product's quantity series onto an action,
// a reorder quantity and a stock estimate.
func Decide(probability float64, quantities []int, p *domain.Product) Decision {
	s := describe(quantities)
	avg := s.avg
	last := float64(s.last)

	d := Decision{
		Action:    domain.ActionNoBuy,
		Overstock: avg != 0 && last < avg*0.6,
		Available: !p.OutOfStock,
	}
	if probability >= CompraThreshold {
		d.Action = domain.ActionBuy
	}

	if d.Available {
		estimate := s.last
		if avg > 0 {
			estimate = roundInt(avg)
		}
		d.StockEstimate = max(estimate, 0)
	}

	projected := math.Max(math.Max(avg*1.1, avg+s.std), last)
	d.SuggestedQuantity = roundInt(math.Max(projected-last, 0))
	if d.Action == domain.ActionBuy && d.SuggestedQuantity <= 0 {
		d.SuggestedQuantity = max(roundInt(avg), 1)
	}

	return d
}

// ReferencePrice is the first positive price among normal, low and high, or 0.
func ReferencePrice(p *domain.Product) float64 {
	for _, candidate := range []decimal.NullDecimal{p.NormalPrice, p.LowPrice, p.HighPrice} {
		if domain.PositiveDecimal(candidate) {
			return candidate.Decimal.InexactFloat64()
		}
	}
	return 0
}

// ReasonFor explains an assembled item. Rules are checked in order and the
// first match wins.
func ReasonFor(item *domain.PredictionItem) string {
	switch {
	case item.Action == domain.ActionNoBuy && item.Overstock:
		return ReasonOverstock
	case item.LastQuantity == 0 && item.MonthlyAverage > 0:
		return ReasonNoSales
	case item.Trend > 0 && item.Probability >= 0.55:
		return ReasonRising
	case item.Volatility > item.MonthlyAverage*0.5:
		return ReasonVolatile
	case item.Action == domain.ActionNoBuy:
		return ReasonLowRotate
	default:
		return ReasonHealthy
	}
}

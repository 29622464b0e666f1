package prediction

import "github.com/appsmart/inventario/backend-go/internal/domain"

// FeatureCount is the width of every feature row. The regressor's weights are
// positionally aligned with the order produced by BuildFeatures.
const FeatureCount = 10

// BuildFeatures converts a product and its history into
// [avg, std, last, trend, momentum, price, savings, savings%, on_sale, out_of_stock].
func BuildFeatures(history []domain.PurchaseRecord, p *domain.Product) []float64 {
	quantities := quantitiesOf(history)
	if len(quantities) == 0 {
		quantities = []int{0}
	}

	s := describe(quantities)
	recentAvg := s.avg
	if len(quantities) >= 3 {
		recentAvg = mean(quantities[len(quantities)-3:])
	}

	return []float64{
		s.avg,
		s.std,
		float64(s.last),
		float64(s.last - s.first),
		float64(s.last) - recentAvg,
		domain.DecimalOrZero(p.NormalPrice),
		domain.DecimalOrZero(p.Savings),
		domain.DecimalOrZero(p.SavingsPercent),
		indicator(p.OnSale),
		indicator(p.OutOfStock),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

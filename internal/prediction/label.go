package prediction

import "github.com/appsmart/inventario/backend-go/internal/domain"

// DeriveLabel produces the training target for a product from its own
// synthesized history: 1 when the product looks worth reordering, 0 otherwise.
// The classifier is trained on these heuristic labels, not on observed
// purchases.
func DeriveLabel(history []domain.PurchaseRecord, p *domain.Product) int {
	quantities := quantitiesOf(history)
	if len(quantities) == 0 {
		return 0
	}

	s := describe(quantities)
	last := float64(s.last)

	shortage := p.OutOfStock || s.last == 0
	strongTrend := last > float64(s.first)*1.25
	recovering := last > s.avg*1.15
	if shortage || strongTrend || recovering {
		return 1
	}

	rotationFloor := 1.0
	if s.max != 0 {
		rotationFloor = float64(s.max) * 0.4
	}
	if s.avg < rotationFloor && !p.OnSale {
		return 0
	}

	if last >= s.avg {
		return 1
	}
	return 0
}

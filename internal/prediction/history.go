package prediction

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

// HistoryMonths is the length of every synthesized series.
const HistoryMonths = 6

var monthAbbreviations = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// newProductRand returns the generator owned by one synthesis of one product.
// The seed only depends on the product id, so two calls for the same product
// produce the same series.
func newProductRand(productID int64) *rand.Rand {
	seed := uint64(productID*97 + 13)
	return rand.New(rand.NewPCG(seed, seed))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// BaseDemand is the monthly demand level before seasonality, noise and drift.
func BaseDemand(p *domain.Product) float64 {
	price := domain.DecimalOrZero(p.NormalPrice)
	demand := math.Max(8.0, 240.0-price*0.8)
	if p.OnSale {
		demand *= 1.2
	}
	if p.OutOfStock {
		demand *= 0.65
	}
	if p.BrandName() != "" {
		demand *= 1.05
	}
	return demand
}

// PeriodLabel names the month that lies offset periods before base, e.g.
// "Mar 25".
func PeriodLabel(offset int, base time.Time) string {
	first := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
	target := first.AddDate(0, 0, -30*offset)
	return fmt.Sprintf("%s %02d", monthAbbreviations[target.Month()-1], target.Year()%100)
}

// SynthesizeHistory builds HistoryMonths purchase records for p, oldest first.
// base anchors the period labels only; quantities and revenues depend solely
// on the product.
func SynthesizeHistory(p *domain.Product, base time.Time) []domain.PurchaseRecord {
	rng := newProductRand(p.ID)
	price := domain.DecimalOrZero(p.NormalPrice)
	demand := BaseDemand(p)
	drift := uniform(rng, -0.12, 0.18)

	history := make([]domain.PurchaseRecord, 0, HistoryMonths)
	for offset := HistoryMonths - 1; offset >= 0; offset-- {
		position := float64(HistoryMonths - offset)
		seasonality := 1.0 + math.Sin(position/6.0*math.Pi)*0.15
		noise := uniform(rng, 0.85, 1.15)
		trend := 1.0 + drift*(position/HistoryMonths)

		quantity := int(math.Floor(demand * seasonality * noise * trend))
		if quantity < 0 {
			quantity = 0
		}

		var revenue float64
		if price != 0 {
			revenue = float64(quantity) * price
		} else {
			revenue = float64(quantity) * uniform(rng, 4.0, 9.5)
		}

		history = append(history, domain.PurchaseRecord{
			PeriodLabel: PeriodLabel(offset, base),
			Quantity:    quantity,
			Revenue:     roundFloat(revenue, 2),
		})
	}

	return history
}

// internal/analytics/inventory.go
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

// ProductFlags are the per-product facts the inventory cards are built from.
type ProductFlags struct {
	HasPrice     bool `json:"disponible"`
	ActiveOffer  bool `json:"oferta_activa"`
	Inconsistent bool `json:"stock_inconsistente"`
}

// AnalyzeProduct classifies a single catalog entry. A product counts as
// available when any of its prices is positive, and as inconsistent when it
// is flagged out of stock while still carrying a price.
func AnalyzeProduct(p *domain.Product) ProductFlags {
	hasPrice := domain.PositiveDecimal(p.NormalPrice) ||
		domain.PositiveDecimal(p.LowPrice) ||
		domain.PositiveDecimal(p.HighPrice)

	return ProductFlags{
		HasPrice:     hasPrice,
		ActiveOffer:  p.OnSale || domain.PositiveDecimal(p.Savings) || domain.PositiveDecimal(p.SavingsPercent),
		Inconsistent: p.OutOfStock && hasPrice,
	}
}

// ComputeInventoryMetrics aggregates the catalog for the dashboard.
func ComputeInventoryMetrics(products []*domain.Product) domain.InventoryMetrics {
	var (
		m        domain.InventoryMetrics
		priceSum = decimal.Zero
		priced   int64
		brands   = make(map[string]struct{})
	)

	for _, p := range products {
		if p == nil {
			continue
		}
		m.Total++

		flags := AnalyzeProduct(p)
		if flags.HasPrice {
			m.Available++
		}
		if flags.ActiveOffer {
			m.OnSale++
		}
		if flags.Inconsistent {
			m.Inconsistent++
		}

		if brand := p.BrandName(); brand != "" {
			brands[brand] = struct{}{}
		}
		// NULL prices are ignored, matching SQL SUM/AVG
		if p.NormalPrice.Valid {
			priceSum = priceSum.Add(p.NormalPrice.Decimal)
			priced++
		}
	}

	m.OutOfStock = max(m.Total-m.Available, 0)
	m.RegisteredBrands = len(brands)
	m.PriceSum = priceSum.Round(2).InexactFloat64()
	if priced > 0 {
		m.AveragePrice = priceSum.Div(decimal.NewFromInt(priced)).Round(2).InexactFloat64()
	}
	return m
}

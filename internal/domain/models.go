// backend-go/internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as stored in the productos table. The prediction
// engine only ever reads it.
type Product struct {
	ID             int64               `json:"id_producto" db:"id_producto"`
	Title          string              `json:"title" db:"title"`
	Brand          *string             `json:"brand,omitempty" db:"brand"`
	NormalPrice    decimal.NullDecimal `json:"normal_price" db:"normal_price"`
	LowPrice       decimal.NullDecimal `json:"low_price" db:"low_price"`
	HighPrice      decimal.NullDecimal `json:"high_price" db:"high_price"`
	OnSale         bool                `json:"oferta" db:"oferta"`
	OutOfStock     bool                `json:"sin_stock" db:"sin_stock"`
	Savings        decimal.NullDecimal `json:"ahorro" db:"ahorro"`
	SavingsPercent decimal.NullDecimal `json:"ahorro_percent" db:"ahorro_percent"`
}

// BrandName returns the brand as stored, or "" when none is registered. Any
// non-empty value counts as a brand, whitespace included.
func (p *Product) BrandName() string {
	if p == nil || p.Brand == nil {
		return ""
	}
	return *p.Brand
}

// DecimalOrZero converts an optional decimal into a float, treating absent
// values as zero.
func DecimalOrZero(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return d.Decimal.InexactFloat64()
}

// PositiveDecimal reports whether d is present and strictly greater than zero.
func PositiveDecimal(d decimal.NullDecimal) bool {
	return d.Valid && d.Decimal.IsPositive()
}

// PurchaseRecord is one synthesized month of sales for a product.
type PurchaseRecord struct {
	PeriodLabel string  `json:"period_label"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// InventoryMetrics summarises the catalog for the dashboard cards.
type InventoryMetrics struct {
	Total            int     `json:"total_productos"`
	Available        int     `json:"productos_con_stock"`
	OutOfStock       int     `json:"productos_sin_stock"`
	OnSale           int     `json:"productos_en_oferta"`
	Inconsistent     int     `json:"productos_inconsistentes"`
	RegisteredBrands int     `json:"marcas_registradas"`
	PriceSum         float64 `json:"suma_precio"`
	AveragePrice     float64 `json:"promedio_precio"`
}

// ReportSummary backs the reports page.
type ReportSummary struct {
	Suggestions     int       `json:"sugerencias"`
	Overstock       int       `json:"sobrestock"`
	Total           int       `json:"total"`
	GeneratedAt     time.Time `json:"fecha_generacion"`
	HasSuggestions  bool      `json:"hay_sugerencias"`
	HasStockSummary bool      `json:"hay_resumen_stock"`
}

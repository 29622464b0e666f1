package domain

import "time"

// PredictionItem is the scored recommendation for a single product.
type PredictionItem struct {
	Product           *Product         `json:"producto"`
	History           []PurchaseRecord `json:"historial"`
	MonthlyAverage    float64          `json:"promedio_mensual"`
	LastQuantity      int              `json:"ultima_cantidad"`
	Trend             float64          `json:"tendencia"`
	Volatility        float64          `json:"volatilidad"`
	Probability       float64          `json:"probabilidad"`
	ProbabilityPct    float64          `json:"probabilidad_pct"`
	Action            Action           `json:"accion"`
	Message           string           `json:"mensaje"`
	Reason            string           `json:"motivo"`
	MaxHistory        int              `json:"max_historial"`
	HistorySeries     []int            `json:"historial_series"`
	Overstock         bool             `json:"es_sobrestock"`
	ReferencePrice    float64          `json:"precio_referencia"`
	SuggestedQuantity int              `json:"cantidad_sugerida"`
	StockEstimate     int              `json:"stock_estimado"`
	Available         bool             `json:"disponible"`
}

// PredictionPayload is the result of one prediction run. Items are ordered by
// probability, highest first, and Suggestions+Overstock always equals
// len(Items).
type PredictionPayload struct {
	Items       []PredictionItem `json:"items"`
	Suggestions int              `json:"sugerencias"`
	Overstock   int              `json:"sobrestock"`
	GeneratedAt time.Time        `json:"fecha_generacion"`
}

// Top returns at most n items from the head of the ranking.
func (p *PredictionPayload) Top(n int) []PredictionItem {
	if p == nil || n <= 0 {
		return []PredictionItem{}
	}
	if n > len(p.Items) {
		n = len(p.Items)
	}
	return p.Items[:n]
}

// WithAction returns the items carrying action a, keeping their rank.
func (p *PredictionPayload) WithAction(a Action) []PredictionItem {
	items := []PredictionItem{}
	if p == nil {
		return items
	}
	for _, item := range p.Items {
		if item.Action == a {
			items = append(items, item)
		}
	}
	return items
}

// Summary projects the payload into the reports page counters.
func (p *PredictionPayload) Summary() ReportSummary {
	return ReportSummary{
		Suggestions:     p.Suggestions,
		Overstock:       p.Overstock,
		Total:           len(p.Items),
		GeneratedAt:     p.GeneratedAt,
		HasSuggestions:  p.Suggestions > 0,
		HasStockSummary: len(p.Items) > 0,
	}
}

// PredictionDashboard combines catalog metrics with the head of the ranking.
type PredictionDashboard struct {
	Metrics     InventoryMetrics `json:"metricas"`
	Suggestions int              `json:"pred_sugerencias"`
	Overstock   int              `json:"pred_sobrestock"`
	Top         []PredictionItem `json:"pred_top"`
	GeneratedAt time.Time        `json:"pred_fecha_generacion"`
}

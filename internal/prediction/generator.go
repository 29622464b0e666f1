package prediction

import (
	"sort"
	"time"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/pkg/logger"
)

// Config tunes the classifier trained on every run.
type Config struct {
	LearningRate float64
	Epochs       int
}

// DefaultConfig returns the learning rate and epoch count used in production.
func DefaultConfig() Config {
	return Config{
		LearningRate: DefaultLearningRate,
		Epochs:       DefaultEpochs,
	}
}

// Generator scores a product collection. It holds no state between runs: each
// Generate call builds its own histories and its own regressor, so a single
// Generator can be shared by concurrent requests.
type Generator struct {
	cfg Config
	now func() time.Time
}

// NewGenerator creates a Generator using the wall clock.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg, now: time.Now}
}

// WithClock returns a copy of g that reads the current time from now.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	clone := *g
	clone.now = now
	return &clone
}

// Generate synthesizes a history per product, trains one classifier on the
// whole batch and returns the ranked recommendations.
func (g *Generator) Generate(products []*domain.Product) *domain.PredictionPayload {
	generatedAt := g.now()
	products = withoutNil(products)
	if len(products) == 0 {
		return &domain.PredictionPayload{
			Items:       []domain.PredictionItem{},
			GeneratedAt: generatedAt,
		}
	}

	histories := make([][]domain.PurchaseRecord, len(products))
	features := make([][]float64, len(products))
	labels := make([]int, len(products))
	for i, p := range products {
		histories[i] = SynthesizeHistory(p, generatedAt)
		features[i] = BuildFeatures(histories[i], p)
		labels[i] = DeriveLabel(histories[i], p)
	}

	model := NewLogisticRegressor(g.cfg.LearningRate, g.cfg.Epochs)
	model.Fit(features, labels)

	payload := &domain.PredictionPayload{
		Items:       make([]domain.PredictionItem, 0, len(products)),
		GeneratedAt: generatedAt,
	}
	for i, p := range products {
		history := histories[i]
		prob := model.Score(BuildFeatures(history, p))
		item := assembleItem(p, history, prob)

		if item.Action == domain.ActionBuy {
			payload.Suggestions++
		} else {
			payload.Overstock++
		}
		payload.Items = append(payload.Items, item)
	}

	sort.SliceStable(payload.Items, func(i, j int) bool {
		return payload.Items[i].Probability > payload.Items[j].Probability
	})

	logger.Log.Debug().
		Int("products", len(products)).
		Int("sugerencias", payload.Suggestions).
		Int("sobrestock", payload.Overstock).
		Msg("prediction run completed")

	return payload
}

func withoutNil(products []*domain.Product) []*domain.Product {
	kept := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return kept
}

func assembleItem(p *domain.Product, history []domain.PurchaseRecord, prob float64) domain.PredictionItem {
	quantities := quantitiesOf(history)
	s := describe(quantities)
	decision := Decide(prob, quantities, p)

	item := domain.PredictionItem{
		Product:           p,
		History:           history,
		MonthlyAverage:    roundFloat(s.avg, 2),
		LastQuantity:      s.last,
		Trend:             roundFloat(float64(s.last-s.first), 2),
		Volatility:        roundFloat(s.std, 2),
		Probability:       roundFloat(prob, 4),
		ProbabilityPct:    roundFloat(prob*100, 2),
		Action:            decision.Action,
		Message:           domain.ActionMessage(decision.Action),
		MaxHistory:        s.max,
		HistorySeries:     quantities,
		Overstock:         decision.Overstock,
		ReferencePrice:    roundFloat(ReferencePrice(p), 2),
		SuggestedQuantity: decision.SuggestedQuantity,
		StockEstimate:     decision.StockEstimate,
		Available:         decision.Available,
	}
	item.Reason = ReasonFor(&item)
	return item
}

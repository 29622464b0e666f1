package prediction

import "math"

const (
	DefaultLearningRate = 0.08
	DefaultEpochs       = 450
)

// Sigmoid is the logistic function, clamped outside [-700, 700] so exp never
// overflows.
func Sigmoid(z float64) float64 {
	if z < -700 {
		return 0.0
	}
	if z > 700 {
		return 1.0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// minMaxScaler maps each column onto [0,1] using the bounds of the batch it
// was fitted on. Constant columns map to 0.
type minMaxScaler struct {
	min []float64
	max []float64
}

func fitMinMaxScaler(rows [][]float64) minMaxScaler {
	cols := len(rows[0])
	s := minMaxScaler{
		min: make([]float64, cols),
		max: make([]float64, cols),
	}
	copy(s.min, rows[0])
	copy(s.max, rows[0])
	for _, row := range rows[1:] {
		for idx, value := range row {
			if value < s.min[idx] {
				s.min[idx] = value
			}
			if value > s.max[idx] {
				s.max[idx] = value
			}
		}
	}
	return s
}

func (s minMaxScaler) transform(row []float64) []float64 {
	scaled := make([]float64, len(row))
	for idx, value := range row {
		if idx >= len(s.min) {
			break
		}
		lo, hi := s.min[idx], s.max[idx]
		if nearlyEqual(lo, hi) {
			continue
		}
		scaled[idx] = (value - lo) / (hi - lo)
	}
	return scaled
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

// LogisticRegressor is a binary classifier trained with full-batch gradient
// descent on min-max scaled features. weights[0] is the bias.
type LogisticRegressor struct {
	learningRate float64
	epochs       int
	weights      []float64
	scaler       minMaxScaler
}

// NewLogisticRegressor creates an unfitted regressor. Non-positive arguments
// fall back to the defaults.
func NewLogisticRegressor(learningRate float64, epochs int) *LogisticRegressor {
	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}
	if epochs <= 0 {
		epochs = DefaultEpochs
	}
	return &LogisticRegressor{learningRate: learningRate, epochs: epochs}
}

// Fit trains on rows and their 0/1 labels. An empty batch leaves the model
// without weights.
func (m *LogisticRegressor) Fit(rows [][]float64, labels []int) {
	if len(rows) == 0 {
		m.weights = nil
		m.scaler = minMaxScaler{}
		return
	}

	m.scaler = fitMinMaxScaler(rows)
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		scaled[i] = m.scaler.transform(row)
	}

	nFeatures := len(scaled[0])
	m.weights = make([]float64, nFeatures+1)
	samples := len(scaled)
	if len(labels) < samples {
		samples = len(labels)
	}
	if samples == 0 {
		return
	}
	step := m.learningRate / float64(samples)

	gradients := make([]float64, nFeatures+1)
	for epoch := 0; epoch < m.epochs; epoch++ {
		for i := range gradients {
			gradients[i] = 0
		}
		for i := 0; i < samples; i++ {
			row := scaled[i]
			errTerm := Sigmoid(m.linear(row)) - float64(labels[i])
			gradients[0] += errTerm
			for idx, value := range row {
				gradients[idx+1] += errTerm * value
			}
		}
		for idx := range m.weights {
			m.weights[idx] -= step * gradients[idx]
		}
	}
}

func (m *LogisticRegressor) linear(scaled []float64) float64 {
	z := m.weights[0]
	for idx, value := range scaled {
		if idx+1 >= len(m.weights) {
			break
		}
		z += m.weights[idx+1] * value
	}
	return z
}

// Score returns the probability of label 1 for a raw feature row, scaled with
// the bounds captured by Fit. An unfitted model scores 0.
func (m *LogisticRegressor) Score(row []float64) float64 {
	if len(m.weights) == 0 {
		return 0.0
	}
	return Sigmoid(m.linear(m.scaler.transform(row)))
}

// Weights returns a copy of the fitted weights, bias first.
func (m *LogisticRegressor) Weights() []float64 {
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

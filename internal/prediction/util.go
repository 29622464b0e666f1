package prediction

import (
	"math"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

// roundFloat rounds v to the given number of decimal places, ties to even.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.RoundToEven(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*factor) / factor
}

// roundInt rounds half to even, so an average of 12.5 yields 12.
func roundInt(v float64) int {
	return int(math.RoundToEven(v))
}

// seriesStats holds the descriptive statistics every stage derives from a
// quantity series.
type seriesStats struct {
	avg   float64
	std   float64
	last  int
	first int
	max   int
}

func quantitiesOf(history []domain.PurchaseRecord) []int {
	quantities := make([]int, len(history))
	for i, record := range history {
		quantities[i] = record.Quantity
	}
	return quantities
}

// describe computes mean, population standard deviation, first, last and max.
// An empty series yields the zero value.
func describe(quantities []int) seriesStats {
	n := len(quantities)
	if n == 0 {
		return seriesStats{}
	}

	var sum float64
	maxValue := quantities[0]
	for _, q := range quantities {
		sum += float64(q)
		if q > maxValue {
			maxValue = q
		}
	}
	avg := sum / float64(n)

	var std float64
	if n > 1 {
		var sq float64
		for _, q := range quantities {
			d := float64(q) - avg
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n))
	}

	return seriesStats{
		avg:   avg,
		std:   std,
		last:  quantities[n-1],
		first: quantities[0],
		max:   maxValue,
	}
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// Fuzzy aggregation operators. The Bellman-Zadeh decision rule uses OpMin
// (fuzzy-AND of satisfaction across goals); the remaining operators are the
// alternative t-norms and averaging operators evaluated in the reference
// experiments.

package sim

import "math"

// AggregationOp identifies a fuzzy aggregation operator.
type AggregationOp string

const (
	OpMin          AggregationOp = "min"
	OpMax          AggregationOp = "max"
	OpProduct      AggregationOp = "product"
	OpYager        AggregationOp = "yager"
	OpHarmonicMean AggregationOp = "harmonic-mean"
	OpOWA          AggregationOp = "owa"
)

// validAggregationOps maps accepted operator strings.
var validAggregationOps = map[AggregationOp]bool{
	OpMin:          true,
	OpMax:          true,
	OpProduct:      true,
	OpYager:        true,
	OpHarmonicMean: true,
	OpOWA:          true,
}

// IsValidAggregationOp returns true if the given string names a known operator.
func IsValidAggregationOp(op string) bool {
	return validAggregationOps[AggregationOp(op)]
}

// Aggregate combines two membership degrees with the given operator.
// param is the lambda of the Yager t-norm (param == 1 degenerates to the
// Lukasiewicz t-norm) or the wmax weight of the OWA operator; it is ignored
// by the parameterless operators.
func Aggregate(op AggregationOp, param, x, y float64) float64 {
	switch op {
	case OpMax:
		return math.Max(x, y)
	case OpProduct:
		return x * y
	case OpYager:
		return math.Max(0.0, 1-math.Pow(math.Pow(1-x, param)+math.Pow(1-y, param), 1/param))
	case OpHarmonicMean:
		if x == 0 || y == 0 {
			return 0.0
		}
		return 2 / ((1 / x) + (1 / y))
	case OpOWA:
		// param = wmax; 0 <= wmax <= 1
		if x == 0 || y == 0 {
			return 0.0
		}
		w := math.Max(param, 1-param)
		return w*math.Max(x, y) + (1-w)*math.Min(x, y)
	default:
		return math.Min(x, y)
	}
}

// AggregateAll folds a list of membership degrees with the given operator,
// in list order. An empty list aggregates to 0.
func AggregateAll(op AggregationOp, param float64, degrees []float64) float64 {
	if len(degrees) == 0 {
		return 0.0
	}
	acc := degrees[0]
	for _, d := range degrees[1:] {
		acc = Aggregate(op, param, acc, d)
	}
	return acc
}

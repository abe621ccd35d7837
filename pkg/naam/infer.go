package naam

import (
	"fmt"
	"math"

	"naamd/pkg/types"
)

// decode turns the raw N×2 score matrix into result rows: softmax across the
// class axis, argmax for the label (class 0 wins exact ties), and the class-1
// probability as a percentage rounded half-to-even.
func decode(names []string, scores [][]float64) ([]types.Prediction, error) {
	if len(scores) != len(names) {
		return nil, ErrPrediction(fmt.Errorf("classifier returned %d rows for %d names", len(scores), len(names)))
	}
	out := make([]types.Prediction, len(names))
	for i, row := range scores {
		if len(row) != 2 {
			return nil, ErrPrediction(fmt.Errorf("classifier row %d has %d columns, want 2", i, len(row)))
		}
		p0, p1 := softmax2(row[0], row[1])
		label := types.LabelNotMuslim
		if p1 > p0 {
			label = types.LabelMuslim
		}
		out[i] = types.Prediction{
			Name:           names[i],
			PredLabel:      label,
			PredProbMuslim: math.RoundToEven(p1 * 100),
		}
	}
	return out, nil
}

// softmax2 is the two-class normalized exponential, shifted by the max for
// numerical stability.
func softmax2(s0, s1 float64) (float64, float64) {
	m := math.Max(s0, s1)
	e0 := math.Exp(s0 - m)
	e1 := math.Exp(s1 - m)
	sum := e0 + e1
	return e0 / sum, e1 / sum
}

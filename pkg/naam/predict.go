package naam

import (
	"context"

	"naamd/pkg/types"
)

// Predict validates in, ensures the lang model is resident (downloading and
// loading as needed; latest forces both), runs one batched inference, and
// returns one row per input name in input order.
func (c *Cache) Predict(ctx context.Context, in Input, lang types.Lang, latest bool) ([]types.Prediction, error) {
	names, err := in.normalize(lang)
	if err != nil {
		return nil, err
	}
	model, err := c.ensureModel(ctx, lang, latest)
	if err != nil {
		return nil, err
	}

	out := make([]types.Prediction, len(names))
	missIdx := make([]int, 0, len(names))
	missNames := make([]string, 0, len(names))
	for i, name := range names {
		if c.results != nil {
			if p, ok := c.results.Get(memoKey(lang, name)); ok {
				p.Name = name
				out[i] = p
				continue
			}
		}
		missIdx = append(missIdx, i)
		missNames = append(missNames, name)
	}

	if len(missNames) > 0 {
		// One classifier invocation for the whole remaining batch.
		scores, err := model.Predict(missNames)
		if err != nil {
			predictFailuresTotal.Inc()
			return nil, ErrPrediction(err)
		}
		rows, err := decode(missNames, scores)
		if err != nil {
			predictFailuresTotal.Inc()
			return nil, err
		}
		for j, row := range rows {
			out[missIdx[j]] = row
			if c.results != nil {
				c.results.Add(memoKey(lang, row.Name), row)
			}
		}
	}
	predictionsTotal.Add(float64(len(names)))
	return out, nil
}

func memoKey(lang types.Lang, name string) string {
	return string(lang) + "\x00" + name
}

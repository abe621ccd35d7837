package classifier

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
)

// WeightsFile is the serialized model inside each sub-model directory.
const WeightsFile = "model.json"

const formatVersion = 1

// weights is the on-disk model: a hashed character n-gram bag feeding a
// linear layer with one column per class.
type weights struct {
	Format   int         `json:"format"`
	Classes  int         `json:"classes"`
	Buckets  int         `json:"buckets"`
	NgramMin int         `json:"ngram_min"`
	NgramMax int         `json:"ngram_max"`
	Weights  [][]float64 `json:"weights"` // buckets × classes
	Bias     []float64   `json:"bias"`    // classes
}

// Linear is a hashed char-ngram linear classifier. The forward pass is pure
// Go; no runtime dependency on the training stack.
type Linear struct {
	w weights
}

// Load reads the serialized model from dir and validates its shape.
func Load(dir string) (*Linear, error) {
	path := filepath.Join(dir, WeightsFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model weights %s: %w", path, err)
	}
	var w weights
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse model weights %s: %w", path, err)
	}
	if w.Format != formatVersion {
		return nil, fmt.Errorf("model weights %s: format %d not supported (expected %d; re-download with latest=true)",
			path, w.Format, formatVersion)
	}
	if w.Classes != 2 {
		return nil, fmt.Errorf("model weights %s: expected 2 classes, got %d", path, w.Classes)
	}
	if w.Buckets <= 0 || len(w.Weights) != w.Buckets {
		return nil, fmt.Errorf("model weights %s: %d weight rows for %d buckets", path, len(w.Weights), w.Buckets)
	}
	for i, row := range w.Weights {
		if len(row) != w.Classes {
			return nil, fmt.Errorf("model weights %s: row %d has %d columns, want %d", path, i, len(row), w.Classes)
		}
	}
	if len(w.Bias) != w.Classes {
		return nil, fmt.Errorf("model weights %s: bias has %d entries, want %d", path, len(w.Bias), w.Classes)
	}
	if w.NgramMin <= 0 || w.NgramMax < w.NgramMin {
		return nil, fmt.Errorf("model weights %s: bad ngram range [%d,%d]", path, w.NgramMin, w.NgramMax)
	}
	return &Linear{w: w}, nil
}

// Predict runs the forward pass over the whole batch in one call.
func (l *Linear) Predict(names []string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		out[i] = l.forward(name)
	}
	return out, nil
}

func (l *Linear) forward(name string) []float64 {
	scores := append([]float64(nil), l.w.Bias...)
	runes := []rune(name)
	for n := l.w.NgramMin; n <= l.w.NgramMax; n++ {
		if n > len(runes) {
			break
		}
		for i := 0; i+n <= len(runes); i++ {
			b := bucket(runes[i:i+n], l.w.Buckets)
			for c := 0; c < l.w.Classes; c++ {
				scores[c] += l.w.Weights[b][c]
			}
		}
	}
	return scores
}

func bucket(gram []rune, buckets int) int {
	h := fnv.New32a()
	h.Write([]byte(string(gram)))
	return int(h.Sum32() % uint32(buckets))
}

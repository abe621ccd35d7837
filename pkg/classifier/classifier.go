// Package classifier defines the opaque classifier contract consumed by the
// prediction pipeline, plus a pure-Go implementation loaded from serialized
// weights. Callers other than Load must not assume any on-disk format.
package classifier

// Classifier maps a batch of raw name strings to an N×2 matrix of raw class
// scores (logits). Column 0 is "not-muslim", column 1 is "muslim".
type Classifier interface {
	Predict(names []string) ([][]float64, error)
}

// Func adapts a plain function to the Classifier interface. Used by tests
// to stub the model.
type Func func(names []string) ([][]float64, error)

func (f Func) Predict(names []string) ([][]float64, error) { return f(names) }

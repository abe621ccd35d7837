package types

// Lang selects which per-language sub-model serves a request.
type Lang string

const (
	// LangEnglish selects the Latin-script (transliterated) sub-model.
	LangEnglish Lang = "eng"
	// LangHindi selects the Devanagari-script sub-model.
	LangHindi Lang = "hin"
)

// Valid reports whether l is one of the two supported language codes.
func (l Lang) Valid() bool {
	return l == LangEnglish || l == LangHindi
}

// Labels of the fixed two-class taxonomy, indexed by class.
const (
	LabelNotMuslim = "not-muslim"
	LabelMuslim    = "muslim"
)

// Prediction is one result row. Rows preserve input order and duplicates.
type Prediction struct {
	// Original input name, unchanged.
	Name string `json:"name"`
	// Predicted label, "muslim" or "not-muslim".
	PredLabel string `json:"pred_label"`
	// Class-1 ("muslim") probability as a rounded percentage in [0,100].
	PredProbMuslim float64 `json:"pred_prob_muslim"`
}

// Column is a single named column of tabular input, the shape produced by
// pulling one column out of a CSV or dataframe-style source.
type Column struct {
	Name   string   `json:"name,omitempty"`
	Values []string `json:"values"`
}

package naam

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"naamd/pkg/types"
)

type inputKind int

const (
	kindSingle inputKind = iota
	kindBatch
	kindColumn
)

// Input is the tagged union of accepted request shapes: a single name, an
// ordered batch, or a single tabular column. It is resolved once at the
// validation boundary into a canonical ordered list.
type Input struct {
	kind   inputKind
	single string
	batch  []string
	column types.Column
}

// Single wraps one name as a one-element batch.
func Single(name string) Input { return Input{kind: kindSingle, single: name} }

// Batch wraps an ordered collection of names.
func Batch(names []string) Input { return Input{kind: kindBatch, batch: names} }

// Column wraps a single-column tabular input.
func Column(col types.Column) Input { return Input{kind: kindColumn, column: col} }

// normalize validates lang and the input shape and produces the canonical
// ordered list of names, preserving order and duplicates. No transliteration
// or case-folding happens here; names reach the model unchanged.
func (in Input) normalize(lang types.Lang) ([]string, error) {
	if !lang.Valid() {
		return nil, ErrInvalidArgument(fmt.Sprintf("unsupported language: %q (use %q or %q)",
			string(lang), string(types.LangEnglish), string(types.LangHindi)))
	}
	var names []string
	switch in.kind {
	case kindSingle:
		names = []string{in.single}
	case kindBatch:
		names = in.batch
	case kindColumn:
		names = in.column.Values
	}
	if len(names) == 0 {
		return nil, ErrInvalidArgument("input names list cannot be empty")
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, ErrInvalidArgument(fmt.Sprintf("name at index %d is empty or contains only whitespace", i))
		}
	}
	// Copy so later caller mutation cannot reorder a batch mid-flight.
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// IsEnglish reports whether text is representable in 7-bit ASCII. Purely
// informational; it does not route between sub-models.
func IsEnglish(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

package naam

import (
	"errors"
	"fmt"

	"naamd/pkg/types"
)

// invalidArgumentError signals bad caller input, raised before any I/O.
type invalidArgumentError struct{ msg string }

func (e invalidArgumentError) Error() string { return e.msg }

// ErrInvalidArgument constructs an invalidArgumentError.
func ErrInvalidArgument(msg string) error { return invalidArgumentError{msg: msg} }

// IsInvalidArgument reports whether err indicates invalid caller input (map to 400).
func IsInvalidArgument(err error) bool {
	var e invalidArgumentError
	return errors.As(err, &e)
}

// artifactUnavailableError signals that the model bundle could not be
// fetched or extracted, so no model can be loaded (map to 503).
type artifactUnavailableError struct{ cause error }

func (e artifactUnavailableError) Error() string {
	return fmt.Sprintf("model data unavailable: %v", e.cause)
}

func (e artifactUnavailableError) Unwrap() error { return e.cause }

// ErrArtifactUnavailable constructs an artifactUnavailableError wrapping cause.
func ErrArtifactUnavailable(cause error) error { return artifactUnavailableError{cause: cause} }

// IsArtifactUnavailable reports whether err indicates a failed bundle fetch.
func IsArtifactUnavailable(err error) bool {
	var e artifactUnavailableError
	return errors.As(err, &e)
}

// modelLoadError signals that the artifact is present but the language
// sub-model could not be deserialized.
type modelLoadError struct {
	lang  types.Lang
	cause error
}

func (e modelLoadError) Error() string {
	return fmt.Sprintf("failed to load %s model: %v", e.lang, e.cause)
}

func (e modelLoadError) Unwrap() error { return e.cause }

// ErrModelLoad constructs a modelLoadError for lang wrapping cause.
func ErrModelLoad(lang types.Lang, cause error) error {
	return modelLoadError{lang: lang, cause: cause}
}

// IsModelLoadFailed reports whether err indicates a failed model deserialization.
func IsModelLoadFailed(err error) bool {
	var e modelLoadError
	return errors.As(err, &e)
}

// predictionError signals that the classifier failed on a batch; the whole
// batch fails, no partial results.
type predictionError struct{ cause error }

func (e predictionError) Error() string { return fmt.Sprintf("prediction failed: %v", e.cause) }

func (e predictionError) Unwrap() error { return e.cause }

// ErrPrediction constructs a predictionError wrapping cause.
func ErrPrediction(cause error) error { return predictionError{cause: cause} }

// IsPredictionFailed reports whether err indicates a classifier failure.
func IsPredictionFailed(err error) bool {
	var e predictionError
	return errors.As(err, &e)
}

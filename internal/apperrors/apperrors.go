// Package apperrors provides the generation engine's error taxonomy.
// Every fallible operation in the engine returns one of these categories so
// callers can distinguish a fatal configuration problem from a structural
// rejection of generated output.
package apperrors

import (
	"errors"
	"fmt"
)

// Category sentinels. Wrap one of these in a GenerationError rather than
// returning it bare so callers retain the reproduction context.
var (
	// ErrConfiguration indicates a required rules key is missing or
	// mis-typed, or a (goal, frequency) pair has no prescriptive split.
	ErrConfiguration = errors.New("configuration error")

	// ErrCatalogueReference indicates a structural exercise name is absent
	// from the exercise catalogue.
	ErrCatalogueReference = errors.New("catalogue reference error")

	// ErrExhaustedPool indicates a block demands more exercises than the
	// filtered candidate pool can supply.
	ErrExhaustedPool = errors.New("exhausted candidate pool")

	// ErrInsufficientConstituents indicates a compound block could not
	// reach its minimum of two valid constituents.
	ErrInsufficientConstituents = errors.New("insufficient compound constituents")

	// ErrValidatorRejected indicates the assembled program violates a
	// structural invariant.
	ErrValidatorRejected = errors.New("validator rejected program")
)

// GenerationError carries enough context to reproduce a failure: the
// category for programmatic dispatch, a human message, an optional
// location (dotted path, exercise name, or key path), and an optional
// wrapped cause.
type GenerationError struct {
	Category error
	Message  string
	Location string
	Cause    error
}

func (e *GenerationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s", e.Location, e.Message)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Category
}

func (e *GenerationError) Is(target error) bool {
	return target == e.Category
}

// NewConfigurationError reports a missing or mis-typed rules key.
func NewConfigurationError(keyPath, message string) *GenerationError {
	return &GenerationError{Category: ErrConfiguration, Message: message, Location: keyPath}
}

// NewCatalogueReferenceError reports a structural exercise absent from the
// catalogue, naming the day/block that produced it.
func NewCatalogueReferenceError(exerciseName, dayBlockContext string) *GenerationError {
	return &GenerationError{
		Category: ErrCatalogueReference,
		Message:  fmt.Sprintf("exercise %q is not in the catalogue", exerciseName),
		Location: dayBlockContext,
	}
}

// NewExhaustedPoolError reports a block whose filtered candidate pool was
// too small to satisfy its count.
func NewExhaustedPoolError(focus, blockType string, poolSize, wanted int, filtersApplied string) *GenerationError {
	return &GenerationError{
		Category: ErrExhaustedPool,
		Message: fmt.Sprintf(
			"focus=%s block_type=%s pool_size=%d wanted=%d filters=%s",
			focus, blockType, poolSize, wanted, filtersApplied,
		),
	}
}

// NewInsufficientConstituentsError reports a compound block that could not
// reach its minimum constituent count.
func NewInsufficientConstituentsError(compoundKind string, found, required int) *GenerationError {
	return &GenerationError{
		Category: ErrInsufficientConstituents,
		Message:  fmt.Sprintf("compound %s found %d constituents, need %d", compoundKind, found, required),
	}
}

// NewValidatorRejectedError wraps a validator Result failure as a fatal
// generation error.
func NewValidatorRejectedError(message string) *GenerationError {
	return &GenerationError{Category: ErrValidatorRejected, Message: message}
}

// Wrap wraps err with additional context while preserving its category when
// err is already a *GenerationError; otherwise it is reported as a
// configuration error, since any other failure surfacing out of the engine
// is itself a misconfiguration of inputs.
func Wrap(err error, location, message string) error {
	if err == nil {
		return nil
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return &GenerationError{Category: ge.Category, Message: message, Location: location, Cause: err}
	}
	return &GenerationError{Category: ErrConfiguration, Message: message, Location: location, Cause: err}
}

// Is* helpers mirror errors.Is(err, ErrX) for callers that prefer not to
// import the sentinel directly.
func IsConfiguration(err error) bool         { return errors.Is(err, ErrConfiguration) }
func IsCatalogueReference(err error) bool    { return errors.Is(err, ErrCatalogueReference) }
func IsExhaustedPool(err error) bool         { return errors.Is(err, ErrExhaustedPool) }
func IsInsufficientConstituents(err error) bool { return errors.Is(err, ErrInsufficientConstituents) }
func IsValidatorRejected(err error) bool     { return errors.Is(err, ErrValidatorRejected) }

package feature

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFeature is returned when an encoded feature cannot be decoded.
	ErrMalformedFeature = errors.New("malformed feature")

	// ErrMalformedFeatureSet is returned when an encoded feature set cannot be
	// decoded, or a set cannot be encoded.
	ErrMalformedFeatureSet = errors.New("malformed feature set")

	// ErrMissingField is returned by the typed accessors of Set when the field does not exist.
	ErrMissingField = errors.New("missing field")

	// ErrKindMismatch is returned by the typed accessors of Set when the field has another kind.
	ErrKindMismatch = errors.New("feature kind mismatch")
)

func malformedFeature(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedFeature, fmt.Sprintf(format, args...))
}

func malformedSet(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedFeatureSet, fmt.Sprintf(format, args...))
}

package domain

import "errors"

var (
	// ErrFeatureNotFound is returned when the referenced feature id has no row.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrInvalidFeatureType is returned when a geometry's type tag does not
	// match the kind the endpoint expects (e.g. a Polygon payload submitted
	// to the Point creation operation).
	ErrInvalidFeatureType = errors.New("invalid feature type")

	// ErrMalformedPayload covers wrong top-level type tags and malformed
	// geometry shapes. Raised before any persistence attempt.
	ErrMalformedPayload = errors.New("malformed payload")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

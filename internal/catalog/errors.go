package catalog

import "errors"

// Sentinel errors for catalog lookups and adapters.
var (
	// ErrUnknownCategory is returned by ParseCategory for names outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrMalformedResponse indicates a list body that is not valid JSON.
	ErrMalformedResponse = errors.New("malformed API response")
)

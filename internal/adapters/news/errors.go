package news

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredential is returned by the primary source when no API key is configured
	ErrNoCredential = errors.New("news api key not configured")

	// ErrInvalidWindow is returned for a non-positive lookback window
	ErrInvalidWindow = errors.New("lookback window must be a positive number of days")
)

// ErrorKind classifies retrieval failures
type ErrorKind string

const (
	KindConfigurationAbsent ErrorKind = "configuration_absent"
	KindPrimarySource       ErrorKind = "primary_source_failure"
	KindFallbackSource      ErrorKind = "fallback_source_failure"
)

// FetchError wraps a provider failure with the source it came from
type FetchError struct {
	Err    error
	Source string
	Kind   ErrorKind
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFallbackFailure reports whether err means no source could serve the request
func IsFallbackFailure(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindFallbackSource
}

package geocoding

import (
	"errors"
	"fmt"
)

// Common errors shared by all providers.
var (
	ErrNotFound      = errors.New("address not found")
	ErrEmptyAddress  = errors.New("empty address")
	ErrInvalidCoords = errors.New("provider returned invalid coordinates")
)

// UpstreamError reports a geocoding service that could not be reached,
// answered with a non-2xx status or broke off its response.
type UpstreamError struct {
	Provider   string // Provider is the name of the geocoding service.
	StatusCode int    // StatusCode is zero when no response was received.
	Body       string // Body of the failed response.
	Err        error  // Err is the transport or client error, if any.
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s API request failed: %v", e.Provider, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s API response with status %d could not be read: %v", e.Provider, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

package repositories

import "errors"

// Common errors for the speech service.
var (
	// Store errors
	ErrSpeechNotFound = errors.New("speech not found")

	// Provider errors
	ErrNoAudioContent = errors.New("text-to-speech provider returned no audio content")
)

// ProviderError wraps a failure reported by the external synthesis provider,
// as opposed to a transport or programming failure on our side. The provider's
// message is surfaced to the client verbatim.
type ProviderError struct {
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return "text-to-speech provider error: " + e.Err.Error()
	}
	return "text-to-speech provider error"
}

// Unwrap returns the underlying provider error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a provider-reported failure.
func NewProviderError(err error) *ProviderError {
	return &ProviderError{Err: err}
}

// IsProviderError reports whether err originated from the synthesis provider.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

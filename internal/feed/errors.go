package feed

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of feed failure
type ErrorType int

const (
	// ErrTypeUnavailable indicates the feed could not be reached
	ErrTypeUnavailable ErrorType = iota
	// ErrTypeTimeout indicates the request timed out
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the feed address
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the feed host could not be resolved
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-200 response
	ErrTypeHTTP
	// ErrTypeParse indicates a body that is not a feed response
	ErrTypeParse
	// ErrTypeInvalidEntry indicates a single malformed screen entry
	ErrTypeInvalidEntry
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeUnavailable:
		return "Feed Unavailable"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeInvalidEntry:
		return "Invalid Screen Entry"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// FeedError represents a failure talking to the screen feed
type FeedError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	URL        string    // Feed URL (for context)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the request should be retried
}

// Error implements the error interface
func (e *FeedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *FeedError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError turns a transport error into a FeedError
func ClassifyNetworkError(err error, feedURL string) *FeedError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &FeedError{
			Type:      ErrTypeTimeout,
			Message:   "Request timed out",
			URL:       feedURL,
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &FeedError{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			URL:       feedURL,
			Err:       err,
			Retryable: dnsErr.IsTemporary,
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &FeedError{
			Type:      ErrTypeConnectionRefused,
			Message:   "Feed refused connection",
			URL:       feedURL,
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return ClassifyNetworkError(urlErr.Err, feedURL)
	}

	return &FeedError{
		Type:      ErrTypeUnavailable,
		Message:   "Feed unreachable",
		URL:       feedURL,
		Err:       err,
		Retryable: true,
	}
}

// NewHTTPError creates an HTTP-level error. Server errors are retryable.
func NewHTTPError(statusCode int, feedURL string) *FeedError {
	return &FeedError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		URL:        feedURL,
		Retryable:  statusCode >= 500 || statusCode == 429,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *FeedError {
	return &FeedError{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewInvalidEntryError wraps a per-entry problem
func NewInvalidEntryError(err error) *FeedError {
	return &FeedError{
		Type:    ErrTypeInvalidEntry,
		Message: "screen entry dropped",
		Err:     err,
	}
}

func typeOf(err error) (ErrorType, bool) {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe.Type, true
	}
	return 0, false
}

// IsUnavailable checks if the feed could not be reached at all
func IsUnavailable(err error) bool {
	t, ok := typeOf(err)
	return ok && (t == ErrTypeUnavailable || t == ErrTypeTimeout || t == ErrTypeConnectionRefused || t == ErrTypeDNS)
}

// IsTimeout checks if an error is a timeout
func IsTimeout(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeTimeout
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeParse
}

// IsInvalidEntry checks if an error describes a dropped entry
func IsInvalidEntry(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeInvalidEntry
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// ShortMessage returns a concise message for status lines
func ShortMessage(err error) string {
	var fe *FeedError
	if !errors.As(err, &fe) {
		return err.Error()
	}

	switch fe.Type {
	case ErrTypeTimeout:
		return "Feed not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Feed refused connection - is the server running?"
	case ErrTypeDNS:
		return "Cannot resolve feed hostname"
	case ErrTypeHTTP:
		return fmt.Sprintf("Feed error (HTTP %d)", fe.StatusCode)
	case ErrTypeParse:
		return "Feed response not understood"
	case ErrTypeInvalidEntry:
		return "Screen entry dropped"
	default:
		return "Feed unreachable - check connection"
	}
}

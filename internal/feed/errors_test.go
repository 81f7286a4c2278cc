package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeUnavailable, "Feed Unavailable"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeHTTP, "HTTP Error"},
		{ErrTypeParse, "Parse Error"},
		{ErrTypeInvalidEntry, "Invalid Screen Entry"},
		{ErrorType(99), "ErrorType(99)"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestClassifyNetworkError(t *testing.T) {
	refused := &url.Error{Op: "Get", URL: "http://feed", Err: &net.OpError{
		Op: "dial", Err: &net.OpError{Op: "connect", Err: syscall.ECONNREFUSED},
	}}

	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout, true},
		{"dns", &net.DNSError{Name: "feed.local", Err: "no such host"}, ErrTypeDNS, false},
		{"refused", refused, ErrTypeConnectionRefused, true},
		{"other", errors.New("boom"), ErrTypeUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ClassifyNetworkError(tt.err, "http://feed")
			if fe.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", fe.Type, tt.wantType)
			}
			if fe.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", fe.Retryable, tt.retryable)
			}
			if !errors.Is(fe, tt.err) && tt.name != "refused" {
				t.Error("classified error should wrap the original")
			}
		})
	}

	if ClassifyNetworkError(nil, "") != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestNewHTTPError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{404, false},
		{400, false},
		{429, true},
		{500, true},
		{503, true},
	}
	for _, tt := range tests {
		if got := NewHTTPError(tt.status, "").Retryable; got != tt.want {
			t.Errorf("NewHTTPError(%d).Retryable = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestPredicates_Wrapped(t *testing.T) {
	err := fmt.Errorf("poll: %w", NewParseError("bad body", nil))
	if !IsParseError(err) {
		t.Error("IsParseError should see through wrapping")
	}
	if IsHTTPError(err) || IsTimeout(err) || IsUnavailable(err) {
		t.Error("parse error matched another predicate")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("unknown errors should not be retryable")
	}
	if !IsUnavailable(ClassifyNetworkError(errors.New("x"), "")) {
		t.Error("IsUnavailable() = false for generic network error")
	}
}

func TestShortMessage(t *testing.T) {
	if got := ShortMessage(NewHTTPError(502, "")); got != "Feed error (HTTP 502)" {
		t.Errorf("ShortMessage() = %q", got)
	}
	if got := ShortMessage(errors.New("plain")); got != "plain" {
		t.Errorf("ShortMessage() = %q, want plain", got)
	}
}

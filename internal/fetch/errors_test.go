package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{
			name:          "timeout",
			err:           timeoutErr{},
			wantType:      ErrTypeTimeout,
			wantRetryable: true,
		},
		{
			name:     "dns",
			err:      &net.DNSError{Err: "no such host", Name: "options.invalid"},
			wantType: ErrTypeDNS,
		},
		{
			name:          "connection refused",
			err:           &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			wantType:      ErrTypeConnectionRefused,
			wantRetryable: true,
		},
		{
			name:          "wrapped in url error",
			err:           &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
			wantType:      ErrTypeConnectionRefused,
			wantRetryable: true,
		},
		{
			name:     "canceled",
			err:      fmt.Errorf("get: %w", context.Canceled),
			wantType: ErrTypeCanceled,
		},
		{
			name:          "deadline",
			err:           context.DeadlineExceeded,
			wantType:      ErrTypeTimeout,
			wantRetryable: true,
		},
		{
			name:          "generic",
			err:           errors.New("boom"),
			wantType:      ErrTypeNetwork,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.wantRetryable)
			}
		})
	}

	if ClassifyNetworkError(nil) != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestNewHTTPErrorRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if got := IsRetryable(NewHTTPError(tt.status, "x")); got != tt.want {
				t.Errorf("IsRetryable(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NewParseError("bad", nil))
	if !IsParseError(wrapped) {
		t.Error("IsParseError should see through wrapping")
	}
	if IsHTTPError(wrapped) || IsNetworkError(wrapped) {
		t.Error("parse error misclassified")
	}
	if !IsNetworkError(NewNetworkError("x", timeoutErr{})) {
		t.Error("timeout should count as network error")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}

	err := NewNetworkError("GET request failed", errors.New("boom"))
	if !strings.Contains(err.Error(), "caused by: boom") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewHTTPError(502, "x"), "Option source error (HTTP 502)"},
		{NewParseError("x", nil), "Unexpected response from option source"},
		{ClassifyNetworkError(timeoutErr{}), "Option source not responding (timeout)"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		if got := ShortMessage(tt.err); got != tt.want {
			t.Errorf("ShortMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

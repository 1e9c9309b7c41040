package chatprobe

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DispatchOptions defines the configuration for an HTTPDispatcher.
type DispatchOptions struct {
	client    *http.Client
	timeout   time.Duration
	requestID func() string
}

// DispatchOption configures an HTTPDispatcher.
type DispatchOption func(*DispatchOptions)

// WithHTTPClient sets the client used to send requests.
func WithHTTPClient(c *http.Client) DispatchOption {
	return func(o *DispatchOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTimeout bounds a single dispatch. Zero means no timeout.
func WithTimeout(d time.Duration) DispatchOption {
	return func(o *DispatchOptions) {
		o.timeout = d
	}
}

// WithRequestIDFunc overrides how request ids are generated.
func WithRequestIDFunc(fn func() string) DispatchOption {
	return func(o *DispatchOptions) {
		if fn != nil {
			o.requestID = fn
		}
	}
}

func resolveDispatchOptions(opts []DispatchOption) DispatchOptions {
	out := defaultDispatchOptions()
	for _, opt := range opts {
		opt(&out)
	}

	return out
}

func defaultDispatchOptions() DispatchOptions {
	return DispatchOptions{
		client:    http.DefaultClient,
		timeout:   0,
		requestID: uuid.NewString,
	}
}

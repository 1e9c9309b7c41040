package chatprobe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher delivers a payload file to the chat service and returns the raw reply body.
type Dispatcher interface {
	Dispatch(ctx context.Context, payloadPath string) ([]byte, error)
}

// HTTPDispatcher posts payload files to a chat endpoint.
type HTTPDispatcher struct {
	endpoint string
	opts     DispatchOptions
}

// NewHTTPDispatcher constructs a dispatcher for endpoint.
func NewHTTPDispatcher(endpoint string, opts ...DispatchOption) (*HTTPDispatcher, error) {
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	return &HTTPDispatcher{endpoint: endpoint, opts: resolveDispatchOptions(opts)}, nil
}

// Endpoint returns the URL requests are posted to.
func (d *HTTPDispatcher) Endpoint() string {
	return d.endpoint
}

// Dispatch sends one POST with the file contents as body. The body is
// returned for any status code; only transport failures are errors.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, payloadPath string) ([]byte, error) {
	body, err := os.ReadFile(payloadPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDispatch, payloadPath, err)
	}

	if d.opts.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, d.opts.timeout)
		defer cancel()
	}

	requestID := d.opts.requestID()
	log := zerolog.Ctx(ctx).With().
		Str("request_id", requestID).
		Str("endpoint", d.endpoint).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", ErrDispatch, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()

	log.Debug().Int("bytes", len(body)).Msg("posting payload")

	resp, err := d.opts.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("chat request failed")

		return nil, fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(resp.Body)
	if err != nil {
		return reply, fmt.Errorf("%w: read body: %w", ErrDispatch, err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Int("bytes", len(reply)).
		Msg("chat reply received")

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn().Int("status", resp.StatusCode).Msg("chat service returned an error status")
	}

	return reply, nil
}

// Package chatprobe sends test messages to a chat service and extracts the
// answering agent and its response text.
package chatprobe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Probe builds a payload for a message, dispatches it and parses the reply.
type Probe struct {
	dispatcher Dispatcher
	tempDir    string
}

// ProbeOption configures a Probe.
type ProbeOption func(*Probe)

// WithTempDir sets the directory payload files are created in.
func WithTempDir(dir string) ProbeOption {
	return func(p *Probe) {
		p.tempDir = dir
	}
}

// NewProbe constructs a probe that sends through d.
func NewProbe(d Dispatcher, opts ...ProbeOption) (*Probe, error) {
	if d == nil {
		return nil, fmt.Errorf("probe requires a dispatcher")
	}

	p := &Probe{dispatcher: d}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Send delivers message on behalf of userID. An empty userID is replaced
// with DefaultUserID. Send never fails: payload, transport and parse
// errors all come back as a PARSE_ERROR result with Err set.
func (p *Probe) Send(ctx context.Context, userID, message string) Result {
	if userID == "" {
		userID = DefaultUserID
	}

	log := zerolog.Ctx(ctx).With().Str("user_id", userID).Logger()

	file, err := WritePayload(p.tempDir, userID, message)
	if err != nil {
		log.Error().Err(err).Msg("payload not built")

		return failedResult(err)
	}

	defer func() {
		if err := file.Remove(); err != nil {
			log.Warn().Err(err).Msg("payload file not removed")
		}
	}()

	log.Debug().Str("payload", file.Path).Msg("payload written")

	body, err := p.dispatcher.Dispatch(ctx, file.Path)
	if err != nil {
		if len(body) > 0 {
			res := ParseReply(body)
			res.Err = err

			return res
		}

		return failedResult(err)
	}

	res := ParseReply(body)
	if res.Err != nil {
		log.Warn().Err(res.Err).Msg("reply is not a JSON object")
	}

	return res
}

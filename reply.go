package chatprobe

import (
	"encoding/json"
	"fmt"
	"io"
)

// Reply is the part of the chat response this tool reads. Both fields
// are optional; a nil pointer means the field was absent or null.
type Reply struct {
	Agent    *string `json:"agent"`
	Response *string `json:"response"`
}

// Result is the outcome of one probe with fallbacks already applied.
//
// Agent is the reply's agent, AgentUnknown when absent, or AgentParseError
// when no JSON object could be read. Response is the reply text, empty when
// absent, or the raw body (or the failure text) when parsing failed.
type Result struct {
	Agent    string
	Response string
	Raw      []byte
	Err      error
}

// ParseReply extracts agent and response from raw. It never fails; a body
// that is not a JSON object yields a PARSE_ERROR result carrying the raw text.
func ParseReply(raw []byte) Result {
	var reply Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return Result{
			Agent:    AgentParseError,
			Response: string(raw),
			Raw:      raw,
			Err:      fmt.Errorf("%w: %w", ErrParseReply, err),
		}
	}

	res := Result{Agent: AgentUnknown, Raw: raw}
	if reply.Agent != nil {
		res.Agent = *reply.Agent
	}

	if reply.Response != nil {
		res.Response = *reply.Response
	}

	return res
}

// failedResult reports a failure before any reply body was available.
func failedResult(err error) Result {
	return Result{
		Agent:    AgentParseError,
		Response: err.Error(),
		Err:      err,
	}
}

// Preview returns the first n characters of Response.
func (r Result) Preview(n int) string {
	return truncate(r.Response, n)
}

// WriteTo prints the AGENT and RESPONSE lines, the response cut to
// ResponsePreviewLimit characters.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "AGENT: %s\nRESPONSE: %s\n", r.Agent, r.Preview(ResponsePreviewLimit))

	return int64(n), err
}

func truncate(s string, n int) string {
	if n < 0 {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}

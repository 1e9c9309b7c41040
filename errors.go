package chatprobe

import "errors"

var (
	// ErrPayload indicates the request payload could not be built or written.
	ErrPayload = errors.New("build payload")
	// ErrPayloadSchema indicates the patched payload does not match the payload schema.
	ErrPayloadSchema = errors.New("payload does not match schema")
	// ErrDispatch indicates the request could not be delivered or its body read.
	ErrDispatch = errors.New("dispatch request")
	// ErrParseReply indicates the reply body is not a JSON object.
	ErrParseReply = errors.New("parse reply")
	// ErrEmptyEndpoint indicates a dispatcher was created without an endpoint.
	ErrEmptyEndpoint = errors.New("endpoint is empty")
)

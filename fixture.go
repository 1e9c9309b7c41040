package chatprobe

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed fixture/payload.json
var payloadTemplate []byte

//go:embed fixture/payload.schema.json
var payloadSchema string

// AccountValues is the static account context sent with every message.
type AccountValues struct {
	PGIDs     []string `json:"pg_ids"`
	BrandName string   `json:"brand_name"`
	Cities    string   `json:"cities"`
	Areas     string   `json:"areas"`
}

// Payload is the request body accepted by the chat endpoint.
type Payload struct {
	UserID        string        `json:"user_id"`
	Message       string        `json:"message"`
	AccountValues AccountValues `json:"account_values"`
}

// PayloadTemplate returns a copy of the fixture document with empty user_id and message.
func PayloadTemplate() []byte {
	return append([]byte(nil), payloadTemplate...)
}

// DecodePayload parses a payload document.
func DecodePayload(doc []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(doc, &p); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}

	return p, nil
}

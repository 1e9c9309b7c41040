package chatprobe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// PayloadFile is a request payload written to a temporary file.
type PayloadFile struct {
	Path string
}

// Remove deletes the payload file. Removing an already removed file is not an error.
func (f PayloadFile) Remove() error {
	if f.Path == "" {
		return nil
	}

	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.Path, err)
	}

	return nil
}

// BuildPayload patches the embedded fixture with userID and message.
func BuildPayload(userID, message string) ([]byte, error) {
	return PatchPayload(payloadTemplate, userID, message)
}

// PatchPayload replaces user_id and message in doc and leaves every other
// key untouched. The result is validated against the payload schema.
func PatchPayload(doc []byte, userID, message string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrPayload, err)
	}

	if fields == nil {
		return nil, fmt.Errorf("%w: document is null", ErrPayload)
	}

	for key, value := range map[string]string{"user_id": userID, "message": message} {
		encoded, err := encodeJSON(value)
		if err != nil {
			return nil, fmt.Errorf("%w: encode %s: %v", ErrPayload, key, err)
		}

		fields[key] = encoded
	}

	out, err := encodeJSON(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: encode document: %v", ErrPayload, err)
	}

	if err := validatePayloadSchema(payloadSchema, out); err != nil {
		return nil, err
	}

	return out, nil
}

// WritePayload builds the payload and writes it to a new temporary file in
// dir (os.TempDir when empty). The caller owns the file and must Remove it.
func WritePayload(dir, userID, message string) (PayloadFile, error) {
	data, err := BuildPayload(userID, message)
	if err != nil {
		return PayloadFile{}, err
	}

	f, err := os.CreateTemp(dir, PayloadFilePattern)
	if err != nil {
		return PayloadFile{}, fmt.Errorf("%w: create temp file: %v", ErrPayload, err)
	}

	file := PayloadFile{Path: f.Name()}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = file.Remove()

		return PayloadFile{}, fmt.Errorf("%w: write %s: %v", ErrPayload, file.Path, err)
	}

	if err := f.Close(); err != nil {
		_ = file.Remove()

		return PayloadFile{}, fmt.Errorf("%w: close %s: %v", ErrPayload, file.Path, err)
	}

	return file, nil
}

func encodeJSON(v any) ([]byte, error) {
	var b bytes.Buffer

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

func validatePayloadSchema(schema string, data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("%w: validate schema: %v", ErrPayload, err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, err := range result.Errors() {
		errs = append(errs, err.String())
	}

	return fmt.Errorf("%w: %w: %s", ErrPayload, ErrPayloadSchema, strings.Join(errs, "; "))
}

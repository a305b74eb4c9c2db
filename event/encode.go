package event

import (
	"bytes"
	"encoding/json"
)

// Encode returns the canonical wire form of v: struct field order,
// omitempty fields dropped, no HTML escaping and no trailing newline. The
// result is what gets signed and sent.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes a whole collection as pretty-printed JSON
func Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

// Decode deserializes a whole document read from path into v.
// Blank content is reported separately from malformed content.
func Decode(path string, data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

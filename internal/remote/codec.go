package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Bodies larger than this are not a todo list this client can show anyway.
const maxBodyBytes = 8 << 20

func encodeBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return bytes.NewReader(b), nil
}

func decodeBody(r io.Reader, v any) error {
	b, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}

// errorDetail pulls a human message out of an error body. Both
// {"detail": "..."} and {"error": "..."} shapes are common.
func errorDetail(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil || len(b) == 0 {
		return ""
	}
	var body struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	if s, ok := body.Detail.(string); ok && s != "" {
		return s
	}
	return body.Error
}

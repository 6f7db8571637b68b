package record

import (
	"encoding/json"
	"fmt"
	"os"
)

const screenshotKey = "screenshot"

// Record is one input JSON document. Only the screenshot field is
// interpreted; every other field passes through to the output with its
// decoded value untouched.
type Record struct {
	fields map[string]any
}

// Load reads and decodes a record file. The root must be a JSON object;
// anything else (including a bare array or scalar) is a parse failure.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &Record{fields: fields}, nil
}

// ScreenshotURL returns the screenshot field's value when it is present
// and holds a string.
func (r *Record) ScreenshotURL() (string, bool) {
	v, ok := r.fields[screenshotKey]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SetScreenshot overwrites the screenshot field, replacing any prior value.
func (r *Record) SetScreenshot(dataURL string) {
	r.fields[screenshotKey] = dataURL
}

// EncodePretty serializes the record as indented JSON.
func (r *Record) EncodePretty() ([]byte, error) {
	out, err := json.MarshalIndent(r.fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize JSON: %w", err)
	}
	return out, nil
}

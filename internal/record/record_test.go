package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "report-1.json", `{"title":"Home page","screenshot":"http://example.com/shot.png","tags":["a","b"]}`)

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	url, ok := rec.ScreenshotURL()
	if !ok {
		t.Fatal("Expected screenshot URL to be present")
	}
	if url != "http://example.com/shot.png" {
		t.Errorf("Expected screenshot URL http://example.com/shot.png, got %s", url)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "read") {
		t.Errorf("Expected a read error, got: %v", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeFile(t, "bad.json", `{"title": "unterminated`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed JSON, got nil")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("Expected a parse error, got: %v", err)
	}
}

func TestLoadNonObjectRoot(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"array root", `[1, 2, 3]`},
		{"string root", `"just a string"`},
		{"number root", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "root.json", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected error for non-object root, got nil")
			}
			if !strings.Contains(err.Error(), "parse") {
				t.Errorf("Expected a parse error, got: %v", err)
			}
		})
	}
}

func TestScreenshotURL(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantURL  string
		wantOK   bool
	}{
		{
			name:    "present string value",
			content: `{"screenshot":"http://example.com/a.png"}`,
			wantURL: "http://example.com/a.png",
			wantOK:  true,
		},
		{
			name:    "empty string is still a string",
			content: `{"screenshot":""}`,
			wantURL: "",
			wantOK:  true,
		},
		{
			name:    "absent field",
			content: `{"title":"no screenshot here"}`,
			wantOK:  false,
		},
		{
			name:    "non-string value",
			content: `{"screenshot":123}`,
			wantOK:  false,
		},
		{
			name:    "JSON null value",
			content: `{"screenshot":null}`,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Load(writeFile(t, "rec.json", tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			url, ok := rec.ScreenshotURL()
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if url != tt.wantURL {
				t.Errorf("Expected URL %q, got %q", tt.wantURL, url)
			}
		})
	}
}

func TestSetScreenshotAndEncodePretty(t *testing.T) {
	content := `{"title":"Home","screenshot":"http://example.com/a.png","meta":{"depth":2,"tags":["x","y"]},"count":7}`
	rec, err := Load(writeFile(t, "rec.json", content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec.SetScreenshot("data:image/png;base64,AAAA")

	out, err := rec.EncodePretty()
	if err != nil {
		t.Fatalf("EncodePretty failed: %v", err)
	}

	// Indented output
	if !strings.Contains(string(out), "\n  ") {
		t.Error("Expected indented output")
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded["screenshot"] != "data:image/png;base64,AAAA" {
		t.Errorf("Expected rewritten screenshot, got %v", decoded["screenshot"])
	}
	if decoded["title"] != "Home" {
		t.Errorf("Expected title to pass through, got %v", decoded["title"])
	}
	if decoded["count"] != float64(7) {
		t.Errorf("Expected count to pass through, got %v", decoded["count"])
	}
	meta, ok := decoded["meta"].(map[string]any)
	if !ok {
		t.Fatalf("Expected meta object to pass through, got %T", decoded["meta"])
	}
	if meta["depth"] != float64(2) {
		t.Errorf("Expected meta.depth to pass through, got %v", meta["depth"])
	}
	tags, ok := meta["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "x" {
		t.Errorf("Expected meta.tags to pass through, got %v", meta["tags"])
	}
}

func TestSetScreenshotAddsFieldWhenAbsent(t *testing.T) {
	rec, err := Load(writeFile(t, "rec.json", `{"title":"no shot"}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec.SetScreenshot("data:image/png;base64,BBBB")

	out, err := rec.EncodePretty()
	if err != nil {
		t.Fatalf("EncodePretty failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["screenshot"] != "data:image/png;base64,BBBB" {
		t.Errorf("Expected screenshot field to be set, got %v", decoded["screenshot"])
	}
}

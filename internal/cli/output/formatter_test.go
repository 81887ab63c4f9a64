package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type spanRow struct {
	SpanID  string  `json:"span_id"`
	Name    string  `json:"name"`
	Sampled bool    `json:"sampled"`
	Rate    float64 `json:"rate" table:"wide"`
	Secret  string  `json:"-" table:"-"`
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatYAML, "*output.YAMLFormatter"},
		{Format("bogus"), "*output.TableFormatter"},
	}

	for _, tt := range tests {
		f := NewFormatter(tt.format, false)
		if typeName(f) != tt.want {
			t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, typeName(f), tt.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TableFormatter:
		return "*output.TableFormatter"
	case *JSONFormatter:
		return "*output.JSONFormatter"
	case *YAMLFormatter:
		return "*output.YAMLFormatter"
	default:
		return "unknown"
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}

	err := f.Format(&buf, spanRow{SpanID: "tmsp-1", Name: "http.request", Sampled: true})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["span_id"] != "tmsp-1" {
		t.Errorf("span_id = %v, want tmsp-1", got["span_id"])
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}

	err := f.Format(&buf, map[string]any{"service": "checkout", "rate": 0.5})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "service: checkout") {
		t.Errorf("output missing service key:\n%s", out)
	}
	if !strings.Contains(out, "rate: 0.5") {
		t.Errorf("output missing rate key:\n%s", out)
	}
}

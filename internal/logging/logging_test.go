package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn, FormatText)
	logger.Info("hidden")
	logger.Warn("shown", "file", "a.bru")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=a.bru") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelDebug, FormatJSON).Debug("parsed", "blocks", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if rec["msg"] != "parsed" {
		t.Errorf("msg = %v, want parsed", rec["msg"])
	}
	if rec["blocks"] != float64(3) {
		t.Errorf("blocks = %v, want 3", rec["blocks"])
	}
}

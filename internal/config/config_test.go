package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name:    "partial file keeps defaults",
			content: "output: yaml\nlog_level: debug\n",
			want:    Config{Output: OutputYAML, Workers: runtime.NumCPU(), Color: ColorAuto, LogLevel: "debug", LogFormat: "text"},
		},
		{
			name:    "workers clamped",
			content: "workers: 0\ncolor: never\n",
			want:    Config{Output: OutputJSON, Workers: 1, Color: ColorNever, LogLevel: "warn", LogFormat: "text"},
		},
		{
			name:    "invalid output",
			content: "output: xml\n",
			wantErr: true,
		},
		{
			name:    "invalid color",
			content: "color: sometimes\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "output: [json\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), FilePermissions); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Config{Output: OutputYAML, Workers: 3, Color: ColorAlways, LogLevel: "info", LogFormat: "json"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if want := filepath.Join(home, ".bru", "config.yaml"); ConfigFile != want {
		t.Errorf("ConfigFile = %q, want %q", ConfigFile, want)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	tests := []struct {
		in, want string
	}{
		{"~/secrets/.env", filepath.Join(home, "secrets/.env")},
		{"/abs/path", "/abs/path"},
		{"rel/~/x", "rel/~/x"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

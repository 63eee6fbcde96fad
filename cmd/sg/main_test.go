package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillguard/skillguard/internal/adapter/cli"
	"github.com/skillguard/skillguard/internal/config"
)

func TestBuildWriter(t *testing.T) {
	runner := &scanRunner{
		cfg: config.Config{Output: config.OutputConfig{Color: "never"}},
		now: func() string { return "20260101T000000Z" },
	}

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "text writer", format: "text"},
		{name: "json writer", format: "json"},
		{name: "markdown writer", format: "markdown"},
		{name: "sarif writer", format: "sarif"},
		{name: "format is case-insensitive", format: "SARIF"},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, err := runner.buildWriter(cli.ScanRequest{Format: tt.format})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("buildWriter(%q): expected error, got writer %T", tt.format, writer)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildWriter(%q): unexpected error: %v", tt.format, err)
			}
			if writer == nil {
				t.Fatalf("buildWriter(%q): got nil writer", tt.format)
			}
		})
	}
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		noColor bool
		want    bool
	}{
		{name: "always enables color", color: "always", want: true},
		{name: "never disables color", color: "never", want: false},
		{name: "no-color flag wins over always", color: "always", noColor: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scanRunner{cfg: config.Config{Output: config.OutputConfig{Color: tt.color}}}
			if got := runner.colorEnabled(tt.noColor); got != tt.want {
				t.Errorf("colorEnabled(%v) with color=%q: got %v, want %v", tt.noColor, tt.color, got, tt.want)
			}
		})
	}
}

func TestDefaultConfigPaths(t *testing.T) {
	paths := defaultConfigPaths()
	if len(paths) == 0 || paths[0] != "." {
		t.Fatalf("defaultConfigPaths(): expected current directory first, got %v", paths)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	want := filepath.Join(home, ".config", "sg")
	if len(paths) < 2 || paths[1] != want {
		t.Errorf("defaultConfigPaths(): expected %s second, got %v", want, paths)
	}
}

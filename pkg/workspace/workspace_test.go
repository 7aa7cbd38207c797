package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspace_GetDocumentPath(t *testing.T) {
	w := &Workspace{
		OutputDir: "/site/works",
	}

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"padded id", "00361.md", "/site/works/00361.md"},
		{"long id", "1234567.md", "/site/works/1234567.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := w.GetDocumentPath(tt.filename)
			if result != filepath.FromSlash(tt.expected) {
				t.Errorf("GetDocumentPath(%q) = %q, want %q", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join("/xdg", "wp", "config.yaml")
	if path != expected {
		t.Errorf("DefaultConfigPath() = %q, want %q", path, expected)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde only", "~", home},
		{"tilde path", "~/site/works", filepath.Join(home, "site", "works")},
		{"relative", "works", "works"},
		{"absolute", "/tmp/works", "/tmp/works"},
		{"tilde inside", "a/~/b", "a/~/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandHome(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWorkspace_Initialize(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "works")
	w := &Workspace{OutputDir: dir}

	if w.Exists() {
		t.Fatal("output directory should not exist yet")
	}

	if err := w.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if !w.Exists() {
		t.Error("output directory should exist after Initialize()")
	}

	// Idempotent
	if err := w.Initialize(); err != nil {
		t.Errorf("second Initialize() error: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("stat output dir: %v", err)
	}
}

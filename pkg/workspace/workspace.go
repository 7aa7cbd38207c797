package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace holds the resolved locations wp reads and writes
type Workspace struct {
	// OutputDir is where generated pages go
	OutputDir  string
	ConfigPath string
}

// New creates a Workspace for outputDir with the XDG-compliant config path
func New(outputDir string) (*Workspace, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	dir, err := ExpandHome(outputDir)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		OutputDir:  dir,
		ConfigPath: configPath,
	}, nil
}

// DefaultConfigPath returns the config file location.
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "wp", "config.yaml"), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "wp", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "wp", "config.yaml"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

// Initialize creates the output directory if it doesn't exist
func (w *Workspace) Initialize() error {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.OutputDir, err)
	}
	return nil
}

// Exists checks if the output directory is present
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.OutputDir)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// GetDocumentPath returns the full path for a page file
func (w *Workspace) GetDocumentPath(filename string) string {
	return filepath.Join(w.OutputDir, filename)
}

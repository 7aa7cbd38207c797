package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OutputDir string `yaml:"output_dir"`
	Sheet     string `yaml:"sheet"`

	// Column bindings
	IDColumn          string `yaml:"id_column"`
	TitleColumn       string `yaml:"title_column"`
	DateColumn        string `yaml:"date_column"`
	TagsColumn        string `yaml:"tags_column"`
	AttachmentsColumn string `yaml:"attachments_column"`
	NotesColumn       string `yaml:"notes_column"`

	// Page Settings
	Layout              string `yaml:"layout"`
	Permalink           string `yaml:"permalink"`
	AssetsBase          string `yaml:"assets_base"`
	TagSeparator        string `yaml:"tag_separator"`
	AttachmentSeparator string `yaml:"attachment_separator"`
	IDWidth             int    `yaml:"id_width"`

	// Write Policy
	Write           bool `yaml:"write"`
	Force           bool `yaml:"force"`
	ContinueOnError bool `yaml:"continue_on_error"`

	// UI Settings
	ColorTheme         string `yaml:"color_theme"`
	SyntaxHighlighting bool   `yaml:"syntax_highlighting"`
	PreviewStyle       string `yaml:"preview_style"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		OutputDir:           "works",
		Sheet:               "",
		IDColumn:            "id",
		TitleColumn:         "title",
		DateColumn:          "date",
		TagsColumn:          "tags",
		AttachmentsColumn:   "attachments",
		NotesColumn:         "notes",
		Layout:              "theme",
		Permalink:           "",
		AssetsBase:          "/assets/works",
		TagSeparator:        ",",
		AttachmentSeparator: ";",
		IDWidth:             5,
		Write:               false,
		Force:               false,
		ContinueOnError:     false,
		ColorTheme:          "auto",
		SyntaxHighlighting:  true,
		PreviewStyle:        "monokai",
		LogLevel:            "warn",
		LogFormat:           "text",
		WatchDebounceMS:     500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file means defaults
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// applyDefaults back-fills values an explicit empty setting would break
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = def.OutputDir
	}
	if c.IDColumn == "" {
		c.IDColumn = def.IDColumn
	}
	if c.TitleColumn == "" {
		c.TitleColumn = def.TitleColumn
	}
	if c.DateColumn == "" {
		c.DateColumn = def.DateColumn
	}
	if c.TagsColumn == "" {
		c.TagsColumn = def.TagsColumn
	}
	if c.AttachmentsColumn == "" {
		c.AttachmentsColumn = def.AttachmentsColumn
	}
	if c.NotesColumn == "" {
		c.NotesColumn = def.NotesColumn
	}
	if strings.TrimSpace(c.Layout) == "" {
		c.Layout = def.Layout
	}
	if c.TagSeparator == "" {
		c.TagSeparator = def.TagSeparator
	}
	if c.AttachmentSeparator == "" {
		c.AttachmentSeparator = def.AttachmentSeparator
	}
	if c.IDWidth <= 0 {
		c.IDWidth = def.IDWidth
	}
	if c.ColorTheme == "" {
		c.ColorTheme = def.ColorTheme
	}
	if c.PreviewStyle == "" {
		c.PreviewStyle = def.PreviewStyle
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = def.WatchDebounceMS
	}
}

// Validate rejects settings no run could use
func (c *Config) Validate() error {
	if !isValidChoice(c.ColorTheme, "auto", "light", "dark") {
		return fmt.Errorf("color_theme must be auto, light or dark, got %q", c.ColorTheme)
	}
	if !isValidChoice(strings.ToLower(c.LogFormat), "text", "json") {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.TagSeparator == c.AttachmentSeparator {
		return fmt.Errorf("tag_separator and attachment_separator must differ, both are %q", c.TagSeparator)
	}
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isValidChoice(value string, choices ...string) bool {
	for _, valid := range choices {
		if value == valid {
			return true
		}
	}
	return false
}

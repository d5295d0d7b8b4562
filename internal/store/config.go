package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"todo-cli/internal/format"
)

// Config is the user's settings file (config.json in ConfigDir).
type Config struct {
	// Formatter draws the list in the TUI and in `todo show`.
	Formatter FormatterConfig `json:"formatter,omitempty"`

	// PrintFormatter is used for `print` (the <list>.txt export).
	PrintFormatter FormatterConfig `json:"printFormatter,omitempty"`

	// DefaultDepth overrides the display depth of freshly opened lists.
	DefaultDepth *int `json:"defaultDepth,omitempty"`

	// LogLevel is one of debug|info|warn|error.
	LogLevel string `json:"logLevel,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

// FormatterConfig overrides fields of format.Default. Empty fields keep the
// default.
type FormatterConfig struct {
	Style      string `json:"style,omitempty"`
	Indent     *int   `json:"indent,omitempty"`
	Completed  string `json:"completed,omitempty"`
	Incomplete string `json:"incomplete,omitempty"`
	Glyphs     string `json:"glyphs,omitempty"`
}

type TUIConfig struct {
	// Colors optionally overrides the default palette.
	Colors *TUIColors `json:"colors,omitempty"`
}

type TUIColors struct {
	SelectedBg *AdaptiveColor `json:"selectedBg,omitempty"`
	SelectedFg *AdaptiveColor `json:"selectedFg,omitempty"`
	CompleteFg *AdaptiveColor `json:"completeFg,omitempty"`
	TreeFg     *AdaptiveColor `json:"treeFg,omitempty"`
}

type AdaptiveColor struct {
	Light string `json:"light,omitempty"`
	Dark  string `json:"dark,omitempty"`
}

// Formatter applies the overrides on top of format.Default.
func (fc FormatterConfig) Formatter() (format.Formatter, error) {
	f := format.Default()
	if strings.TrimSpace(fc.Style) != "" {
		s, err := format.ParseStyle(fc.Style)
		if err != nil {
			return f, err
		}
		f.Style = s
	}
	if fc.Indent != nil {
		if *fc.Indent < 0 {
			return f, fmt.Errorf("indent must be >= 0: %d", *fc.Indent)
		}
		f.Indent = *fc.Indent
	}
	if fc.Completed != "" {
		r, err := singleRune(fc.Completed)
		if err != nil {
			return f, fmt.Errorf("completed: %w", err)
		}
		f.Completed = r
	}
	if fc.Incomplete != "" {
		r, err := singleRune(fc.Incomplete)
		if err != nil {
			return f, fmt.Errorf("incomplete: %w", err)
		}
		f.Incomplete = r
	}
	if strings.TrimSpace(fc.Glyphs) != "" {
		g, err := format.ParseGlyphs(fc.Glyphs)
		if err != nil {
			return f, err
		}
		f.Glyphs = g
	}
	return f, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("want a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.todo).
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Best-effort safety net: keep a copy of the previous config.
	if st, err := os.Stat(path); err == nil && st.Size() > 0 {
		_ = CopyFile(path, path+".bak")
	}

	// Unique temp name + rename, so a CLI and a TUI writing at once never
	// leave a half-written file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ResetConfig removes the settings file, restoring every default. The
// previous file is kept as config.json.bak.
func ResetConfig() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := CopyFile(path, path+".bak"); err != nil {
		return err
	}
	return os.Remove(path)
}

// configKeys maps `todo config set` keys to setters.
var configKeys = map[string]func(cfg *Config, v string) error{
	"formatter.style":      func(c *Config, v string) error { return setStyle(&c.Formatter, v) },
	"formatter.indent":     func(c *Config, v string) error { return setIndent(&c.Formatter, v) },
	"formatter.completed":  func(c *Config, v string) error { return setMark(&c.Formatter.Completed, v) },
	"formatter.incomplete": func(c *Config, v string) error { return setMark(&c.Formatter.Incomplete, v) },
	"formatter.glyphs":     func(c *Config, v string) error { return setGlyphs(&c.Formatter, v) },
	"print.style":          func(c *Config, v string) error { return setStyle(&c.PrintFormatter, v) },
	"print.indent":         func(c *Config, v string) error { return setIndent(&c.PrintFormatter, v) },
	"print.completed":      func(c *Config, v string) error { return setMark(&c.PrintFormatter.Completed, v) },
	"print.incomplete":     func(c *Config, v string) error { return setMark(&c.PrintFormatter.Incomplete, v) },
	"print.glyphs":         func(c *Config, v string) error { return setGlyphs(&c.PrintFormatter, v) },
	"depth":                setDepth,
	"log-level":            setLogLevel,
}

// ConfigKeys lists the keys accepted by SetConfigValue, sorted.
func ConfigKeys() []string {
	out := make([]string, 0, len(configKeys))
	for k := range configKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetConfigValue validates v and stores it under key. It does not save.
func SetConfigValue(cfg *Config, key, v string) error {
	set, ok := configKeys[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("unknown config key: %s (want one of %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return set(cfg, v)
}

func setStyle(fc *FormatterConfig, v string) error {
	s, err := format.ParseStyle(v)
	if err != nil {
		return err
	}
	fc.Style = s.String()
	return nil
}

func setIndent(fc *FormatterConfig, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return fmt.Errorf("indent must be a non-negative integer: %q", v)
	}
	fc.Indent = &n
	return nil
}

func setMark(dst *string, v string) error {
	if _, err := singleRune(v); err != nil {
		return err
	}
	*dst = v
	return nil
}

func setGlyphs(fc *FormatterConfig, v string) error {
	g, err := format.ParseGlyphs(v)
	if err != nil {
		return err
	}
	fc.Glyphs = g.String()
	return nil
}

func setDepth(c *Config, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return fmt.Errorf("depth must be a non-negative integer: %q", v)
	}
	c.DefaultDepth = &n
	return nil
}

func setLogLevel(c *Config, v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "debug", "info", "warn", "error":
		c.LogLevel = v
		return nil
	default:
		return fmt.Errorf("unknown log level: %s (want debug|info|warn|error)", v)
	}
}

package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"todo-cli/internal/store"
)

// The TUI must stay readable on light and dark backgrounds, so colors are
// adaptive and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	defaultColorMuted lipgloss.TerminalColor = ac("240", "243")
	colorMuted                               = defaultColorMuted

	defaultColorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedBg                               = defaultColorSelectedBg
	defaultColorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorSelectedFg                               = defaultColorSelectedFg

	// Completed entries.
	defaultColorCompleteFg lipgloss.TerminalColor = ac("28", "71")
	colorCompleteFg                               = defaultColorCompleteFg

	// Tree connectors drawn by the formatter.
	defaultColorTreeFg lipgloss.TerminalColor = ac("246", "240")
	colorTreeFg                               = defaultColorTreeFg

	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "235")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")
	colorAccent    lipgloss.TerminalColor = ac("27", "62")
	colorError     lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError).Bold(true)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSurfaceFg).Bold(true)
}

// applyUserColors swaps in palette overrides from config.json. Unset fields
// keep the defaults.
func applyUserColors(cfg *store.Config) {
	colorSelectedBg = defaultColorSelectedBg
	colorSelectedFg = defaultColorSelectedFg
	colorCompleteFg = defaultColorCompleteFg
	colorTreeFg = defaultColorTreeFg
	if cfg == nil || cfg.TUI == nil || cfg.TUI.Colors == nil {
		return
	}
	c := cfg.TUI.Colors
	override := func(dst *lipgloss.TerminalColor, def lipgloss.TerminalColor, ov *store.AdaptiveColor) {
		if ov == nil {
			return
		}
		light, dark := strings.TrimSpace(ov.Light), strings.TrimSpace(ov.Dark)
		if light == "" && dark == "" {
			return
		}
		base, _ := def.(lipgloss.AdaptiveColor)
		if light == "" {
			light = base.Light
		}
		if dark == "" {
			dark = base.Dark
		}
		*dst = ac(light, dark)
	}
	override(&colorSelectedBg, defaultColorSelectedBg, c.SelectedBg)
	override(&colorSelectedFg, defaultColorSelectedFg, c.SelectedFg)
	override(&colorCompleteFg, defaultColorCompleteFg, c.CompleteFg)
	override(&colorTreeFg, defaultColorTreeFg, c.TreeFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can switch colors off in a
// TUI by accident; only NO_COLOR is respected here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) TODO_TUI_THEME=light|dark|auto
// 2) TODO_TUI_DARKBG=true|false
// 3) COLORFGBG ("fg;bg")
func applyThemePreference() {
	switch themeFromEnv() {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

// themeFromEnv is "light", "dark" or "" when nothing in the environment
// says.
func themeFromEnv() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODO_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if v := strings.TrimSpace(os.Getenv("TODO_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				return "dark"
			}
			return "light"
		}
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg < 7 {
				return "dark"
			}
			return "light"
		}
	}
	return ""
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// Prints "Dark" in dark mode; exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}

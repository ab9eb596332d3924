package theme

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
)

// GetThemesDir returns the user theme directory
// (~/.config/webdesk/themes/), creating it on first call.
func GetThemesDir() (string, error) {
	keep, err := xdg.ConfigFile("webdesk/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("resolve themes directory: %w", err)
	}
	return filepath.Dir(keep), nil
}

// LoadCustomThemes registers every *.json theme under themesDir with the
// tint registry and returns the registered ids. A broken file is logged
// and skipped; startup never fails over a single theme.
func LoadCustomThemes(themesDir string) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("read themes directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		t, err := LoadCustomThemeFile(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping custom theme %s: %v", entry.Name(), err)
			continue
		}
		tint.Register(t)
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// LoadCustomThemeFile parses one theme JSON file into a *tint.Tint. The id
// falls back to the lowercased filename, the display name to the id, and
// absent colors to xterm defaults via fillDefaults.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - paths come from the user's own config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme JSON: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, fmt.Errorf("theme has no id")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)
	return &t, nil
}

// fillDefaults makes partial theme files usable: fg, bg and the normal
// ANSI row get xterm defaults, the cursor follows fg, and bright variants
// follow their normal counterpart.
func fillDefaults(t *tint.Tint) {
	base := []struct {
		dst **tint.Color
		hex string
	}{
		{&t.Fg, "#e5e5e5"},
		{&t.Bg, "#000000"},
		{&t.Black, "#000000"},
		{&t.Red, "#cd0000"},
		{&t.Green, "#00cd00"},
		{&t.Yellow, "#cdcd00"},
		{&t.Blue, "#0000ee"},
		{&t.Purple, "#cd00cd"},
		{&t.Cyan, "#00cdcd"},
		{&t.White, "#e5e5e5"},
	}
	for _, d := range base {
		if *d.dst == nil {
			*d.dst = tint.FromHex(d.hex)
		}
	}

	if t.Cursor == nil {
		t.Cursor = copyColor(t.Fg)
	}

	bright := []struct {
		dst **tint.Color
		src *tint.Color
	}{
		{&t.BrightBlack, t.Black},
		{&t.BrightRed, t.Red},
		{&t.BrightGreen, t.Green},
		{&t.BrightYellow, t.Yellow},
		{&t.BrightBlue, t.Blue},
		{&t.BrightPurple, t.Purple},
		{&t.BrightCyan, t.Cyan},
		{&t.BrightWhite, t.White},
	}
	for _, b := range bright {
		if *b.dst == nil {
			*b.dst = copyColor(b.src)
		}
	}
}

// copyColor duplicates a color so a filled bright variant never aliases
// its normal counterpart.
func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}

package config

import (
	"encoding/json"
	"os"
)

// Theme is the one setting persisted across runs.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// LoadTheme reads the saved theme. A missing or unreadable file means dark.
func LoadTheme(path string) Theme {
	data, err := os.ReadFile(path)
	if err != nil {
		return ThemeDark
	}
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil || t != ThemeLight {
		return ThemeDark
	}
	return t
}

// SaveTheme writes t to path.
func SaveTheme(path string, t Theme) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

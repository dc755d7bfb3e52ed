package domain

import (
	"fmt"
	"regexp"
	"slices"
	"time"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// ColorMode is the value for the data-color-mode attribute on <html>.
func (t Theme) ColorMode() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "auto"
	}
}

const DefaultBrandColor = "#2563eb"

var brandColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidBrandColor reports whether c is a #rrggbb colour.
func ValidBrandColor(c string) bool { return brandColorPattern.MatchString(c) }

// Preferences is one user's dashboard state: what the browser version kept
// in localStorage.
type Preferences struct {
	UserID     string
	Theme      Theme
	BrandColor string
	Favorites  []string // page keys, in the order they were added
	UpdatedAt  time.Time
}

// DefaultPreferences is what a user sees before saving anything.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:     userID,
		Theme:      ThemeSystem,
		BrandColor: DefaultBrandColor,
	}
}

func (p Preferences) IsFavorite(key string) bool {
	return slices.Contains(p.Favorites, key)
}

// ToggleFavorite flips key in the favourites list.
func (p *Preferences) ToggleFavorite(key string) {
	if i := slices.Index(p.Favorites, key); i >= 0 {
		p.Favorites = slices.Delete(p.Favorites, i, i+1)
		return
	}
	p.Favorites = append(p.Favorites, key)
}

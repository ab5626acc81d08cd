package models

// Store keys. Each state container owns a disjoint subset.
const (
	KeyUsername      = "movieUser"
	KeyFavorites     = "favorites"
	KeySearchHistory = "searchHistory"
	KeyThemeMode     = "themeMode"
)

// ThemeMode represents the UI color scheme preference
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// DefaultTheme is used when no valid preference is stored
const DefaultTheme = ThemeDark

// Valid reports whether m is a known theme mode
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

// Opposite returns the other theme mode
func (m ThemeMode) Opposite() ThemeMode {
	if m == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

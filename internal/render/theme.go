package render

import "strings"

// Theme is the color palette shared by the page and the SVG card.
type Theme struct {
	Name       string
	Background string
	Card       string
	Border     string
	Text       string
	Muted      string
	Accent     string
	Glow       string
}

const DefaultTheme = "dark"

var themes = map[string]Theme{
	"dark": {
		Name:       "dark",
		Background: "#0d1117",
		Card:       "#161b22",
		Border:     "#30363d",
		Text:       "#e6edf3",
		Muted:      "#8b949e",
		Accent:     "#58a6ff",
		Glow:       "#238636",
	},
	"light": {
		Name:       "light",
		Background: "#f6f8fa",
		Card:       "#ffffff",
		Border:     "#d0d7de",
		Text:       "#1f2328",
		Muted:      "#656d76",
		Accent:     "#0969da",
		Glow:       "#2da44e",
	},
}

// ThemeByName returns the named theme, or the dark theme when the name is unknown.
func ThemeByName(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package theme defines the color presets a workspace can adopt and the
// deterministic category tag colors.
package theme

import "github.com/pdiddy/kogniv/pkg/types"

// Preset is a named bundle of color values applied as the active theme.
type Preset struct {
	// ID is the stored preset identifier.
	ID string

	// Label is the display name.
	Label string

	// Primary and Accent are hex color values.
	Primary string
	Accent  string
}

// presets in display order.
var presets = []Preset{
	{ID: "ocean", Label: "Ocean Blue", Primary: "#0066cc", Accent: "#ff6b35"},
	{ID: "midnight", Label: "Midnight", Primary: "#1a1a3e", Accent: "#ffd700"},
	{ID: "forest", Label: "Forest", Primary: "#2d5016", Accent: "#ff6b35"},
	{ID: "sunset", Label: "Sunset", Primary: "#d62828", Accent: "#f77f00"},
	{ID: "arctic", Label: "Arctic", Primary: "#06a77d", Accent: "#d62828"},
	{ID: "rose", Label: "Rose", Primary: "#c7184f", Accent: "#ff69b4"},
	{ID: "lavender", Label: "Lavender", Primary: "#667bc6", Accent: "#da4167"},
	{ID: "gold", Label: "Gold", Primary: "#b8860b", Accent: "#ff6347"},
}

// Presets returns every preset in display order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// Lookup resolves a preset id, falling back to the default preset for
// unknown ids.
func Lookup(id string) Preset {
	for _, p := range presets {
		if p.ID == id {
			return p
		}
	}
	return Lookup(types.DefaultTheme)
}

// Valid reports whether id names a known preset.
func Valid(id string) bool {
	for _, p := range presets {
		if p.ID == id {
			return true
		}
	}
	return false
}

// tagPalette colors category tags.
var tagPalette = []string{
	"#3498db", "#e74c3c", "#2ecc71", "#f39c12",
	"#9b59b6", "#1abc9c", "#e67e22", "#34495e",
}

// TagColor picks a stable palette color for a category label by summing
// its character codes.
func TagColor(category string) string {
	sum := 0
	for _, r := range category {
		sum += int(r)
	}
	return tagPalette[sum%len(tagPalette)]
}

// Package fonts describes the typefaces the vector exporter draws text with.
//
// Host applications must load a font before any text node may use it. The
// catalog here is the fixed set the exporter asks for; the SVG writer of the
// in-memory scene references the same families through CSS.
package fonts

import (
	"fmt"
	"strings"
	"sync"
)

// Font identifies one family and style, matching how design hosts name fonts.
type Font struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// String returns "Family Style".
func (f Font) String() string {
	return f.Family + " " + f.Style
}

// Weight returns the CSS font weight for the style.
func (f Font) Weight() int {
	switch f.Style {
	case "Medium":
		return 500
	case "Semi Bold":
		return 600
	case "Bold":
		return 700
	}
	return 400
}

// FontFamily is the family every exported text node uses.
const FontFamily = "Inter"

// FallbackFontFamily is the CSS stack used when Inter is not installed.
const FallbackFontFamily = `Inter, 'Helvetica Neue', Arial, sans-serif`

// Styles of [FontFamily] the exporter uses.
var (
	Regular  = Font{Family: FontFamily, Style: "Regular"}
	Medium   = Font{Family: FontFamily, Style: "Medium"}
	SemiBold = Font{Family: FontFamily, Style: "Semi Bold"}
	Bold     = Font{Family: FontFamily, Style: "Bold"}
)

// All returns every font the exporter may request, in load order.
func All() []Font {
	return []Font{Regular, Medium, SemiBold, Bold}
}

// Cache for the generated CSS (computed once on first access).
var (
	css     string
	cssOnce sync.Once
)

// CSS returns style rules mapping each catalog style to a class
// (".font-regular", ".font-semi-bold", ...).
// The result is cached after first computation.
func CSS() string {
	cssOnce.Do(func() {
		var b strings.Builder
		for _, f := range All() {
			fmt.Fprintf(&b, ".%s { font-family: %s; font-weight: %d; }\n", Class(f), FallbackFontFamily, f.Weight())
		}
		css = b.String()
	})
	return css
}

// Class returns the CSS class name for f.
func Class(f Font) string {
	return "font-" + strings.ToLower(strings.ReplaceAll(f.Style, " ", "-"))
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle is used for dashboard titles and section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight marks names the user typed or will type again:
	// dashboard titles, component types, preset names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel  = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
)

// statusIcon pairs a glyph with its color.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

func (i statusIcon) String() string { return i.style.Render(i.glyph) }

var (
	iconSuccess = statusIcon{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	iconError   = statusIcon{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	iconWarning = statusIcon{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	iconInfo    = statusIcon{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

const iconArrow = "→"

// =============================================================================
// Status Output
// =============================================================================

// statusOut receives the human-readable status lines. Artifacts written to
// stdout with "-o -" go through the command's own writer instead, so the two
// never interleave in a pipe.
var statusOut io.Writer = os.Stdout

func status(icon statusIcon, format string, args ...any) {
	fmt.Fprintln(statusOut, icon.String()+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(iconSuccess, format, args...) }
func printError(format string, args ...any)   { status(iconError, format, args...) }
func printInfo(format string, args ...any)    { status(iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	status(iconWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written artifact path.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the tree size and how many of the total artifacts came
// from the cache, e.g. "12 components · 15 nodes · 2/3 cached".
func printStats(components, nodes, cached, total int) {
	state := styleComputed.Render("fresh")
	switch {
	case total > 0 && cached == total:
		state = styleCached.Render("cached")
	case cached > 0:
		state = styleCached.Render(fmt.Sprintf("%d/%d cached", cached, total))
	}

	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d components", components)),
		StyleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		state,
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(statusOut) }

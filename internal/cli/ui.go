package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/framecast/pkg/pipeline"
)

// =============================================================================
// Palette & Styles
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

var (
	// StyleTitle for view headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight for page and document names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue for paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleNumber for percentages and counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleWarning for warnings and failure counts.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// status is the leading marker of a one-line message.
type status struct {
	icon  string
	style lipgloss.Style
	// body styles the message itself; nil leaves it plain.
	body *lipgloss.Style
}

var (
	statusSuccess = status{icon: iconSuccess, style: styleIconSuccess}
	statusError   = status{icon: iconError, style: styleIconError}
	statusWarning = status{icon: "!", style: StyleWarning, body: &StyleWarning}
	statusInfo    = status{icon: "›", style: lipgloss.NewStyle().Foreground(colorGray)}
)

// stdout is where user-facing lines go. Logs go to stderr.
var stdout io.Writer = os.Stdout

func (s status) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.body != nil {
		msg = s.body.Render(msg)
	}
	fmt.Fprintln(stdout, s.style.Render(s.icon)+" "+msg)
}

// =============================================================================
// Output Helpers
// =============================================================================

func printSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func printError(format string, args ...any)   { statusError.print(format, args...) }
func printWarning(format string, args ...any) { statusWarning.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value in an aligned column.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

// =============================================================================
// Conversion Stats
// =============================================================================

// statsLine renders conversion counts as a dot-separated line. A cached
// conversion has no counts.
func statsLine(stats pipeline.Stats, cached bool) string {
	if cached {
		return joinDim([]string{styleCached.Render("cached")})
	}
	parts := []string{fmt.Sprintf("%d/%d nodes", stats.Created, stats.Total)}
	if stats.Failed > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d failed", stats.Failed)))
	}
	if stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.Skipped))
	}
	if n := stats.ImagesApplied + stats.ImagesFailed; n > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d images", stats.ImagesApplied, n))
	}
	parts = append(parts, stats.Elapsed.Round(time.Millisecond).String())
	return joinDim(parts)
}

func printStats(stats pipeline.Stats, cached bool) {
	fmt.Fprintln(stdout, "  "+statsLine(stats, cached))
}

func joinDim(parts []string) string {
	var line strings.Builder
	for i, part := range parts {
		if i > 0 {
			line.WriteString(StyleDim.Render(" · "))
		}
		line.WriteString(StyleDim.Render(part))
	}
	return line.String()
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/RoomPlan/internal/engine"
	"github.com/piwi3910/RoomPlan/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printResult prints the outcome of a solve followed by one line per placement.
func printResult(w io.Writer, res model.Result) {
	if res.Feasible {
		printSuccess(w, "Feasible: %s items placed", StyleNumber.Render(fmt.Sprint(len(res.Placements))))
	} else {
		printError(w, "Infeasible: %s", res.Message)
		printDetail(w, "%d items placed before the failure", len(res.Placements))
	}

	for i, p := range res.Placements {
		fmt.Fprintf(w, "  %s %-20s %s (%.0f, %.0f) %s\n",
			StyleDim.Render(fmt.Sprintf("%2d.", i+1)),
			p.Item.Name,
			StyleDim.Render(p.Item.Category.String()),
			p.Center[0], p.Center[1],
			StyleDim.Render(fmt.Sprintf("%d°", int(p.Rotation))))
	}

	s := res.Stats
	parts := []string{
		fmt.Sprintf("%d candidates", s.Candidates),
		fmt.Sprintf("%d touching walls", s.WallTouching),
		fmt.Sprintf("%.1f%% used", s.Utilization()),
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printComparison prints one row per settings variant.
func printComparison(w io.Writer, results []engine.ComparisonResult) {
	fmt.Fprintln(w, StyleTitle.Render("Settings comparison"))
	header := fmt.Sprintf("  %-34s %-10s %6s %8s %10s", "Scenario", "Feasible", "Placed", "Walls", "Candidates")
	fmt.Fprintln(w, styleHeader.Render(header))

	for _, r := range results {
		feasible := styleIconSuccess.Render(fmt.Sprintf("%-10s", "yes"))
		if !r.Feasible {
			feasible = styleIconError.Render(fmt.Sprintf("%-10s", "no"))
		}
		fmt.Fprintf(w, "  %-34s %s %6d %8d %10d\n", r.Scenario.Name, feasible, r.Placed, r.WallTouching, r.Candidates)
	}
}

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/engine"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+path)
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+value)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// printResult writes the layout summary and room schedule.
func printResult(w io.Writer, res model.Result) {
	fmt.Fprintln(w, styleTitle.Render("Floor plan"))
	printKeyValue(w, "Status", string(res.Status))
	printKeyValue(w, "Envelope", fmt.Sprintf("%.1f x %.1f m (%.1f sq m)", res.Envelope.Width, res.Envelope.Depth, res.Envelope.Area()))
	printKeyValue(w, "Rooms", fmt.Sprintf("%d of %d placed, %.1f%% coverage", res.PlacedCount(), res.Requested, res.Coverage()))
	printKeyValue(w, "Openings", fmt.Sprintf("%d doors, %d windows", res.DoorCount(), res.WindowCount()))

	if res.HasLayout() {
		t := newTable("Room", "Position", "Size (m)", "Area", "Label", "Doors", "Windows")
		for _, r := range res.Rooms {
			l := model.LabelFor(r)
			t.Row(
				r.ID,
				fmt.Sprintf("%.1f, %.1f", r.X, r.Y),
				fmt.Sprintf("%.1f x %.1f", r.Width, r.Height),
				fmt.Sprintf("%.1f", r.Area()),
				fmt.Sprintf("%d' x %d'", l.WidthFt, l.DepthFt),
				strconv.Itoa(len(r.Doors)),
				strconv.Itoa(len(r.Windows)),
			)
		}
		fmt.Fprintln(w, t.Render())
	}

	for _, spec := range res.Unplaced {
		printWarning(w, "%s (%.1f sq m) did not fit", spec.ID, spec.TargetArea)
	}
}

// printComparison writes one row per scenario and marks the best one.
func printComparison(w io.Writer, results []engine.ComparisonResult) {
	best := engine.BestScenario(results)
	t := newTable("", "Scenario", "Status", "Placed", "Dropped", "Coverage", "Doors", "Windows")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = iconSuccess
		}
		if r.Err != nil {
			t.Row(iconError, r.Scenario.Name, r.Err.Error(), "-", "-", "-", "-", "-")
			continue
		}
		t.Row(
			mark,
			r.Scenario.Name,
			string(r.Result.Status),
			strconv.Itoa(r.PlacedCount),
			strconv.Itoa(r.UnplacedCount),
			fmt.Sprintf("%.1f%%", r.Coverage),
			strconv.Itoa(r.DoorCount),
			strconv.Itoa(r.WindowCount),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// printRequest writes a room program as a table.
func printRequest(w io.Writer, req model.RoomRequest, unit model.Unit) {
	if req.TotalArea > 0 {
		printKeyValue(w, "Total area", fmt.Sprintf("%.1f %s", req.TotalArea, unit))
	}
	t := newTable("Type", "Count", "Size hint")
	for _, rt := range model.AllRoomTypes() {
		n, ok := req.RoomCounts[rt]
		if !ok {
			continue
		}
		hint := "-"
		if size, ok := req.RoomSizeHints[rt]; ok {
			hint = fmt.Sprintf("%.1f %s", size, unit)
		}
		t.Row(rt.DisplayName(), strconv.Itoa(n), hint)
	}
	fmt.Fprintln(w, t.Render())
}

// Package export renders generated floor plans to documents: a PDF plan
// with a room schedule, QR-coded room labels, a DXF drawing, an XLSX
// schedule and a JSON layout for the 3D viewer.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/engine"
	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a two-page plan document: the floor plan drawn to scale
// with doors and windows, followed by a summary page with the room schedule
// and material takeoff.
func ExportPDF(path string, result model.Result, settings model.Settings) error {
	if !result.HasLayout() {
		return fmt.Errorf("no rooms to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, result, settings)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// planView maps envelope coordinates (y pointing north) to page coordinates (y pointing down).
type planView struct {
	scale, offsetX, offsetY float64
	depth                   float64
}

func (v planView) rect(x, y, w, h float64) (float64, float64, float64, float64) {
	return v.offsetX + x*v.scale, v.offsetY + (v.depth-y-h)*v.scale, w * v.scale, h * v.scale
}

func (v planView) point(x, y float64) (float64, float64) {
	return v.offsetX + x*v.scale, v.offsetY + (v.depth-y)*v.scale
}

func renderPlanPage(pdf *fpdf.Fpdf, result model.Result, settings model.Settings) {
	env := result.Envelope

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Floor Plan (%.1f x %.1f m)", env.Width, env.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rooms: %d of %d | Placed area: %.1f sq m | Coverage: %.1f%% | Doors: %d | Windows: %d",
		result.PlacedCount(), result.Requested, result.PlacedArea(), result.Coverage(),
		result.DoorCount(), result.WindowCount())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/env.Width, drawHeight/env.Depth)
	canvasW := env.Width * scale
	canvasH := env.Depth * scale

	view := planView{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
		depth:   env.Depth,
	}

	// Envelope outline
	pdf.SetFillColor(250, 250, 250)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	pdf.Rect(view.offsetX, view.offsetY, canvasW, canvasH, "FD")
	pdf.SetDashPattern([]float64{}, 0)

	for _, r := range result.Rooms {
		drawRoom(pdf, view, r, settings)
	}
	for _, r := range result.Rooms {
		drawOpenings(pdf, view, r)
	}

	drawDimensionAnnotations(pdf, env, view.offsetX, view.offsetY, canvasW, canvasH)
	drawRoomLegend(pdf, result, settings, view.offsetY+canvasH+6)
}

func drawRoom(pdf *fpdf.Fpdf, view planView, r model.PlacedRoom, settings model.Settings) {
	x, y, w, h := view.rect(r.X, r.Y, r.Width, r.Height)

	red, green, blue := floorRGB(r.Type, settings)
	pdf.SetFillColor(red, green, blue)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(math.Max(settings.WallThickness*view.scale, 0.3))
	pdf.Rect(x, y, w, h, "FD")

	// Label lines (only if the rectangle is large enough)
	if w < 15 || h < 8 {
		return
	}
	pdf.SetTextColor(0, 0, 0)
	lines := model.LabelFor(r).Lines()
	if h < 16 {
		lines = lines[:1]
	}
	lineH := 4.0
	top := y + h/2 - float64(len(lines))*lineH/2
	for i, line := range lines {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, labelFontSize(w, h))
		lw := pdf.GetStringWidth(line)
		if lw > w-2 {
			continue
		}
		pdf.SetXY(x+(w-lw)/2, top+float64(i)*lineH)
		pdf.CellFormat(lw, lineH, line, "", 0, "C", false, 0, "")
	}
}

// drawOpenings marks doors as white gaps with a swing line and windows as
// a thin double line across the wall.
func drawOpenings(pdf *fpdf.Fpdf, view planView, r model.PlacedRoom) {
	for _, o := range append(append([]model.Opening{}, r.Doors...), r.Windows...) {
		x1, y1, x2, y2 := openingEnds(r, o)
		px1, py1 := view.point(x1, y1)
		px2, py2 := view.point(x2, y2)

		if o.Kind == model.OpeningDoor {
			pdf.SetDrawColor(255, 255, 255)
			pdf.SetLineWidth(1.0)
			pdf.Line(px1, py1, px2, py2)

			pdf.SetDrawColor(120, 60, 0)
			pdf.SetLineWidth(0.2)
			// Swing leaf, perpendicular to the wall, from the first jamb
			leaf := o.Width * view.scale
			if o.Wall.Horizontal() {
				dir := 1.0
				if o.Wall == model.North {
					dir = -1.0
				}
				pdf.Line(px1, py1, px1, py1-dir*leaf)
			} else {
				dir := 1.0
				if o.Wall == model.East {
					dir = -1.0
				}
				pdf.Line(px1, py1, px1+dir*leaf, py1)
			}
			continue
		}

		pdf.SetDrawColor(33, 150, 243)
		pdf.SetLineWidth(0.6)
		pdf.Line(px1, py1, px2, py2)
	}
	pdf.SetDrawColor(0, 0, 0)
}

// openingEnds returns the two plan-space end points of an opening on its wall.
func openingEnds(r model.PlacedRoom, o model.Opening) (float64, float64, float64, float64) {
	half := o.Width / 2
	switch o.Wall {
	case model.North:
		return o.Pos - half, r.Top(), o.Pos + half, r.Top()
	case model.South:
		return o.Pos - half, r.Y, o.Pos + half, r.Y
	case model.East:
		return r.Right(), o.Pos - half, r.Right(), o.Pos + half
	default:
		return r.X, o.Pos - half, r.X, o.Pos + half
	}
}

// drawDimensionAnnotations adds width and depth labels outside the envelope rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, env model.Envelope, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.1f m (%.0f ft)", env.Width, env.Width*model.MeterToFeet)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	depthLabel := fmt.Sprintf("%.1f m (%.0f ft)", env.Depth, env.Depth*model.MeterToFeet)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawRoomLegend renders one swatch per room type present in the layout.
func drawRoomLegend(pdf *fpdf.Fpdf, result model.Result, settings model.Settings, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Rooms:", "", 0, "L", false, 0, "")

	counts := map[model.RoomType]int{}
	for _, r := range result.Rooms {
		counts[r.Type]++
	}

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 22
	for _, rt := range model.AllRoomTypes() {
		if counts[rt] == 0 {
			continue
		}
		label := fmt.Sprintf("%s x%d", rt.DisplayName(), counts[rt])
		labelW := pdf.GetStringWidth(label) + 6

		red, green, blue := floorRGB(rt, settings)
		pdf.SetFillColor(red, green, blue)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.1)
		pdf.Rect(xPos, startY+0.5, 3, 3, "FD")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, result model.Result, settings model.Settings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Floor Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	takeoff := model.EstimateTakeoff(result.Geometry, result.Rooms, 0)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Status", string(result.Status)},
		{"Envelope", fmt.Sprintf("%.1f x %.1f m", result.Envelope.Width, result.Envelope.Depth)},
		{"Rooms Placed", fmt.Sprintf("%d of %d", result.PlacedCount(), result.Requested)},
		{"Coverage", fmt.Sprintf("%.1f%%", result.Coverage())},
		{"Wall Volume", fmt.Sprintf("%.2f cu m", takeoff.WallVolume)},
		{"Openings", fmt.Sprintf("%d doors, %d windows", takeoff.DoorCount, takeoff.WindowCount)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Room schedule table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Room Schedule", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{35, 35, 45, 35, 35, 30, 30}
	headers := []string{"Room", "Type", "Position (m)", "Size (m)", "Area (sq m)", "Doors", "Windows"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range result.Rooms {
		if y > pageHeight-marginBottom-10 {
			break
		}
		xPos = marginLeft
		rowData := []string{
			r.ID,
			r.Type.DisplayName(),
			fmt.Sprintf("%.1f, %.1f", r.X, r.Y),
			fmt.Sprintf("%.1f x %.1f", r.Width, r.Height),
			fmt.Sprintf("%.2f", r.Area()),
			strconv.Itoa(len(r.Doors)),
			strconv.Itoa(len(r.Windows)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Rooms that did not fit", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, spec := range result.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.1f sq m requested", spec.ID, spec.TargetArea)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	if issues := engine.CheckLayout(result, settings); len(issues) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(200, 100, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 6, "Layout issues", "", 0, "L", false, 0, "")
		y += 7
		pdf.SetFont("Helvetica", "", 8)
		for _, msg := range engine.FormatIssues(issues) {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 4, msg, "", 0, "L", false, 0, "")
			y += 4
		}
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by PlanForge - grid %.2f m, wall %.2f m x %.2f m", settings.GridSize, settings.WallThickness, settings.WallHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// floorRGB resolves the floor colour for a room type.
func floorRGB(rt model.RoomType, settings model.Settings) (int, int, int) {
	mat, ok := settings.FloorMaterials[rt]
	if !ok {
		mat = model.FallbackFloorMaterial
	}
	return hexToRGB(mat.Color)
}

// hexToRGB parses "#RRGGBB". Malformed input yields light grey.
func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 240, 240, 240
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 240, 240, 240
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}

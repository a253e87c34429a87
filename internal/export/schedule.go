package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// Sheet names used in the XLSX schedule.
const (
	SheetRooms    = "Rooms"
	SheetOpenings = "Openings"
	SheetTakeoff  = "Takeoff"
)

var (
	roomHeaders    = []interface{}{"Room", "Type", "X (m)", "Y (m)", "Width (m)", "Depth (m)", "Area (sq m)", "Area (sqft)", "Doors", "Windows"}
	openingHeaders = []interface{}{"Room", "Kind", "Wall", "Position (m)", "Width (m)", "Height (m)", "Sill (m)", "Connects To"}
)

// ExportSchedule writes a spreadsheet with one sheet listing rooms, one
// listing every door and window, and a material takeoff using wastePercent.
func ExportSchedule(path string, result model.Result, wastePercent float64) error {
	if !result.HasLayout() {
		return fmt.Errorf("no rooms to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetRooms); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetOpenings, SheetTakeoff} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	roomRows := make([][]interface{}, 0, len(result.Rooms))
	var openingRows [][]interface{}
	for _, r := range result.Rooms {
		l := model.LabelFor(r)
		roomRows = append(roomRows, []interface{}{
			r.ID, r.Type.DisplayName(), r.X, r.Y, r.Width, r.Height, r.Area(), l.AreaSqft, len(r.Doors), len(r.Windows),
		})
		for _, o := range append(append([]model.Opening{}, r.Doors...), r.Windows...) {
			openingRows = append(openingRows, []interface{}{
				r.ID, string(o.Kind), string(o.Wall), o.Pos, o.Width, o.Height, o.SillHeight, o.ConnectsTo,
			})
		}
	}

	if err := writeTable(f, SheetRooms, roomHeaders, roomRows, bold); err != nil {
		return err
	}
	if err := writeTable(f, SheetOpenings, openingHeaders, openingRows, bold); err != nil {
		return err
	}

	t := model.EstimateTakeoff(result.Geometry, result.Rooms, wastePercent)
	takeoffRows := [][]interface{}{
		{"Floor area (sq m)", t.FloorArea},
		{"Floor area (sqft)", t.FloorAreaSqft},
		{"Wall face area (sq m)", t.WallFaceArea},
		{"Opening area (sq m)", t.OpeningArea},
		{"Wall volume (cu m)", t.WallVolume},
		{"Waste (%)", t.WastePercent},
		{"Volume with waste (cu m)", t.VolumeWithWaste},
		{"Wall pieces", t.BoxCount},
		{"Doors", t.DoorCount},
		{"Windows", t.WindowCount},
	}
	if err := writeTable(f, SheetTakeoff, []interface{}{"Item", "Value"}, takeoffRows, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}

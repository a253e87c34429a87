package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// DXF layer names.
const (
	LayerEnvelope = "ENVELOPE"
	LayerRooms    = "ROOMS"
	LayerWalls    = "WALLS"
	LayerDoors    = "DOORS"
	LayerWindows  = "WINDOWS"
	LayerText     = "TEXT"
)

// ExportDXF writes the plan as a 2D DXF drawing in metres with the envelope,
// room outlines, wall footprints, openings and room captions on separate
// layers. The envelope is drawn as the outer face of the exterior wall.
func ExportDXF(path string, result model.Result, settings model.Settings) error {
	if !result.HasLayout() {
		return fmt.Errorf("no rooms to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerEnvelope, color.White},
		{LayerRooms, color.Cyan},
		{LayerWalls, color.Yellow},
		{LayerDoors, color.Red},
		{LayerWindows, color.Blue},
		{LayerText, color.Green},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	if err := drawEnvelope(d, result.Envelope, settings.ExteriorWallThickness); err != nil {
		return err
	}
	if err := drawRoomOutlines(d, result.Rooms); err != nil {
		return err
	}
	if err := drawWallFootprints(d, result.Geometry); err != nil {
		return err
	}
	if err := drawOpeningLines(d, result.Rooms); err != nil {
		return err
	}
	if err := drawCaptions(d, result.Rooms); err != nil {
		return err
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

func rectVertices(x, y, w, h float64) [][]float64 {
	return [][]float64{
		{x, y},
		{x + w, y},
		{x + w, y + h},
		{x, y + h},
	}
}

func drawEnvelope(d *drawing.Drawing, env model.Envelope, thickness float64) error {
	if err := d.ChangeLayer(LayerEnvelope); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true, rectVertices(0, 0, env.Width, env.Depth)...); err != nil {
		return fmt.Errorf("failed to draw envelope: %w", err)
	}
	if thickness > 0 {
		t := thickness / 2
		if _, err := d.LwPolyline(true, rectVertices(-t, -t, env.Width+2*t, env.Depth+2*t)...); err != nil {
			return fmt.Errorf("failed to draw exterior wall face: %w", err)
		}
	}
	return nil
}

func drawRoomOutlines(d *drawing.Drawing, rooms []model.PlacedRoom) error {
	if err := d.ChangeLayer(LayerRooms); err != nil {
		return err
	}
	for _, r := range rooms {
		if _, err := d.LwPolyline(true, rectVertices(r.X, r.Y, r.Width, r.Height)...); err != nil {
			return fmt.Errorf("failed to draw room %s: %w", r.ID, err)
		}
	}
	return nil
}

// drawWallFootprints projects every full-height wall box onto the plan.
// Renderer X/Z map back to plan x/y.
func drawWallFootprints(d *drawing.Drawing, geo model.Geometry) error {
	if err := d.ChangeLayer(LayerWalls); err != nil {
		return err
	}
	for _, b := range geo.Boxes {
		if b.Kind != model.BoxWall {
			continue
		}
		x := b.Center.X - b.Width/2
		y := b.Center.Z - b.Depth/2
		if _, err := d.LwPolyline(true, rectVertices(x, y, b.Width, b.Depth)...); err != nil {
			return fmt.Errorf("failed to draw wall of %s: %w", b.RoomID, err)
		}
	}
	return nil
}

func drawOpeningLines(d *drawing.Drawing, rooms []model.PlacedRoom) error {
	for _, r := range rooms {
		for _, o := range append(append([]model.Opening{}, r.Doors...), r.Windows...) {
			layer := LayerWindows
			if o.Kind == model.OpeningDoor {
				layer = LayerDoors
			}
			if err := d.ChangeLayer(layer); err != nil {
				return err
			}
			x1, y1, x2, y2 := openingEnds(r, o)
			if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
				return fmt.Errorf("failed to draw %s of %s: %w", o.Kind, r.ID, err)
			}
		}
	}
	return nil
}

func drawCaptions(d *drawing.Drawing, rooms []model.PlacedRoom) error {
	if err := d.ChangeLayer(LayerText); err != nil {
		return err
	}
	for _, r := range rooms {
		height := 0.3
		if r.Width < 3 || r.Height < 3 {
			height = 0.2
		}
		for i, line := range model.LabelFor(r).Lines() {
			y := r.Y + r.Height/2 - float64(i)*height*1.5
			if _, err := d.Text(line, r.X+0.2, y, 0, height); err != nil {
				return fmt.Errorf("failed to write caption for %s: %w", r.ID, err)
			}
		}
	}
	return nil
}

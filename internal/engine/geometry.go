package engine

import (
	"math"
	"sort"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// BuildGeometry converts rooms and their openings into floor slabs and wall
// boxes. Plan x maps to renderer X and plan y to renderer Z; Y is up.
// Segments shorter than s.MinSegmentLength are skipped.
func BuildGeometry(rooms []model.PlacedRoom, s model.Settings) model.Geometry {
	geo := model.Geometry{
		Floors: make([]model.FloorSlab, 0, len(rooms)),
		Boxes:  []model.Box{},
	}
	for _, r := range rooms {
		geo.Floors = append(geo.Floors, floorSlab(r, s))
		for _, w := range model.AllWalls() {
			geo.Boxes = append(geo.Boxes, wallBoxes(r, w, s)...)
		}
	}
	return geo
}

func floorSlab(r model.PlacedRoom, s model.Settings) model.FloorSlab {
	mat, ok := s.FloorMaterials[r.Type]
	if !ok {
		mat = model.FallbackFloorMaterial
	}
	return model.FloorSlab{
		RoomID:   r.ID,
		Type:     r.Type,
		Width:    r.Width,
		Depth:    r.Height,
		Center:   model.Vec3{X: r.X + r.Width/2, Y: 0, Z: r.Y + r.Height/2},
		Material: mat,
	}
}

// wallLine returns the plan coordinate of the wall's centre line across its axis.
func wallLine(r model.PlacedRoom, w model.Wall, s model.Settings) float64 {
	inset := 0.0
	if s.InsetWalls {
		inset = s.WallThickness / 2
	}
	switch w {
	case model.North:
		return r.Top() - inset
	case model.South:
		return r.Y + inset
	case model.East:
		return r.Right() - inset
	default:
		return r.X + inset
	}
}

// wallBoxes partitions one wall into solid runs and the sill and lintel pieces around its openings.
func wallBoxes(r model.PlacedRoom, w model.Wall, s model.Settings) []model.Box {
	lo, hi := r.WallSpan(w)
	if hi-lo <= s.MinSegmentLength {
		return nil
	}
	line := wallLine(r, w, s)

	openings := r.Openings(w)
	sort.SliceStable(openings, func(i, j int) bool {
		return openings[i].Pos < openings[j].Pos
	})

	mk := func(kind model.BoxKind, from, to, bottom, top float64) model.Box {
		length := to - from
		height := top - bottom
		mid := from + length/2
		b := model.Box{
			Kind:     kind,
			RoomID:   r.ID,
			Wall:     w,
			Height:   height,
			Material: s.WallMaterial,
		}
		if w.Horizontal() {
			b.Width, b.Depth = length, s.WallThickness
			b.Center = model.Vec3{X: mid, Y: bottom + height/2, Z: line}
		} else {
			b.Width, b.Depth = s.WallThickness, length
			b.Center = model.Vec3{X: line, Y: bottom + height/2, Z: mid}
		}
		return b
	}

	var boxes []model.Box
	cursor := lo
	for _, o := range openings {
		start := math.Max(o.Pos-o.Width/2, lo)
		end := math.Min(o.Pos+o.Width/2, hi)
		if start-cursor > s.MinSegmentLength {
			boxes = append(boxes, mk(model.BoxWall, cursor, start, 0, s.WallHeight))
		}
		if end-start > s.MinSegmentLength {
			if o.SillHeight > 0 {
				boxes = append(boxes, mk(model.BoxSill, start, end, 0, math.Min(o.SillHeight, s.WallHeight)))
			}
			if s.WallHeight-o.Top() > s.MinSegmentLength {
				boxes = append(boxes, mk(model.BoxLintel, start, end, o.Top(), s.WallHeight))
			}
		}
		cursor = math.Max(cursor, end)
	}
	if hi-cursor > s.MinSegmentLength {
		boxes = append(boxes, mk(model.BoxWall, cursor, hi, 0, s.WallHeight))
	}
	return boxes
}

package model

import (
	"fmt"
	"math"
)

// Unit conversion factors.
const (
	MeterToFeet = 3.28084
	SqftToSqm   = 0.092903
)

// RoomLabel is the human-readable caption shown over a room in plan views.
type RoomLabel struct {
	Name     string  `json:"name"`
	WidthFt  int     `json:"width_ft"`
	DepthFt  int     `json:"depth_ft"`
	AreaSqft int     `json:"area_sqft"`
	AreaSqm  float64 `json:"area_sqm"`
}

// LabelFor builds the caption for a placed room. Feet figures are rounded the
// same way as the on-plan dimensions so width x depth matches the area shown.
func LabelFor(r PlacedRoom) RoomLabel {
	w := int(math.Round(r.Width * MeterToFeet))
	d := int(math.Round(r.Height * MeterToFeet))
	return RoomLabel{
		Name:     r.Type.DisplayName(),
		WidthFt:  w,
		DepthFt:  d,
		AreaSqft: w * d,
		AreaSqm:  r.Area(),
	}
}

// Lines returns the caption as display lines.
func (l RoomLabel) Lines() []string {
	return []string{
		l.Name,
		fmt.Sprintf("%d' x %d'", l.WidthFt, l.DepthFt),
		fmt.Sprintf("~%d sqft", l.AreaSqft),
	}
}

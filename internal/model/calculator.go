package model

import "math"

// Takeoff holds the material quantities derived from generated geometry.
type Takeoff struct {
	FloorArea       float64 `json:"floor_area"`        // Total slab area (m²)
	FloorAreaSqft   float64 `json:"floor_area_sqft"`   // Same, in square feet
	WallFaceArea    float64 `json:"wall_face_area"`    // One face of every wall, sill and lintel box (m²)
	OpeningArea     float64 `json:"opening_area"`      // Doors and windows, doors counted once per pair (m²)
	WallVolume      float64 `json:"wall_volume"`       // Solid wall volume (m³)
	VolumeWithWaste float64 `json:"volume_with_waste"` // Wall volume including the waste factor
	WastePercent    float64 `json:"waste_percent"`     // Waste factor applied (e.g., 10 for 10%)
	BoxCount        int     `json:"box_count"`
	DoorCount       int     `json:"door_count"`
	WindowCount     int     `json:"window_count"`
}

// EstimateTakeoff totals floor, wall and opening quantities for a layout.
func EstimateTakeoff(geo Geometry, rooms []PlacedRoom, wastePercent float64) Takeoff {
	var t Takeoff
	for _, f := range geo.Floors {
		t.FloorArea += f.Area()
	}
	for _, b := range geo.Boxes {
		t.WallFaceArea += b.Length() * b.Height
		t.WallVolume += b.Volume()
	}
	t.BoxCount = len(geo.Boxes)

	var doorArea float64
	for _, r := range rooms {
		for _, d := range r.Doors {
			doorArea += d.Width * d.Height
			t.DoorCount++
		}
		for _, w := range r.Windows {
			t.OpeningArea += w.Width * w.Height
			t.WindowCount++
		}
	}
	// Each door is recorded on both rooms it connects.
	t.DoorCount /= 2
	t.OpeningArea += doorArea / 2

	t.FloorAreaSqft = t.FloorArea / SqftToSqm
	t.WastePercent = wastePercent
	t.VolumeWithWaste = t.WallVolume * (1.0 + math.Max(wastePercent, 0)/100.0)
	return t
}

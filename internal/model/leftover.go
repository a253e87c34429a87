package model

import (
	"math"
	"sort"
)

// MinLeftoverDimension is the minimum width or depth (m) for unused envelope
// space to be reported. Narrower remnants are circulation, not space.
const MinLeftoverDimension = 1.0

// MinLeftoverArea is the minimum area (m²) for a leftover region to be reported.
const MinLeftoverArea = 2.0

// DetectLeftovers reports the unused strips of the envelope beyond the
// bounding box of the placed rooms, largest first.
func DetectLeftovers(env Envelope, rooms []PlacedRoom) []FreeRect {
	if env.Width <= 0 || env.Depth <= 0 {
		return nil
	}
	if len(rooms) == 0 {
		return []FreeRect{{X: 0, Y: 0, Width: env.Width, Height: env.Depth}}
	}

	var maxRight, maxTop float64
	for _, r := range rooms {
		maxRight = math.Max(maxRight, r.Right())
		maxTop = math.Max(maxTop, r.Top())
	}

	var out []FreeRect

	// East strip: full envelope depth to the right of every room
	eastW := env.Width - maxRight
	if eastW >= MinLeftoverDimension && env.Depth >= MinLeftoverDimension && eastW*env.Depth >= MinLeftoverArea {
		out = append(out, FreeRect{X: maxRight, Y: 0, Width: eastW, Height: env.Depth})
	}

	// North strip: above every room, only up to the east strip so the two never overlap
	northH := env.Depth - maxTop
	usableW := math.Min(maxRight, env.Width)
	if northH >= MinLeftoverDimension && usableW >= MinLeftoverDimension && northH*usableW >= MinLeftoverArea {
		out = append(out, FreeRect{X: 0, Y: maxTop, Width: usableW, Height: northH})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Area() > out[j].Area()
	})
	return out
}

// TotalLeftoverArea returns the summed area of the given regions.
func TotalLeftoverArea(rects []FreeRect) float64 {
	var total float64
	for _, r := range rects {
		total += r.Area()
	}
	return total
}

package engine

import (
	"math"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// ResolveOpenings returns copies of rooms with doors and windows filled in.
// Any openings already on the input rooms are discarded; the input slice is
// not modified.
//
// A door joins every pair of rooms whose edges coincide within
// s.AdjacencyTolerance and whose shared span is wider than the door. A window
// goes on each exterior wall that has no door and is long enough to hold one
// with clearance.
func ResolveOpenings(rooms []model.PlacedRoom, env model.Envelope, s model.Settings) []model.PlacedRoom {
	out := make([]model.PlacedRoom, len(rooms))
	for i, r := range rooms {
		cp := r.Clone()
		cp.Doors = []model.Opening{}
		cp.Windows = []model.Opening{}
		out[i] = cp
	}

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			addSharedDoor(&out[i], &out[j], s)
		}
	}
	for i := range out {
		addWindows(&out[i], env, s)
	}
	return out
}

// addSharedDoor checks the four ways a and b can touch and records at most
// one door on each of them.
func addSharedDoor(a, b *model.PlacedRoom, s model.Settings) {
	tol := s.AdjacencyTolerance

	var wallA model.Wall
	var start, length float64
	switch {
	case near(a.Right(), b.X, tol):
		wallA = model.East
		start, length = overlap(a.Y, a.Top(), b.Y, b.Top())
	case near(a.X, b.Right(), tol):
		wallA = model.West
		start, length = overlap(a.Y, a.Top(), b.Y, b.Top())
	case near(a.Top(), b.Y, tol):
		wallA = model.North
		start, length = overlap(a.X, a.Right(), b.X, b.Right())
	case near(a.Y, b.Top(), tol):
		wallA = model.South
		start, length = overlap(a.X, a.Right(), b.X, b.Right())
	default:
		return
	}
	if length <= s.DoorWidth {
		return
	}

	pos := start + length/2
	a.Doors = append(a.Doors, door(wallA, pos, b.ID, s))
	b.Doors = append(b.Doors, door(wallA.Opposite(), pos, a.ID, s))
}

func door(w model.Wall, pos float64, to string, s model.Settings) model.Opening {
	return model.Opening{
		Kind:       model.OpeningDoor,
		Wall:       w,
		Pos:        pos,
		Width:      s.DoorWidth,
		Height:     s.DoorHeight,
		ConnectsTo: to,
	}
}

// exteriorWalls lists, in window order, the walls of r lying on the envelope boundary.
func exteriorWalls(r model.PlacedRoom, env model.Envelope, tol float64) []model.Wall {
	var walls []model.Wall
	if near(r.Y, 0, tol) {
		walls = append(walls, model.South)
	}
	if near(r.Top(), env.Depth, tol) {
		walls = append(walls, model.North)
	}
	if near(r.X, 0, tol) {
		walls = append(walls, model.West)
	}
	if near(r.Right(), env.Width, tol) {
		walls = append(walls, model.East)
	}
	return walls
}

func addWindows(r *model.PlacedRoom, env model.Envelope, s model.Settings) {
	for _, w := range exteriorWalls(*r, env, s.AdjacencyTolerance) {
		if r.HasDoorOn(w) {
			continue
		}
		lo, hi := r.WallSpan(w)
		if hi-lo <= s.WindowWidth+s.WindowClearance {
			continue
		}
		r.Windows = append(r.Windows, model.Opening{
			Kind:       model.OpeningWindow,
			Wall:       w,
			Pos:        (lo + hi) / 2,
			Width:      s.WindowWidth,
			Height:     s.WindowHeight,
			SillHeight: s.WindowSill,
		})
	}
}

// IsExterior reports whether wall w of r lies on the envelope boundary.
func IsExterior(r model.PlacedRoom, w model.Wall, env model.Envelope, tol float64) bool {
	for _, ext := range exteriorWalls(r, env, tol) {
		if ext == w {
			return true
		}
	}
	return false
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// overlap returns the start and length of the intersection of [a0,a1] and [b0,b1].
func overlap(a0, a1, b0, b1 float64) (float64, float64) {
	start := math.Max(a0, b0)
	return start, math.Min(a1, b1) - start
}

package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// Pack places rooms into the envelope with a greedy guillotine best-area-fit
// heuristic. Specs are tried largest first; each one takes the free rectangle
// and aspect ratio that leave the least unused area. Rooms that fit nowhere are
// returned as the second value and are not part of the layout.
//
// rng is only consulted when s.AspectJitter is set; it may be nil otherwise.
func Pack(env model.Envelope, specs []model.RoomSpec, s model.Settings, rng *rand.Rand) ([]model.PlacedRoom, []model.RoomSpec) {
	placed := []model.PlacedRoom{}
	var unplaced []model.RoomSpec
	if env.Width <= 0 || env.Depth <= 0 {
		return placed, append(unplaced, specs...)
	}

	ordered := make([]model.RoomSpec, len(specs))
	copy(ordered, specs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TargetArea > ordered[j].TargetArea
	})

	packer := newGuillotinePacker(env.Width, env.Depth, s.MinSplitSize)
	jitter := s.AspectJitter && rng != nil

	for _, spec := range ordered {
		c, ok := packer.bestCandidate(spec.TargetArea, s, jitter, rng)
		if !ok {
			unplaced = append(unplaced, spec)
			continue
		}
		x, y := packer.place(c)
		placed = append(placed, model.PlacedRoom{
			ID:      spec.ID,
			Type:    spec.Type,
			X:       x,
			Y:       y,
			Width:   c.w,
			Height:  c.h,
			Doors:   []model.Opening{},
			Windows: []model.Opening{},
		})
	}
	return placed, unplaced
}

// guillotinePacker keeps the free rectangles of one envelope. Every placement
// consumes exactly one free rectangle and splits its remainder in two.
type guillotinePacker struct {
	freeRects []model.FreeRect
	minSplit  float64
}

// candidate is one feasible (free rect, room size) pairing.
type candidate struct {
	idx   int
	w, h  float64
	waste float64
}

func newGuillotinePacker(width, depth, minSplit float64) *guillotinePacker {
	return &guillotinePacker{
		freeRects: []model.FreeRect{{X: 0, Y: 0, Width: width, Height: depth}},
		minSplit:  minSplit,
	}
}

// bestCandidate evaluates every free rect against every aspect ratio and
// returns the tightest fit. Free rects are scanned newest first, so on equal
// waste the most recently split rect wins.
func (gp *guillotinePacker) bestCandidate(area float64, s model.Settings, jitter bool, rng *rand.Rand) (candidate, bool) {
	best := candidate{idx: -1}
	if area <= 0 {
		return best, false
	}

	for i := len(gp.freeRects) - 1; i >= 0; i-- {
		r := gp.freeRects[i]
		ratios := s.AspectRatios
		if jitter {
			ratios = append(append([]float64(nil), s.AspectRatios...), 0.5+1.5*rng.Float64())
		}
		for _, ratio := range ratios {
			w, h, ok := roomSize(area, ratio, s)
			if !ok {
				continue
			}
			if !r.Fits(w, h) {
				continue
			}
			waste := r.Area() - w*h
			if best.idx < 0 || waste < best.waste {
				best = candidate{idx: i, w: w, h: h, waste: waste}
			}
		}
	}
	return best, best.idx >= 0
}

// roomSize turns a target area and width:height ratio into grid-snapped dimensions.
func roomSize(area, ratio float64, s model.Settings) (float64, float64, bool) {
	w := s.Snap(math.Sqrt(area * ratio))
	if w <= 0 {
		return 0, 0, false
	}
	h := s.Snap(area / w)
	if h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// place puts the room at the origin of its free rect, removes that rect and
// pushes the right and bottom remainders if they are wider than minSplit.
func (gp *guillotinePacker) place(c candidate) (float64, float64) {
	chosen := gp.freeRects[c.idx]
	gp.freeRects = append(gp.freeRects[:c.idx], gp.freeRects[c.idx+1:]...)

	if rw := chosen.Width - c.w; rw > gp.minSplit {
		gp.freeRects = append(gp.freeRects, model.FreeRect{X: chosen.X + c.w, Y: chosen.Y, Width: rw, Height: chosen.Height})
	}
	if rh := chosen.Height - c.h; rh > gp.minSplit {
		gp.freeRects = append(gp.freeRects, model.FreeRect{X: chosen.X, Y: chosen.Y + c.h, Width: c.w, Height: rh})
	}
	return chosen.X, chosen.Y
}

// free returns a copy of the remaining free rectangles.
func (gp *guillotinePacker) free() []model.FreeRect {
	return append([]model.FreeRect(nil), gp.freeRects...)
}

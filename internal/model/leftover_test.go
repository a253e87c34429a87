package model

import (
	"testing"
)

func TestDetectLeftoversEmptyLayout(t *testing.T) {
	env := Envelope{Width: 10, Depth: 8}
	left := DetectLeftovers(env, nil)
	if len(left) != 1 {
		t.Fatalf("expected 1 leftover for an empty layout, got %d", len(left))
	}
	if left[0].Width != 10 || left[0].Height != 8 {
		t.Errorf("expected the whole envelope, got %.1fx%.1f", left[0].Width, left[0].Height)
	}
}

func TestDetectLeftoversEastStrip(t *testing.T) {
	env := Envelope{Width: 10, Depth: 8}
	rooms := []PlacedRoom{{ID: "a", Width: 6, Height: 8}}
	left := DetectLeftovers(env, rooms)
	if len(left) != 1 {
		t.Fatalf("expected 1 leftover, got %d", len(left))
	}
	if left[0].X != 6 || left[0].Width != 4 || left[0].Height != 8 {
		t.Errorf("unexpected east strip: %+v", left[0])
	}
}

func TestDetectLeftoversNorthStrip(t *testing.T) {
	env := Envelope{Width: 10, Depth: 8}
	rooms := []PlacedRoom{{ID: "a", Width: 10, Height: 5}}
	left := DetectLeftovers(env, rooms)
	if len(left) != 1 {
		t.Fatalf("expected 1 leftover, got %d", len(left))
	}
	if left[0].Y != 5 || left[0].Height != 3 || left[0].Width != 10 {
		t.Errorf("unexpected north strip: %+v", left[0])
	}
}

func TestDetectLeftoversSortedAndDisjoint(t *testing.T) {
	env := Envelope{Width: 10, Depth: 8}
	rooms := []PlacedRoom{{ID: "a", Width: 4, Height: 3}}
	left := DetectLeftovers(env, rooms)
	if len(left) != 2 {
		t.Fatalf("expected 2 leftovers, got %d", len(left))
	}
	if left[0].Area() < left[1].Area() {
		t.Error("leftovers should be sorted by area descending")
	}
	a := PlacedRoom{X: left[0].X, Y: left[0].Y, Width: left[0].Width, Height: left[0].Height}
	b := PlacedRoom{X: left[1].X, Y: left[1].Y, Width: left[1].Width, Height: left[1].Height}
	if a.Overlaps(b) {
		t.Error("leftover strips should not overlap")
	}
	if got := TotalLeftoverArea(left); got != 6*8+4*5 {
		t.Errorf("expected total leftover 68, got %f", got)
	}
}

func TestDetectLeftoversIgnoresSlivers(t *testing.T) {
	env := Envelope{Width: 10, Depth: 8}
	rooms := []PlacedRoom{{ID: "a", Width: 9.5, Height: 7.5}}
	if left := DetectLeftovers(env, rooms); len(left) != 0 {
		t.Errorf("expected no usable leftovers, got %d", len(left))
	}
}

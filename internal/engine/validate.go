package engine

import (
	"fmt"
	"math"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// IssueKind classifies a problem found by CheckLayout.
type IssueKind string

const (
	IssueOverlap        IssueKind = "overlap"
	IssueOutside        IssueKind = "outside_envelope"
	IssueDoorUnmatched  IssueKind = "door_unmatched"
	IssueDoorOffSpan    IssueKind = "door_off_span"
	IssueWindowInterior IssueKind = "window_interior"
	IssueWindowDoorWall IssueKind = "window_on_door_wall"
)

// LayoutIssue is one violated layout rule.
type LayoutIssue struct {
	Kind    IssueKind  `json:"kind"`
	RoomID  string     `json:"room_id"`
	OtherID string     `json:"other_id,omitempty"`
	Wall    model.Wall `json:"wall,omitempty"`
	Detail  string     `json:"detail"`
}

// CheckLayout verifies the structural guarantees of a generated layout:
// rooms are disjoint and inside the envelope, every door is mirrored on the
// room it connects to within their shared span, and windows sit only on
// exterior walls without a door. A nil slice means the layout is sound.
func CheckLayout(res model.Result, s model.Settings) []LayoutIssue {
	var issues []LayoutIssue
	env := res.Envelope
	tol := s.AdjacencyTolerance

	for i, a := range res.Rooms {
		if a.X < -1e-6 || a.Y < -1e-6 || a.Right() > env.Width+1e-6 || a.Top() > env.Depth+1e-6 {
			issues = append(issues, LayoutIssue{
				Kind:   IssueOutside,
				RoomID: a.ID,
				Detail: fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f) exceeds %.2fx%.2f", a.X, a.Y, a.Width, a.Height, env.Width, env.Depth),
			})
		}
		for _, b := range res.Rooms[i+1:] {
			if a.Overlaps(b) {
				issues = append(issues, LayoutIssue{Kind: IssueOverlap, RoomID: a.ID, OtherID: b.ID, Detail: "rooms share interior area"})
			}
		}

		for _, d := range a.Doors {
			issues = append(issues, checkDoor(a, d, &res)...)
		}

		for _, w := range a.Windows {
			if !IsExterior(a, w.Wall, env, tol) {
				issues = append(issues, LayoutIssue{Kind: IssueWindowInterior, RoomID: a.ID, Wall: w.Wall, Detail: "window on an interior wall"})
			}
			if a.HasDoorOn(w.Wall) {
				issues = append(issues, LayoutIssue{Kind: IssueWindowDoorWall, RoomID: a.ID, Wall: w.Wall, Detail: "window shares a wall with a door"})
			}
		}
	}
	return issues
}

func checkDoor(a model.PlacedRoom, d model.Opening, res *model.Result) []LayoutIssue {
	b := res.FindRoom(d.ConnectsTo)
	if b == nil {
		return []LayoutIssue{{Kind: IssueDoorUnmatched, RoomID: a.ID, OtherID: d.ConnectsTo, Wall: d.Wall, Detail: "door leads to a missing room"}}
	}

	mirrored := false
	for _, bd := range b.Doors {
		if bd.ConnectsTo == a.ID && bd.Wall == d.Wall.Opposite() && math.Abs(bd.Pos-d.Pos) < 1e-9 {
			mirrored = true
			break
		}
	}
	if !mirrored {
		return []LayoutIssue{{Kind: IssueDoorUnmatched, RoomID: a.ID, OtherID: b.ID, Wall: d.Wall, Detail: "no matching door on the neighbour"}}
	}

	aLo, aHi := a.WallSpan(d.Wall)
	bLo, bHi := b.WallSpan(d.Wall.Opposite())
	lo, hi := math.Max(aLo, bLo), math.Min(aHi, bHi)
	if d.Pos < lo || d.Pos > hi {
		return []LayoutIssue{{
			Kind:    IssueDoorOffSpan,
			RoomID:  a.ID,
			OtherID: b.ID,
			Wall:    d.Wall,
			Detail:  fmt.Sprintf("door at %.2f outside shared span %.2f..%.2f", d.Pos, lo, hi),
		}}
	}
	return nil
}

// FormatIssues produces human-readable warning messages from layout issues.
func FormatIssues(issues []LayoutIssue) []string {
	msgs := make([]string, 0, len(issues))
	for _, is := range issues {
		msg := fmt.Sprintf("%s: %s", is.RoomID, is.Detail)
		if is.OtherID != "" {
			msg = fmt.Sprintf("%s / %s: %s", is.RoomID, is.OtherID, is.Detail)
		}
		if is.Wall != "" {
			msg += fmt.Sprintf(" (%s wall)", is.Wall)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

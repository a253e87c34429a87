package engine

import (
	"testing"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func room(id string, x, y, w, h float64) model.PlacedRoom {
	return model.PlacedRoom{ID: id, Type: model.Bedroom, X: x, Y: y, Width: w, Height: h}
}

func walls(openings []model.Opening) []model.Wall {
	out := make([]model.Wall, len(openings))
	for i, o := range openings {
		out[i] = o.Wall
	}
	return out
}

func TestResolveOpenings_TwoRoomStrip(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 10, Depth: 4}
	rooms := []model.PlacedRoom{room("a", 0, 0, 5, 4), room("b", 5, 0, 5, 4)}

	out := ResolveOpenings(rooms, env, s)

	require.Len(t, out, 2)
	require.Len(t, out[0].Doors, 1)
	require.Len(t, out[1].Doors, 1)

	da, db := out[0].Doors[0], out[1].Doors[0]
	assert.Equal(t, model.East, da.Wall)
	assert.Equal(t, model.West, db.Wall)
	assert.Equal(t, "b", da.ConnectsTo)
	assert.Equal(t, "a", db.ConnectsTo)
	assert.Equal(t, 2.0, da.Pos)
	assert.Equal(t, 2.0, db.Pos)
	assert.Equal(t, model.OpeningDoor, da.Kind)
	assert.Equal(t, s.DoorWidth, da.Width)
	assert.Equal(t, s.DoorHeight, da.Height)
	assert.Zero(t, da.SillHeight)

	assert.Equal(t, []model.Wall{model.South, model.North, model.West}, walls(out[0].Windows))
	assert.Equal(t, []model.Wall{model.South, model.North, model.East}, walls(out[1].Windows))
}

func TestResolveOpenings_DoorAtMiddleOfSharedSpan(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 8, Depth: 8}
	rooms := []model.PlacedRoom{room("a", 0, 0, 4, 6), room("b", 4, 2, 4, 6)}

	out := ResolveOpenings(rooms, env, s)

	require.Len(t, out[0].Doors, 1)
	assert.Equal(t, 4.0, out[0].Doors[0].Pos, "shared span is y 2..6")
	assert.Equal(t, 4.0, out[1].Doors[0].Pos)
}

func TestResolveOpenings_VerticalNeighbours(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 6, Depth: 8}
	rooms := []model.PlacedRoom{room("low", 0, 0, 6, 4), room("high", 1, 4, 3, 4)}

	out := ResolveOpenings(rooms, env, s)

	require.Len(t, out[0].Doors, 1)
	require.Len(t, out[1].Doors, 1)
	assert.Equal(t, model.North, out[0].Doors[0].Wall)
	assert.Equal(t, model.South, out[1].Doors[0].Wall)
	assert.Equal(t, 2.5, out[0].Doors[0].Pos)
}

func TestResolveOpenings_ShortOverlapGetsNoDoor(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 10, Depth: 8}
	rooms := []model.PlacedRoom{room("a", 0, 0, 5, 4), room("b", 5, 3.5, 5, 4)}

	out := ResolveOpenings(rooms, env, s)

	assert.Empty(t, out[0].Doors)
	assert.Empty(t, out[1].Doors)
}

func TestResolveOpenings_EdgesWithinTolerance(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 10.05, Depth: 4}
	rooms := []model.PlacedRoom{room("a", 0, 0, 5, 4), room("b", 5.05, 0, 5, 4)}

	out := ResolveOpenings(rooms, env, s)

	assert.Len(t, out[0].Doors, 1)
	assert.Len(t, out[1].Doors, 1)
}

func TestResolveOpenings_NarrowWallGetsNoWindow(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 2.5, Depth: 2.5}

	out := ResolveOpenings([]model.PlacedRoom{room("a", 0, 0, 2.5, 2.5)}, env, s)

	assert.Empty(t, out[0].Windows, "2.5 is not longer than window width plus clearance")
	assert.NotNil(t, out[0].Windows)
	assert.NotNil(t, out[0].Doors)
}

func TestResolveOpenings_InteriorRoomGetsNoWindow(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 20, Depth: 20}

	out := ResolveOpenings([]model.PlacedRoom{room("a", 5, 5, 6, 6)}, env, s)

	assert.Empty(t, out[0].Windows)
}

func TestResolveOpenings_WindowAtSpanMidpoint(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 20, Depth: 20}

	out := ResolveOpenings([]model.PlacedRoom{room("a", 4, 0, 6, 3)}, env, s)

	require.Len(t, out[0].Windows, 1)
	w := out[0].Windows[0]
	assert.Equal(t, model.South, w.Wall)
	assert.Equal(t, 7.0, w.Pos)
	assert.Equal(t, s.WindowSill, w.SillHeight)
	assert.Equal(t, model.OpeningWindow, w.Kind)
}

func TestResolveOpenings_DoesNotMutateInput(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 10, Depth: 4}
	stale := model.Opening{Kind: model.OpeningDoor, Wall: model.North, Pos: 1}
	rooms := []model.PlacedRoom{room("a", 0, 0, 5, 4), room("b", 5, 0, 5, 4)}
	rooms[0].Doors = []model.Opening{stale}

	out := ResolveOpenings(rooms, env, s)

	require.Len(t, rooms[0].Doors, 1)
	assert.Equal(t, stale, rooms[0].Doors[0])
	assert.Nil(t, rooms[1].Doors)
	require.Len(t, out[0].Doors, 1)
	assert.Equal(t, model.East, out[0].Doors[0].Wall, "stale openings are replaced")
}

func TestResolveOpenings_LargeHouseEveryRoomHasAnOpening(t *testing.T) {
	s := model.DefaultSettings()
	req := largeHouseRequest()
	env := model.NewEnvelope(req.TotalArea, s)
	placed, _ := Pack(env, Allocate(req, s), s, nil)

	out := ResolveOpenings(placed, env, s)

	for _, r := range out {
		assert.NotEmpty(t, append(r.Doors, r.Windows...), r.ID)
	}

	living := out[0]
	require.Equal(t, "LivingRoom-0", living.ID)
	assert.Len(t, living.Doors, 4)
	assert.Equal(t, []model.Wall{model.South, model.West}, walls(living.Windows))
}

func TestIsExterior(t *testing.T) {
	env := model.Envelope{Width: 10, Depth: 10}
	r := room("a", 0, 2, 4, 8)

	assert.True(t, IsExterior(r, model.West, env, 0.1))
	assert.True(t, IsExterior(r, model.North, env, 0.1))
	assert.False(t, IsExterior(r, model.South, env, 0.1))
	assert.False(t, IsExterior(r, model.East, env, 0.1))
}

package engine

import (
	"math/rand"
	"testing"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func largeHouseRequest() model.RoomRequest {
	return model.RoomRequest{
		TotalArea: 1200,
		RoomCounts: map[model.RoomType]int{
			model.Bedroom:    2,
			model.Bathroom:   2,
			model.Kitchen:    1,
			model.LivingRoom: 1,
			model.DiningRoom: 1,
		},
	}
}

func assertDisjointAndContained(t *testing.T, env model.Envelope, rooms []model.PlacedRoom) {
	t.Helper()
	for i, a := range rooms {
		assert.GreaterOrEqual(t, a.X, 0.0, a.ID)
		assert.GreaterOrEqual(t, a.Y, 0.0, a.ID)
		assert.LessOrEqual(t, a.Right(), env.Width+1e-9, a.ID)
		assert.LessOrEqual(t, a.Top(), env.Depth+1e-9, a.ID)
		for _, b := range rooms[i+1:] {
			assert.False(t, a.Overlaps(b), "%s overlaps %s", a.ID, b.ID)
		}
	}
}

func TestPack_LargeHousePlacements(t *testing.T) {
	s := model.DefaultSettings()
	req := largeHouseRequest()
	env := model.NewEnvelope(req.TotalArea, s)
	require.Equal(t, model.Envelope{Width: 47.5, Depth: 31.5}, env)

	placed, unplaced := Pack(env, Allocate(req, s), s, nil)

	require.Empty(t, unplaced)
	require.Len(t, placed, 7)

	want := []struct {
		id         string
		x, y, w, h float64
	}{
		{"LivingRoom-0", 0, 0, 26, 17.5},
		{"Kitchen-0", 0, 17.5, 13.5, 13.5},
		{"Bedroom-0", 13.5, 17.5, 12, 12.5},
		{"Bedroom-1", 26, 0, 12, 12.5},
		{"DiningRoom-0", 26, 12.5, 12, 12.5},
		{"Bathroom-0", 26, 25, 9.5, 6.5},
		{"Bathroom-1", 38, 0, 9.5, 6.5},
	}
	for i, w := range want {
		r := placed[i]
		assert.Equal(t, w.id, r.ID)
		assert.InDelta(t, w.x, r.X, 1e-9, w.id)
		assert.InDelta(t, w.y, r.Y, 1e-9, w.id)
		assert.InDelta(t, w.w, r.Width, 1e-9, w.id)
		assert.InDelta(t, w.h, r.Height, 1e-9, w.id)
	}
	assertDisjointAndContained(t, env, placed)
}

func TestPack_BestAreaFitPicksTightestRatio(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 10, Depth: 10}
	specs := []model.RoomSpec{{ID: "Bedroom-0", Type: model.Bedroom, TargetArea: 16}}

	placed, unplaced := Pack(env, specs, s, nil)

	require.Empty(t, unplaced)
	require.Len(t, placed, 1)
	// Ratio 2 gives 5.5 x 3 (16.5), the largest snapped footprint; ratio 0.5 ties but comes later.
	assert.Equal(t, 5.5, placed[0].Width)
	assert.Equal(t, 3.0, placed[0].Height)
	assert.Equal(t, 0.0, placed[0].X)
	assert.Equal(t, 0.0, placed[0].Y)
	assert.NotNil(t, placed[0].Doors)
	assert.NotNil(t, placed[0].Windows)
}

func TestPack_DropsRoomThatFitsNowhere(t *testing.T) {
	s := model.DefaultSettings()
	env := model.Envelope{Width: 5, Depth: 5}
	specs := []model.RoomSpec{
		{ID: "LivingRoom-0", Type: model.LivingRoom, TargetArea: 100},
		{ID: "Bathroom-0", Type: model.Bathroom, TargetArea: 4},
	}

	placed, unplaced := Pack(env, specs, s, nil)

	require.Len(t, placed, 1)
	assert.Equal(t, "Bathroom-0", placed[0].ID)
	require.Len(t, unplaced, 1)
	assert.Equal(t, "LivingRoom-0", unplaced[0].ID)
}

func TestPack_PartialLayoutWhenEnvelopeIsTight(t *testing.T) {
	s := model.DefaultSettings()
	req := model.RoomRequest{
		TotalArea:  100,
		RoomCounts: map[model.RoomType]int{model.Bedroom: 1, model.Bathroom: 1},
	}
	env := model.NewEnvelope(req.TotalArea, s)

	placed, unplaced := Pack(env, Allocate(req, s), s, nil)

	require.Len(t, placed, 1)
	assert.Equal(t, "Bedroom-0", placed[0].ID)
	assert.Equal(t, 10.5, placed[0].Width)
	assert.Equal(t, 7.0, placed[0].Height)
	require.Len(t, unplaced, 1)
	assert.Equal(t, "Bathroom-0", unplaced[0].ID)
}

func TestPack_DoesNotReorderInput(t *testing.T) {
	s := model.DefaultSettings()
	specs := []model.RoomSpec{
		{ID: "a", Type: model.Bathroom, TargetArea: 4},
		{ID: "b", Type: model.LivingRoom, TargetArea: 20},
	}
	Pack(model.Envelope{Width: 20, Depth: 20}, specs, s, nil)

	assert.Equal(t, "a", specs[0].ID)
	assert.Equal(t, "b", specs[1].ID)
}

func TestPack_EmptyEnvelope(t *testing.T) {
	specs := []model.RoomSpec{{ID: "a", Type: model.Bedroom, TargetArea: 10}}
	placed, unplaced := Pack(model.Envelope{}, specs, model.DefaultSettings(), nil)

	assert.Empty(t, placed)
	assert.Len(t, unplaced, 1)
}

func TestPack_JitterIsReproducible(t *testing.T) {
	s := model.DefaultSettings()
	s.AspectJitter = true
	req := largeHouseRequest()
	env := model.NewEnvelope(req.TotalArea, s)
	specs := Allocate(req, s)

	first, firstDropped := Pack(env, specs, s, rand.New(rand.NewSource(7)))
	second, secondDropped := Pack(env, specs, s, rand.New(rand.NewSource(7)))

	assert.Equal(t, first, second)
	assert.Equal(t, firstDropped, secondDropped)
	assertDisjointAndContained(t, env, first)
}

func TestPack_PropertiesAcrossRequests(t *testing.T) {
	s := model.DefaultSettings()
	requests := []model.RoomRequest{
		largeHouseRequest(),
		{TotalArea: 150, RoomCounts: map[model.RoomType]int{
			model.Bedroom: 3, model.Bathroom: 2, model.Kitchen: 1, model.LivingRoom: 1, model.DiningRoom: 1,
		}},
		{TotalArea: 60, RoomCounts: map[model.RoomType]int{model.Bedroom: 1, model.Kitchen: 1}},
		{TotalArea: 900, RoomCounts: map[model.RoomType]int{model.Bedroom: 10, model.Bathroom: 10}},
	}

	for _, req := range requests {
		for _, jitter := range []bool{false, true} {
			s.AspectJitter = jitter
			env := model.NewEnvelope(req.TotalArea, s)
			specs := Allocate(req, s)
			placed, unplaced := Pack(env, specs, s, rand.New(rand.NewSource(s.Seed)))

			assert.Equal(t, len(specs), len(placed)+len(unplaced))
			assertDisjointAndContained(t, env, placed)
		}
	}
}

func TestGuillotinePacker_SplitsRightAndBottom(t *testing.T) {
	gp := newGuillotinePacker(10, 8, 0.5)
	x, y := gp.place(candidate{idx: 0, w: 4, h: 3})

	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	free := gp.free()
	require.Len(t, free, 2)
	assert.Equal(t, model.FreeRect{X: 4, Y: 0, Width: 6, Height: 8}, free[0])
	assert.Equal(t, model.FreeRect{X: 0, Y: 3, Width: 4, Height: 5}, free[1])
}

func TestGuillotinePacker_SkipsSlivers(t *testing.T) {
	gp := newGuillotinePacker(4.5, 3.5, 0.5)
	gp.place(candidate{idx: 0, w: 4, h: 3})

	assert.Empty(t, gp.free(), "0.5 remainders are not wider than the split threshold")
}

func TestGuillotinePacker_TiesGoToNewestFreeRect(t *testing.T) {
	s := model.DefaultSettings()
	gp := &guillotinePacker{
		freeRects: []model.FreeRect{
			{X: 0, Y: 0, Width: 4, Height: 4},
			{X: 6, Y: 0, Width: 4, Height: 4},
		},
		minSplit: s.MinSplitSize,
	}

	c, ok := gp.bestCandidate(16, s, false, nil)
	require.True(t, ok)
	assert.Equal(t, 1, c.idx, "equal waste keeps the last free rect")
	assert.Equal(t, 4.0, c.w)
	assert.Equal(t, 4.0, c.h)
	assert.Equal(t, 0.0, c.waste)

	x, y := gp.place(c)
	assert.Equal(t, 6.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, []model.FreeRect{{X: 0, Y: 0, Width: 4, Height: 4}}, gp.free())
}

func TestGuillotinePacker_FitUsesFreeRectBounds(t *testing.T) {
	s := model.DefaultSettings()
	gp := newGuillotinePacker(3.5, 3.5, s.MinSplitSize)

	// 16 sq m snaps to at least 4 m on one side with every ratio.
	_, ok := gp.bestCandidate(16, s, false, nil)
	assert.False(t, ok)

	c, ok := gp.bestCandidate(12, s, false, nil)
	require.True(t, ok)
	assert.True(t, gp.free()[0].Fits(c.w, c.h))
}

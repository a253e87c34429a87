package engine

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LargeHouse(t *testing.T) {
	s := model.DefaultSettings()
	res, err := New(s).Generate(largeHouseRequest())
	require.NoError(t, err)

	assert.Equal(t, model.StatusComplete, res.Status)
	assert.Equal(t, 7, res.Requested)
	require.Equal(t, 7, res.PlacedCount())
	assert.Empty(t, res.Unplaced)

	// Snapping moves each room by at most width * grid/2.
	var slack float64
	for _, r := range res.Rooms {
		slack += r.Width * s.GridSize / 2
	}
	assert.InDelta(t, 1200.0, res.PlacedArea(), slack)
	assert.InDelta(t, 1200.0, res.PlacedArea(), 12.0, "within 1%")

	for _, r := range res.Rooms {
		if len(exteriorWalls(r, res.Envelope, s.AdjacencyTolerance)) > 0 {
			assert.NotEmpty(t, append(r.Doors, r.Windows...), r.ID)
		}
	}
	assert.Empty(t, CheckLayout(res, s))
	assert.Len(t, res.Geometry.Floors, 7)
	assert.NotEmpty(t, res.Geometry.Boxes)
}

func TestGenerate_AllZeroCounts(t *testing.T) {
	req := model.RoomRequest{
		TotalArea:  500,
		RoomCounts: map[model.RoomType]int{model.Bedroom: 0, model.Kitchen: 0},
	}
	res, err := New(model.DefaultSettings()).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, model.StatusEmpty, res.Status)
	assert.Empty(t, res.Rooms)
	assert.True(t, res.Geometry.Empty())
	assert.False(t, res.HasLayout())
}

func TestGenerate_DegenerateEnvelope(t *testing.T) {
	s := model.DefaultSettings()
	s.EnvelopeAspect = 50

	req := model.RoomRequest{TotalArea: 100, RoomCounts: map[model.RoomType]int{model.LivingRoom: 1}}
	res, err := New(s).Generate(req)
	require.NoError(t, err)

	assert.LessOrEqual(t, res.PlacedCount(), res.Requested)
	assert.Equal(t, model.Envelope{Width: 79, Depth: 1.5}, res.Envelope)
	assert.Equal(t, model.StatusFailed, res.Status)
	require.Len(t, res.Unplaced, 1)
	assert.Equal(t, "LivingRoom-0", res.Unplaced[0].ID)
}

func TestGenerate_PartialLayout(t *testing.T) {
	req := model.RoomRequest{
		TotalArea:  100,
		RoomCounts: map[model.RoomType]int{model.Bedroom: 1, model.Bathroom: 1},
	}
	res, err := New(model.DefaultSettings()).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, model.StatusPartial, res.Status)
	assert.Equal(t, 1, res.PlacedCount())
	assert.Len(t, res.Unplaced, 1)
	assert.NotEmpty(t, res.Leftover)
}

func TestGenerate_SquareFeetInput(t *testing.T) {
	s := model.DefaultSettings()
	s.InputUnit = model.UnitSquareFeet

	res, err := New(s).Generate(largeHouseRequest())
	require.NoError(t, err)

	assert.Equal(t, model.Envelope{Width: 14.5, Depth: 9.5}, res.Envelope)
	assert.Equal(t, 7, res.PlacedCount())
	assert.InDelta(t, 1200*model.SqftToSqm, res.PlacedArea(), 3.0)
}

func TestGenerate_RejectsInvalidRequest(t *testing.T) {
	gen := New(model.DefaultSettings())

	_, err := gen.Generate(model.RoomRequest{TotalArea: 10, RoomCounts: map[model.RoomType]int{model.Bedroom: 1}})
	assert.True(t, errors.Is(err, model.ErrInvalidRequest))

	_, err = gen.Generate(model.RoomRequest{TotalArea: 100, RoomCounts: map[model.RoomType]int{model.Bedroom: 11}})
	assert.True(t, errors.Is(err, model.ErrInvalidRequest))

	_, err = gen.Generate(model.RoomRequest{TotalArea: math.Inf(1)})
	assert.True(t, errors.Is(err, model.ErrInvalidRequest))
}

func TestGenerate_RejectsInvalidSettings(t *testing.T) {
	s := model.DefaultSettings()
	s.GridSize = 0

	_, err := New(s).Generate(largeHouseRequest())
	assert.True(t, errors.Is(err, model.ErrInvalidSettings))
}

func TestGenerate_DoesNotMutateRequest(t *testing.T) {
	s := model.DefaultSettings()
	s.InputUnit = model.UnitSquareFeet
	req := largeHouseRequest()
	req.RoomSizeHints = map[model.RoomType]float64{model.Kitchen: 150}

	_, err := New(s).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, req.TotalArea)
	assert.Equal(t, 150.0, req.RoomSizeHints[model.Kitchen])
}

func TestGenerate_Idempotent(t *testing.T) {
	for _, jitter := range []bool{false, true} {
		s := model.DefaultSettings()
		s.AspectJitter = jitter
		gen := New(s)

		first, err := gen.Generate(largeHouseRequest())
		require.NoError(t, err)
		second, err := gen.Generate(largeHouseRequest())
		require.NoError(t, err)

		assert.Equal(t, first, second, "jitter=%v", jitter)
	}
}

func TestGenerate_ConcurrentCallsAgree(t *testing.T) {
	s := model.DefaultSettings()
	s.AspectJitter = true
	gen := New(s)

	want, err := gen.Generate(largeHouseRequest())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]model.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = gen.Generate(largeHouseRequest())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGenerate_LogsAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err := New(model.DefaultSettings(), WithLogger(logger)).Generate(largeHouseRequest())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "layout generated")
	assert.Contains(t, buf.String(), "allocated rooms")
}

func TestGenerate_SilentByDefault(t *testing.T) {
	gen := New(model.DefaultSettings(), WithLogger(nil))
	_, err := gen.Generate(largeHouseRequest())
	require.NoError(t, err)
}

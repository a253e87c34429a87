package engine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// Generator runs the full allocate → pack → openings → geometry pipeline.
//
// A Generator holds no per-run state, so one value can serve concurrent
// Generate calls. Randomness, when enabled, comes from a source seeded with
// Settings.Seed at the start of each call.
type Generator struct {
	Settings model.Settings
	logger   *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger routes pipeline debug output to l. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns a Generator using settings. Without WithLogger it logs nowhere.
func New(settings model.Settings, opts ...Option) *Generator {
	g := &Generator{
		Settings: settings,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate lays out req. Invalid settings or requests fail fast with an error
// wrapping model.ErrInvalidSettings or model.ErrInvalidRequest. A request for
// zero rooms, or one whose rooms cannot be packed, is not an error: check
// Result.Status and Result.Unplaced.
func (g *Generator) Generate(req model.RoomRequest) (model.Result, error) {
	s := g.Settings
	if err := s.Validate(); err != nil {
		return model.Result{}, err
	}

	req = toEngineUnits(req, s)
	if err := req.Validate(s); err != nil {
		return model.Result{}, err
	}

	specs := Allocate(req, s)
	env := model.NewEnvelope(req.TotalArea, s)
	g.logger.Debug("allocated rooms",
		"specs", len(specs),
		"envelope", fmt.Sprintf("%.2fx%.2f", env.Width, env.Depth))

	res := model.Result{
		Envelope:  env,
		Requested: len(specs),
		Rooms:     []model.PlacedRoom{},
		Unplaced:  []model.RoomSpec{},
		Geometry:  model.Geometry{Floors: []model.FloorSlab{}, Boxes: []model.Box{}},
	}
	if len(specs) == 0 {
		res.Status = model.StatusEmpty
		res.Leftover = model.DetectLeftovers(env, nil)
		g.logger.Debug("nothing to lay out")
		return res, nil
	}

	rng := rand.New(rand.NewSource(s.Seed))
	placed, unplaced := Pack(env, specs, s, rng)
	for _, spec := range unplaced {
		g.logger.Debug("room dropped", "id", spec.ID, "target_area", fmt.Sprintf("%.2f", spec.TargetArea))
	}

	res.Rooms = ResolveOpenings(placed, env, s)
	if len(unplaced) > 0 {
		res.Unplaced = unplaced
	}
	res.Geometry = BuildGeometry(res.Rooms, s)
	res.Leftover = model.DetectLeftovers(env, res.Rooms)
	res.Status = model.StatusFor(res.Requested, len(res.Rooms))

	g.logger.Debug("layout generated",
		"status", res.Status,
		"placed", len(res.Rooms),
		"doors", res.DoorCount(),
		"windows", res.WindowCount(),
		"boxes", len(res.Geometry.Boxes))
	return res, nil
}

// toEngineUnits converts the request's areas from s.InputUnit to square metres.
// The returned request never shares maps with req.
func toEngineUnits(req model.RoomRequest, s model.Settings) model.RoomRequest {
	out := model.RoomRequest{
		TotalArea:  s.ToEngineArea(req.TotalArea),
		RoomCounts: make(map[model.RoomType]int, len(req.RoomCounts)),
	}
	for rt, c := range req.RoomCounts {
		out.RoomCounts[rt] = c
	}
	if len(req.RoomSizeHints) > 0 {
		out.RoomSizeHints = make(map[model.RoomType]float64, len(req.RoomSizeHints))
		for rt, a := range req.RoomSizeHints {
			out.RoomSizeHints[rt] = s.ToEngineArea(a)
		}
	}
	return out
}

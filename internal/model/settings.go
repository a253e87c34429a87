package model

import (
	"fmt"
	"math"
)

// Unit names the area unit of RoomRequest.TotalArea and size hints.
type Unit string

const (
	UnitSquareMeters Unit = "sqm"
	UnitSquareFeet   Unit = "sqft"
)

// SizeRange bounds the per-instance size hint accepted for a room type.
type SizeRange struct {
	Min float64 `json:"min" toml:"min" yaml:"min"`
	Max float64 `json:"max" toml:"max" yaml:"max"`
}

// Settings holds every tunable constant of the layout and geometry engine.
// Lengths are in metres once the request has been converted to InputUnit.
type Settings struct {
	// Packing
	GridSize          float64   `json:"grid_size" toml:"grid_size" yaml:"grid_size"`
	CirculationFactor float64   `json:"circulation_factor" toml:"circulation_factor" yaml:"circulation_factor"`
	EnvelopeAspect    float64   `json:"envelope_aspect" toml:"envelope_aspect" yaml:"envelope_aspect"`
	AspectRatios      []float64 `json:"aspect_ratios" toml:"aspect_ratios" yaml:"aspect_ratios"`
	AspectJitter      bool      `json:"aspect_jitter" toml:"aspect_jitter" yaml:"aspect_jitter"`
	Seed              int64     `json:"seed" toml:"seed" yaml:"seed"`
	MinSplitSize      float64   `json:"min_split_size" toml:"min_split_size" yaml:"min_split_size"`

	// Allocation
	NormalizeTolerance float64                `json:"normalize_tolerance" toml:"normalize_tolerance" yaml:"normalize_tolerance"`
	AreaShares         map[RoomType]float64   `json:"area_shares" toml:"area_shares" yaml:"area_shares"`
	MinRoomAreas       map[RoomType]float64   `json:"min_room_areas" toml:"min_room_areas" yaml:"min_room_areas"`
	RoomSizeRanges     map[RoomType]SizeRange `json:"room_size_ranges" toml:"room_size_ranges" yaml:"room_size_ranges"`

	// Request bounds
	InputUnit    Unit    `json:"input_unit" toml:"input_unit" yaml:"input_unit"`
	MinTotalArea float64 `json:"min_total_area" toml:"min_total_area" yaml:"min_total_area"`
	MaxTotalArea float64 `json:"max_total_area" toml:"max_total_area" yaml:"max_total_area"`
	MaxRoomCount int     `json:"max_room_count" toml:"max_room_count" yaml:"max_room_count"`

	// Openings
	AdjacencyTolerance float64 `json:"adjacency_tolerance" toml:"adjacency_tolerance" yaml:"adjacency_tolerance"`
	DoorWidth          float64 `json:"door_width" toml:"door_width" yaml:"door_width"`
	DoorHeight         float64 `json:"door_height" toml:"door_height" yaml:"door_height"`
	WindowWidth        float64 `json:"window_width" toml:"window_width" yaml:"window_width"`
	WindowHeight       float64 `json:"window_height" toml:"window_height" yaml:"window_height"`
	WindowSill         float64 `json:"window_sill" toml:"window_sill" yaml:"window_sill"`
	WindowClearance    float64 `json:"window_clearance" toml:"window_clearance" yaml:"window_clearance"`

	// Geometry
	WallHeight            float64               `json:"wall_height" toml:"wall_height" yaml:"wall_height"`
	WallThickness         float64               `json:"wall_thickness" toml:"wall_thickness" yaml:"wall_thickness"`
	ExteriorWallThickness float64               `json:"exterior_wall_thickness" toml:"exterior_wall_thickness" yaml:"exterior_wall_thickness"`
	InsetWalls            bool                  `json:"inset_walls" toml:"inset_walls" yaml:"inset_walls"`
	MinSegmentLength      float64               `json:"min_segment_length" toml:"min_segment_length" yaml:"min_segment_length"`
	FloorMaterials        map[RoomType]Material `json:"floor_materials" toml:"floor_materials" yaml:"floor_materials"`
	WallMaterial          Material              `json:"wall_material" toml:"wall_material" yaml:"wall_material"`
}

// DefaultAspectRatios are the width:height trials used when packing a room.
func DefaultAspectRatios() []float64 {
	return []float64{1, 1.5, 1 / 1.5, 2, 0.5}
}

func DefaultSettings() Settings {
	return Settings{
		GridSize:          0.5,
		CirculationFactor: 1.25,
		EnvelopeAspect:    1.5,
		AspectRatios:      DefaultAspectRatios(),
		AspectJitter:      false,
		Seed:              42,
		MinSplitSize:      0.5,

		NormalizeTolerance: 1.0,
		AreaShares: map[RoomType]float64{
			LivingRoom: 0.30,
			Kitchen:    0.12,
			Bedroom:    0.20,
			Bathroom:   0.08,
			DiningRoom: 0.10,
		},
		MinRoomAreas: map[RoomType]float64{
			Bedroom:    9,
			Bathroom:   4,
			Kitchen:    6,
			LivingRoom: 12,
			DiningRoom: 8,
		},
		RoomSizeRanges: map[RoomType]SizeRange{
			Bedroom:    {Min: 7, Max: 60},
			Bathroom:   {Min: 3, Max: 25},
			Kitchen:    {Min: 5, Max: 50},
			LivingRoom: {Min: 10, Max: 120},
			DiningRoom: {Min: 6, Max: 60},
		},

		InputUnit:    UnitSquareMeters,
		MinTotalArea: 50,
		MaxTotalArea: 5000,
		MaxRoomCount: 10,

		AdjacencyTolerance: 0.1,
		DoorWidth:          0.9,
		DoorHeight:         2.1,
		WindowWidth:        1.5,
		WindowHeight:       1.2,
		WindowSill:         0.9,
		WindowClearance:    1.0,

		WallHeight:            2.7,
		WallThickness:         0.15,
		ExteriorWallThickness: 0.25,
		InsetWalls:            false,
		MinSegmentLength:      0.01,
		FloorMaterials:        DefaultFloorMaterials(),
		WallMaterial:          Material{Name: "wall", Color: "#F5F5F5", Roughness: 0.9},
	}
}

// Snap rounds v to the nearest grid multiple. A non-positive grid disables snapping.
func (s Settings) Snap(v float64) float64 {
	if s.GridSize <= 0 {
		return v
	}
	return math.Round(v/s.GridSize) * s.GridSize
}

// ToEngineArea converts an area given in InputUnit to square metres.
func (s Settings) ToEngineArea(area float64) float64 {
	if s.InputUnit == UnitSquareFeet {
		return area * SqftToSqm
	}
	return area
}

// Validate rejects settings the engine cannot work with. Errors wrap ErrInvalidSettings.
func (s Settings) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"grid_size", s.GridSize},
		{"circulation_factor", s.CirculationFactor},
		{"envelope_aspect", s.EnvelopeAspect},
		{"door_width", s.DoorWidth},
		{"door_height", s.DoorHeight},
		{"window_width", s.WindowWidth},
		{"window_height", s.WindowHeight},
		{"wall_height", s.WallHeight},
		{"wall_thickness", s.WallThickness},
	}
	for _, p := range positive {
		if math.IsNaN(p.value) || p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSettings, p.name, p.value)
		}
	}
	if len(s.AspectRatios) == 0 {
		return fmt.Errorf("%w: at least one aspect ratio is required", ErrInvalidSettings)
	}
	for _, r := range s.AspectRatios {
		if math.IsNaN(r) || r <= 0 {
			return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidSettings, r)
		}
	}
	if s.WindowSill < 0 || s.MinSplitSize < 0 || s.AdjacencyTolerance < 0 || s.NormalizeTolerance < 0 {
		return fmt.Errorf("%w: window_sill, min_split_size and tolerances must not be negative", ErrInvalidSettings)
	}
	if s.MinTotalArea > s.MaxTotalArea {
		return fmt.Errorf("%w: min_total_area %.0f exceeds max_total_area %.0f",
			ErrInvalidSettings, s.MinTotalArea, s.MaxTotalArea)
	}
	if s.InputUnit != UnitSquareMeters && s.InputUnit != UnitSquareFeet {
		return fmt.Errorf("%w: unknown input unit %q", ErrInvalidSettings, s.InputUnit)
	}
	return nil
}

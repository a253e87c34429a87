package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Sentinel errors returned (wrapped) by validation.
var (
	ErrInvalidRequest  = errors.New("invalid room request")
	ErrInvalidSettings = errors.New("invalid settings")
)

// RoomType is one of the fixed room categories the generator knows about.
type RoomType string

const (
	Bedroom    RoomType = "Bedroom"
	Bathroom   RoomType = "Bathroom"
	Kitchen    RoomType = "Kitchen"
	LivingRoom RoomType = "LivingRoom"
	DiningRoom RoomType = "DiningRoom"
)

// AllRoomTypes returns the room types in allocation order.
func AllRoomTypes() []RoomType {
	return []RoomType{Bedroom, Bathroom, Kitchen, LivingRoom, DiningRoom}
}

// Valid reports whether t belongs to the closed room type enumeration.
func (t RoomType) Valid() bool {
	for _, rt := range AllRoomTypes() {
		if rt == t {
			return true
		}
	}
	return false
}

// DisplayName splits the camel-cased type into words ("LivingRoom" -> "Living Room").
func (t RoomType) DisplayName() string {
	var b strings.Builder
	for i, r := range string(t) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseRoomType matches s against the known room types ignoring case and spaces.
func ParseRoomType(s string) (RoomType, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(s), ""))
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, "-", "")
	for _, rt := range AllRoomTypes() {
		if strings.ToLower(string(rt)) == key {
			return rt, true
		}
	}
	switch key {
	case "bed", "br":
		return Bedroom, true
	case "bath", "ba", "wc":
		return Bathroom, true
	case "living", "lounge":
		return LivingRoom, true
	case "dining":
		return DiningRoom, true
	}
	return "", false
}

// RoomRequest is the user-facing input: a total area budget and a count per room type.
type RoomRequest struct {
	TotalArea     float64              `json:"total_area" toml:"total_area" yaml:"total_area"`
	RoomCounts    map[RoomType]int     `json:"room_counts" toml:"room_counts" yaml:"room_counts"`
	RoomSizeHints map[RoomType]float64 `json:"room_size_hints,omitempty" toml:"room_size_hints" yaml:"room_size_hints,omitempty"`
}

// RequestedRooms returns the total number of room instances asked for.
func (r RoomRequest) RequestedRooms() int {
	n := 0
	for _, c := range r.RoomCounts {
		if c > 0 {
			n += c
		}
	}
	return n
}

// Validate checks the request against the bounds configured in s.
// Every failure wraps ErrInvalidRequest.
func (r RoomRequest) Validate(s Settings) error {
	if math.IsNaN(r.TotalArea) || r.TotalArea < s.MinTotalArea || r.TotalArea > s.MaxTotalArea {
		return fmt.Errorf("%w: total area %.2f outside [%.0f, %.0f]",
			ErrInvalidRequest, r.TotalArea, s.MinTotalArea, s.MaxTotalArea)
	}
	for rt, count := range r.RoomCounts {
		if !rt.Valid() {
			return fmt.Errorf("%w: unknown room type %q", ErrInvalidRequest, rt)
		}
		if count < 0 || count > s.MaxRoomCount {
			return fmt.Errorf("%w: %s count %d outside [0, %d]",
				ErrInvalidRequest, rt, count, s.MaxRoomCount)
		}
	}
	for rt, size := range r.RoomSizeHints {
		if !rt.Valid() {
			return fmt.Errorf("%w: unknown room type %q in size hints", ErrInvalidRequest, rt)
		}
		if math.IsNaN(size) || size <= 0 {
			return fmt.Errorf("%w: %s size hint must be positive", ErrInvalidRequest, rt)
		}
		if rng, ok := s.RoomSizeRanges[rt]; ok && (size < rng.Min || size > rng.Max) {
			return fmt.Errorf("%w: %s size hint %.2f outside [%.0f, %.0f]",
				ErrInvalidRequest, rt, size, rng.Min, rng.Max)
		}
	}
	return nil
}

// RoomSpec is one room instance with its target area, produced by allocation.
type RoomSpec struct {
	ID         string   `json:"id"`
	Type       RoomType `json:"type"`
	TargetArea float64  `json:"target_area"`
}

// Envelope is the outer rectangle rooms are packed into.
type Envelope struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// Area returns the envelope area.
func (e Envelope) Area() float64 {
	return e.Width * e.Depth
}

// NewEnvelope derives the building envelope from the usable area: gross area
// is area times the circulation factor, split by the configured width:depth
// aspect and snapped to the grid.
func NewEnvelope(totalArea float64, s Settings) Envelope {
	if totalArea <= 0 {
		return Envelope{}
	}
	gross := totalArea * s.CirculationFactor
	width := s.Snap(math.Sqrt(gross * s.EnvelopeAspect))
	if width <= 0 {
		return Envelope{}
	}
	return Envelope{Width: width, Depth: s.Snap(gross / width)}
}

// FreeRect is an unoccupied region of the envelope tracked during packing.
type FreeRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the rectangle area.
func (f FreeRect) Area() float64 {
	return f.Width * f.Height
}

// fitEpsilon absorbs float error in grid-snapped dimensions.
const fitEpsilon = 1e-6

// Fits reports whether a w x h block fits inside the rectangle.
func (f FreeRect) Fits(w, h float64) bool {
	return w <= f.Width+fitEpsilon && h <= f.Height+fitEpsilon
}

// Wall identifies one side of a room. North is the edge at y+height.
type Wall string

const (
	North Wall = "north"
	South Wall = "south"
	East  Wall = "east"
	West  Wall = "west"
)

// AllWalls returns the walls in geometry build order.
func AllWalls() []Wall {
	return []Wall{North, South, East, West}
}

// Horizontal reports whether the wall runs along the x axis.
func (w Wall) Horizontal() bool {
	return w == North || w == South
}

// Opposite returns the facing wall.
func (w Wall) Opposite() Wall {
	switch w {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// OpeningKind distinguishes doors from windows.
type OpeningKind string

const (
	OpeningDoor   OpeningKind = "door"
	OpeningWindow OpeningKind = "window"
)

// Opening is a door or window cut into one wall of a room.
// Pos is the centre of the opening in envelope coordinates along the wall's axis.
type Opening struct {
	Kind       OpeningKind `json:"kind"`
	Wall       Wall        `json:"wall"`
	Pos        float64     `json:"pos"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	SillHeight float64     `json:"sill_height"`
	ConnectsTo string      `json:"connects_to,omitempty"`
}

// Top returns the height of the opening's upper edge above the floor.
func (o Opening) Top() float64 {
	return o.SillHeight + o.Height
}

// PlacedRoom is a room rectangle positioned inside the envelope.
type PlacedRoom struct {
	ID      string    `json:"id"`
	Type    RoomType  `json:"type"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Doors   []Opening `json:"doors"`
	Windows []Opening `json:"windows"`
}

// Area returns the room's footprint area.
func (r PlacedRoom) Area() float64 {
	return r.Width * r.Height
}

// Right returns the x coordinate of the east edge.
func (r PlacedRoom) Right() float64 {
	return r.X + r.Width
}

// Top returns the y coordinate of the north edge.
func (r PlacedRoom) Top() float64 {
	return r.Y + r.Height
}

// Overlaps reports whether two rooms share any interior area.
func (r PlacedRoom) Overlaps(o PlacedRoom) bool {
	const eps = 1e-6
	return r.X < o.Right()-eps && r.Right() > o.X+eps &&
		r.Y < o.Top()-eps && r.Top() > o.Y+eps
}

// WallSpan returns the start and end coordinates of a wall along its axis.
func (r PlacedRoom) WallSpan(w Wall) (float64, float64) {
	if w.Horizontal() {
		return r.X, r.Right()
	}
	return r.Y, r.Top()
}

// Openings returns the doors and windows on the given wall.
func (r PlacedRoom) Openings(w Wall) []Opening {
	var out []Opening
	for _, d := range r.Doors {
		if d.Wall == w {
			out = append(out, d)
		}
	}
	for _, win := range r.Windows {
		if win.Wall == w {
			out = append(out, win)
		}
	}
	return out
}

// HasDoorOn reports whether any door sits on wall w.
func (r PlacedRoom) HasDoorOn(w Wall) bool {
	for _, d := range r.Doors {
		if d.Wall == w {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so later stages never alias earlier slices.
func (r PlacedRoom) Clone() PlacedRoom {
	cp := r
	cp.Doors = make([]Opening, len(r.Doors))
	copy(cp.Doors, r.Doors)
	cp.Windows = make([]Opening, len(r.Windows))
	copy(cp.Windows, r.Windows)
	return cp
}

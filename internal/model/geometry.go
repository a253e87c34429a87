package model

// Material describes the surface look of a floor or wall primitive.
type Material struct {
	Name      string  `json:"name" toml:"name" yaml:"name"`
	Color     string  `json:"color" toml:"color" yaml:"color"` // #RRGGBB
	Roughness float64 `json:"roughness" toml:"roughness" yaml:"roughness"`
	Metalness float64 `json:"metalness" toml:"metalness" yaml:"metalness"`
}

// DefaultFloorMaterials returns the floor finish per room type.
func DefaultFloorMaterials() map[RoomType]Material {
	return map[RoomType]Material{
		LivingRoom: {Name: "wood-tan", Color: "#D2B48C", Roughness: 0.8, Metalness: 0.1},
		Bedroom:    {Name: "carpet-beige", Color: "#EADAC4", Roughness: 0.8, Metalness: 0.1},
		Kitchen:    {Name: "tile-silver", Color: "#BFC0C0", Roughness: 0.8, Metalness: 0.1},
		Bathroom:   {Name: "tile-gray", Color: "#A2A2A2", Roughness: 0.8, Metalness: 0.1},
		DiningRoom: {Name: "wood-bisque", Color: "#C8A97E", Roughness: 0.8, Metalness: 0.1},
	}
}

// FallbackFloorMaterial is used for room types missing from Settings.FloorMaterials.
var FallbackFloorMaterial = Material{Name: "floor", Color: "#F0F0F0", Roughness: 0.8, Metalness: 0.1}

// Vec3 is a point in renderer space: X east, Y up, Z along the envelope depth.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoxKind tags what a box primitive represents.
type BoxKind string

const (
	BoxWall   BoxKind = "wall"   // Solid run between openings
	BoxSill   BoxKind = "sill"   // Below a window
	BoxLintel BoxKind = "lintel" // Above a door or window
)

// Box is an axis-aligned 3D box. Width runs along X, Height along Y, Depth along Z.
type Box struct {
	Kind     BoxKind  `json:"kind"`
	RoomID   string   `json:"room_id"`
	Wall     Wall     `json:"wall"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Depth    float64  `json:"depth"`
	Center   Vec3     `json:"center"`
	Material Material `json:"material"`
}

// Volume returns the box volume.
func (b Box) Volume() float64 {
	return b.Width * b.Height * b.Depth
}

// Length returns the extent of the box along its wall.
func (b Box) Length() float64 {
	if b.Wall.Horizontal() {
		return b.Width
	}
	return b.Depth
}

// FloorSlab is a flat rectangle at elevation zero under one room.
type FloorSlab struct {
	RoomID   string   `json:"room_id"`
	Type     RoomType `json:"type"`
	Width    float64  `json:"width"`
	Depth    float64  `json:"depth"`
	Center   Vec3     `json:"center"`
	Material Material `json:"material"`
}

// Area returns the slab area.
func (f FloorSlab) Area() float64 {
	return f.Width * f.Depth
}

// Geometry is the flat primitive list handed to the renderer or exporter.
type Geometry struct {
	Floors []FloorSlab `json:"floors"`
	Boxes  []Box       `json:"boxes"`
}

// Empty reports whether the geometry has no primitives at all.
func (g Geometry) Empty() bool {
	return len(g.Floors) == 0 && len(g.Boxes) == 0
}

// BoxesFor returns the boxes belonging to one room.
func (g Geometry) BoxesFor(roomID string) []Box {
	var out []Box
	for _, b := range g.Boxes {
		if b.RoomID == roomID {
			out = append(out, b)
		}
	}
	return out
}

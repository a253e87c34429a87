package model

// Status summarizes how much of a request made it into the layout.
type Status string

const (
	StatusComplete Status = "complete" // Every requested room was placed
	StatusPartial  Status = "partial"  // Some rooms could not be packed
	StatusEmpty    Status = "empty"    // Nothing was requested
	StatusFailed   Status = "failed"   // Rooms were requested but none fit
)

// Result holds the full output of one generation run.
type Result struct {
	Status    Status       `json:"status"`
	Envelope  Envelope     `json:"envelope"`
	Requested int          `json:"requested"`
	Rooms     []PlacedRoom `json:"rooms"`
	Unplaced  []RoomSpec   `json:"unplaced"`
	Leftover  []FreeRect   `json:"leftover"`
	Geometry  Geometry     `json:"geometry"`
}

// HasLayout reports whether at least one room was placed.
func (r Result) HasLayout() bool {
	return len(r.Rooms) > 0
}

// PlacedCount returns the number of rooms in the layout.
func (r Result) PlacedCount() int {
	return len(r.Rooms)
}

// PlacedArea returns the summed footprint of all placed rooms.
func (r Result) PlacedArea() float64 {
	var total float64
	for _, room := range r.Rooms {
		total += room.Area()
	}
	return total
}

// Coverage returns the share of the envelope covered by rooms, in percent.
func (r Result) Coverage() float64 {
	ea := r.Envelope.Area()
	if ea == 0 {
		return 0
	}
	return (r.PlacedArea() / ea) * 100.0
}

// DoorCount returns the number of door openings, counting each side of a shared door once.
func (r Result) DoorCount() int {
	n := 0
	for _, room := range r.Rooms {
		n += len(room.Doors)
	}
	return n / 2
}

// WindowCount returns the number of windows across all rooms.
func (r Result) WindowCount() int {
	n := 0
	for _, room := range r.Rooms {
		n += len(room.Windows)
	}
	return n
}

// FindRoom returns a pointer to the room with the given ID, or nil.
func (r *Result) FindRoom(id string) *PlacedRoom {
	for i := range r.Rooms {
		if r.Rooms[i].ID == id {
			return &r.Rooms[i]
		}
	}
	return nil
}

// StatusFor derives the run status from the requested and placed room counts.
func StatusFor(requested, placed int) Status {
	switch {
	case requested == 0:
		return StatusEmpty
	case placed == 0:
		return StatusFailed
	case placed < requested:
		return StatusPartial
	default:
		return StatusComplete
	}
}

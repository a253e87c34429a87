package model

// Project bundles a room request with its settings and the last generated layout.
type Project struct {
	Name     string      `json:"name"`
	Request  RoomRequest `json:"request"`
	Settings Settings    `json:"settings"`
	Result   *Result     `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Request:  RoomRequest{RoomCounts: map[RoomType]int{}},
		Settings: DefaultSettings(),
	}
}

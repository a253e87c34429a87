package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// ProjectExt is the file extension used for saved projects.
const ProjectExt = ".planforge"

// SaveProject writes p as JSON, including its last generated layout if any.
func SaveProject(path string, p model.Project) error {
	if err := writeJSONFile(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project file. Maps left null in the file are
// initialised so the request can be edited straight away.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if p.Request.RoomCounts == nil {
		p.Request.RoomCounts = map[model.RoomType]int{}
	}
	return p, nil
}

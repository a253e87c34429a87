package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// LayoutFormatVersion is bumped when the JSON layout document changes shape.
const LayoutFormatVersion = "1.0.0"

// LayoutDocument is the JSON payload consumed by the 3D viewer.
type LayoutDocument struct {
	Version string            `json:"version"`
	Result  model.Result      `json:"result"`
	Labels  []model.RoomLabel `json:"labels"`
}

// ExportJSON writes result as an indented LayoutDocument. Unlike the other
// exports an empty or failed layout is written too, so callers can report
// the status.
func ExportJSON(w io.Writer, result model.Result) error {
	doc := LayoutDocument{
		Version: LayoutFormatVersion,
		Result:  result,
		Labels:  make([]model.RoomLabel, 0, len(result.Rooms)),
	}
	for _, r := range result.Rooms {
		doc.Labels = append(doc.Labels, model.LabelFor(r))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return nil
}

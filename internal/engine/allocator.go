package engine

import (
	"fmt"
	"math"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// Allocate expands a room request into one spec per room instance.
//
// Each instance gets its type's size hint, or its share of the total split
// evenly over the count, raised to the type minimum. When the sum drifts from
// the total by more than s.NormalizeTolerance every area is scaled to match.
// Specs come out in model.AllRoomTypes order, then by instance index.
func Allocate(req model.RoomRequest, s model.Settings) []model.RoomSpec {
	specs := []model.RoomSpec{}
	var sum float64

	for _, rt := range model.AllRoomTypes() {
		count := req.RoomCounts[rt]
		if count <= 0 {
			continue
		}
		area, ok := req.RoomSizeHints[rt]
		if !ok || area <= 0 {
			area = s.AreaShares[rt] * req.TotalArea / float64(count)
		}
		area = math.Max(area, s.MinRoomAreas[rt])

		for i := 0; i < count; i++ {
			specs = append(specs, model.RoomSpec{
				ID:         fmt.Sprintf("%s-%d", rt, i),
				Type:       rt,
				TargetArea: area,
			})
			sum += area
		}
	}

	if sum == 0 {
		return []model.RoomSpec{}
	}
	if math.Abs(sum-req.TotalArea) > s.NormalizeTolerance {
		scale := req.TotalArea / sum
		for i := range specs {
			specs[i].TargetArea *= scale
		}
	}
	return specs
}

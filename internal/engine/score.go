package engine

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// score ranks a legal footprint. Each wall closer than TouchTolerance adds
// AdjacencyWeight, and the distance to the nearest wall is subtracted, so
// touching more walls always wins and proximity only breaks ties.
func score(rect orb.Ring, walls []geom.Segment, settings model.Settings) (value float64, touching int) {
	if len(walls) == 0 {
		return 0, 0
	}
	nearest := math.Inf(1)
	for _, w := range walls {
		d := geom.Distance(rect, w)
		nearest = math.Min(nearest, d)
		if d < settings.TouchTolerance {
			touching++
		}
	}
	return float64(touching)*settings.AdjacencyWeight - nearest, touching
}

package engine

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

func TestWallStride(t *testing.T) {
	s := model.DefaultSettings()
	assert.Equal(t, 100.0, wallStride(10000, s), "capped on long walls")
	assert.Equal(t, 45.0, wallStride(900, s), "length/20 on short walls")
	assert.Equal(t, 1.0, wallStride(10, s), "never below the minimum")
}

func TestWallCandidates_FlushAndInside(t *testing.T) {
	s := model.DefaultSettings()
	room := rectRoom(1000, 600, nil)
	item := model.NewItem("shelf", 200, 100)

	cands := WallCandidates(room, item, s)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		rect := geom.Rectangle(c.Center, item.Length, item.Width, c.Rotation.Rotated())
		require.True(t, geom.Contains(room.Boundary, rect), "candidate %v outside room", c)

		_, touching := score(rect, room.Walls(), s)
		assert.GreaterOrEqual(t, touching, 1, "candidate %v not flush", c)
		assert.Equal(t, SourceWall, c.Source)
	}
}

func TestWallCandidates_SkipsOverhang(t *testing.T) {
	s := model.DefaultSettings()
	room := rectRoom(1000, 600, nil)
	item := model.NewItem("shelf", 200, 100)

	cands := WallCandidates(room, item, s)
	// Bottom wall: stride 50, unrotated the along-wall half extent is 100, so
	// the first sample kept is at d=100.
	first := cands[0]
	assert.Equal(t, orb.Point{50, 100}, first.Center, "rotated first: half extent 50")
	assert.Equal(t, model.Rot90, first.Rotation)

	var bottomRot0 []Candidate
	for _, c := range cands {
		if c.Rotation == model.Rot0 && c.Center[1] == 50 {
			bottomRot0 = append(bottomRot0, c)
		}
	}
	require.NotEmpty(t, bottomRot0)
	assert.Equal(t, orb.Point{100, 50}, bottomRot0[0].Center)
	assert.Equal(t, orb.Point{900, 50}, bottomRot0[len(bottomRot0)-1].Center)
}

func TestWallCandidates_ClockwiseBoundary(t *testing.T) {
	s := model.DefaultSettings()
	ccw := rectRoom(1000, 600, nil)
	cw := model.NewRoom([]orb.Point{{0, 0}, {0, 600}, {1000, 600}, {1000, 0}}, nil)
	item := model.NewItem("shelf", 200, 100)

	centers := func(room model.Room) map[orb.Point]bool {
		set := make(map[orb.Point]bool)
		for _, c := range WallCandidates(room, item, s) {
			rect := geom.Rectangle(c.Center, item.Length, item.Width, c.Rotation.Rotated())
			require.True(t, geom.Contains(room.Boundary, rect))
			set[c.Center] = true
		}
		return set
	}
	assert.Equal(t, centers(ccw), centers(cw))
}

func TestWallCandidates_DiagonalWall(t *testing.T) {
	s := model.DefaultSettings()
	room := model.NewRoom([]orb.Point{{0, 0}, {4000, 0}, {0, 4000}}, nil)
	item := model.NewItem("shelf", 400, 200)

	var onHypotenuse int
	for _, c := range WallCandidates(room, item, s) {
		// Bottom and left wall candidates stay within 200 of their wall.
		if c.Center[0] > 300 && c.Center[1] > 300 {
			onHypotenuse++
			rect := geom.Rectangle(c.Center, item.Length, item.Width, c.Rotation.Rotated())
			hyp := room.Walls()[1]
			assert.InDelta(t, 0, geom.Distance(rect, hyp), 1e-6, "corner of footprint touches the diagonal")
		}
	}
	assert.Positive(t, onHypotenuse)
}

func TestGridCandidates_OrderAndCount(t *testing.T) {
	s := model.DefaultSettings()
	cands := GridCandidates(rectRoom(1000, 600, nil), s)

	// x in {0..800}, y in {0, 200, 400}, two rotations each.
	require.Len(t, cands, 30)
	assert.Equal(t, Candidate{Center: orb.Point{0, 0}, Rotation: model.Rot0, Source: SourceGrid}, cands[0])
	assert.Equal(t, Candidate{Center: orb.Point{0, 0}, Rotation: model.Rot90, Source: SourceGrid}, cands[1])
	assert.Equal(t, orb.Point{0, 200}, cands[2].Center)
	assert.Equal(t, orb.Point{800, 400}, cands[len(cands)-1].Center)
}

func TestGridCandidates_SkipsPointsOutsideLShape(t *testing.T) {
	s := model.DefaultSettings()
	s.GridSpacing = 1000
	room := model.NewRoom([]orb.Point{{0, 0}, {4000, 0}, {4000, 2000}, {2000, 2000}, {2000, 4000}, {0, 4000}}, nil)

	for _, c := range GridCandidates(room, s) {
		assert.True(t, geom.ContainsPoint(room.Boundary, c.Center), "%v", c.Center)
		assert.False(t, c.Center[0] > 2000 && c.Center[1] > 2000, "%v in the notch", c.Center)
	}
}

func TestCandidates_WallBeforeGrid(t *testing.T) {
	s := model.DefaultSettings()
	cands := Candidates(rectRoom(1000, 600, nil), model.NewItem("shelf", 200, 100), s)
	seenGrid := false
	for _, c := range cands {
		if c.Source == SourceGrid {
			seenGrid = true
		} else {
			assert.False(t, seenGrid, "wall candidate after grid candidate")
		}
	}
	assert.True(t, seenGrid)
}

package engine

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

func kitchenItems() []model.Item {
	return []model.Item{
		model.NewItem("shelf_b", 1200, 400),
		model.NewItem("overShelf_1", 1000, 300),
		model.NewItem("fridge_1", 800, 700),
		model.NewItem("shelf_a", 1200, 400),
		model.NewItem("iceMaker_1", 500, 500),
		model.NewItem("fridge_2", 800, 700),
		model.NewItem("sofa", 1800, 800),
	}
}

func kitchenRoom() model.Room {
	return rectRoom(6000, 4000, door(2000, 0, 2900, 0, true))
}

// assertLayoutInvariants checks every committed placement against the room,
// the door zone, the other footprints and the clearance zones of the
// clearance items committed before it.
func assertLayoutInvariants(t *testing.T, room model.Room, res model.Result, s model.Settings) {
	t.Helper()
	zone := DoorZone(room, s)
	for i, p := range res.Placements {
		rect := p.Footprint()
		assert.True(t, geom.Contains(room.Boundary, rect), "%s outside the room", p.Item.Name)
		if zone != nil {
			assert.False(t, geom.Intersects(rect, zone), "%s blocks the door", p.Item.Name)
		}
		for j := 0; j < i; j++ {
			earlier := res.Placements[j]
			assert.False(t, geom.Intersects(rect, earlier.Footprint()), "%s overlaps %s", p.Item.Name, earlier.Item.Name)
			if cz := ClearanceZone(earlier, s); cz != nil {
				assert.False(t, geom.Intersects(rect, cz), "%s in clearance of %s", p.Item.Name, earlier.Item.Name)
			}
		}
	}
}

func TestPriorityOrder_RankThenArea(t *testing.T) {
	ordered := PriorityOrder(kitchenItems())
	names := make([]string, len(ordered))
	for i, it := range ordered {
		names[i] = it.Name
	}
	assert.Equal(t, []string{"fridge_1", "fridge_2", "iceMaker_1", "shelf_b", "shelf_a", "overShelf_1", "sofa"}, names)
}

func TestPriorityOrder_DoesNotMutateInput(t *testing.T) {
	items := kitchenItems()
	first := items[0].Name
	PriorityOrder(items)
	assert.Equal(t, first, items[0].Name)
}

func TestSolve_ScenarioA_SingleItemHugsWalls(t *testing.T) {
	room := rectRoom(10000, 8000, nil)
	res := New(model.DefaultSettings()).Solve(room, []model.Item{model.NewItem("table", 2000, 1000)})

	require.True(t, res.Feasible)
	require.Len(t, res.Placements, 1)
	assert.Empty(t, res.Message)
	assert.Equal(t, -1, res.FailedIndex)

	_, touching := score(res.Placements[0].Footprint(), room.Walls(), model.DefaultSettings())
	assert.GreaterOrEqual(t, touching, 1)
	assert.Equal(t, 1, res.Stats.WallTouching)

	// The first corner sample along the bottom wall is the rotated one at d=500.
	assert.Equal(t, orb.Point{500, 1000}, res.Placements[0].Center)
	assert.Equal(t, model.Rot90, res.Placements[0].Rotation)
	assert.InDelta(t, 2e6, res.Stats.OccupiedArea, 1e-9)
	assert.InDelta(t, 80e6, res.Stats.RoomArea, 1e-9)
}

func TestSolve_ScenarioB_RoomTooSmall(t *testing.T) {
	room := rectRoom(500, 500, nil)
	items := []model.Item{model.NewItem("shelf_1", 2000, 1000), model.NewItem("shelf_2", 1500, 900)}
	res := New(model.DefaultSettings()).Solve(room, items)

	assert.False(t, res.Feasible)
	assert.Empty(t, res.Placements)
	assert.Equal(t, 0, res.FailedIndex)
	assert.Equal(t, "shelf_1", res.FailedItem)
	assert.Equal(t, "cannot place item: shelf_1", res.Message)
	assert.Positive(t, res.Stats.Rejections.Boundary)
	assert.Equal(t, res.Stats.Candidates, res.Stats.Rejections.Total())
}

func TestSolve_ScenarioC_InwardDoorSquareIsAvoided(t *testing.T) {
	// The door spans the whole bottom wall, so the only legal spots are above its swing.
	room := rectRoom(900, 2000, door(0, 0, 900, 0, true))
	res := New(model.DefaultSettings()).Solve(room, []model.Item{model.NewItem("shelf", 900, 1000)})

	require.True(t, res.Feasible)
	require.Len(t, res.Placements, 1)
	p := res.Placements[0]
	assert.False(t, geom.Intersects(p.Footprint(), res.DoorZone))
	assert.Equal(t, orb.Point{450, 1500}, p.Center)
	assert.Equal(t, model.Rot0, p.Rotation)
	assert.Positive(t, res.Stats.Rejections.Door)
}

func TestSolve_ScenarioC_InfeasibleWhenOnlyTheSwingFits(t *testing.T) {
	room := rectRoom(900, 1200, door(0, 0, 900, 0, true))
	res := New(model.DefaultSettings()).Solve(room, []model.Item{model.NewItem("shelf", 900, 800)})

	assert.False(t, res.Feasible)
	assert.Empty(t, res.Placements)
	assert.Positive(t, res.Stats.Rejections.Door)
}

func TestSolve_OutwardDoorKeepsOpeningClear(t *testing.T) {
	room := rectRoom(3000, 2000, door(0, 0, 3000, 0, false))
	res := New(model.DefaultSettings()).Solve(room, []model.Item{model.NewItem("shelf", 3000, 400)})

	require.True(t, res.Feasible)
	b := geom.Bound(res.Placements[0].Footprint())
	assert.GreaterOrEqual(t, b.Min[1], 100.0)
	assertLayoutInvariants(t, room, res, model.DefaultSettings())
}

func TestSolve_ScenarioD_ClearanceZoneIsOccupied(t *testing.T) {
	s := model.DefaultSettings()
	room := rectRoom(4000, 3000, nil)
	state := newLayout(room, s)

	first := model.Placement{Item: model.NewItem("fridge_1", 800, 700), Center: orb.Point{400, 350}, Rotation: model.Rot0}
	state.commit(first, s)
	require.Len(t, state.clearance, 1)

	// Flush against the first fridge, inside its clearance zone only.
	rect := geom.Rectangle(orb.Point{1200, 350}, 800, 700, false)
	require.False(t, geom.Intersects(rect, first.Footprint()))
	require.True(t, geom.Contains(room.Boundary, rect))
	assert.Equal(t, ReasonClearance, state.check(rect))

	// Past the zone the same footprint is fine.
	assert.Equal(t, ReasonNone, state.check(geom.Rectangle(orb.Point{1900, 350}, 800, 700, false)))
}

func TestSolve_ScenarioD_SecondFridgeAvoidsFirstZone(t *testing.T) {
	s := model.DefaultSettings()
	room := rectRoom(4000, 3000, nil)
	items := []model.Item{model.NewItem("fridge_1", 800, 700), model.NewItem("fridge_2", 800, 700)}
	res := New(s).Solve(room, items)

	require.True(t, res.Feasible)
	require.Len(t, res.ClearanceZones, 2)
	assert.False(t, geom.Intersects(res.Placements[1].Footprint(), res.ClearanceZones[0]))
	assertLayoutInvariants(t, room, res, s)
}

func TestSolve_MixedRoomInvariants(t *testing.T) {
	s := model.DefaultSettings()
	room := kitchenRoom()
	res := New(s).Solve(room, kitchenItems())

	require.True(t, res.Feasible, res.Message)
	require.Len(t, res.Placements, len(kitchenItems()))
	assertLayoutInvariants(t, room, res, s)
	assert.Len(t, res.ClearanceZones, 2)
	assert.Equal(t, len(res.Placements), res.Stats.WallTouching)
}

func TestSolve_PriorityInvariant(t *testing.T) {
	res := New(model.DefaultSettings()).Solve(kitchenRoom(), kitchenItems())
	require.True(t, res.Feasible)

	for i := 1; i < len(res.Placements); i++ {
		prev := res.Placements[i-1].Item.Category.Traits().Rank
		cur := res.Placements[i].Item.Category.Traits().Rank
		assert.LessOrEqual(t, prev, cur)
	}
	assert.Equal(t, model.CategoryFridge, res.Placements[0].Item.Category)
	assert.Equal(t, model.CategoryFridge, res.Placements[1].Item.Category)
}

func TestSolve_Deterministic(t *testing.T) {
	items := kitchenItems()
	room := kitchenRoom()

	first := New(model.DefaultSettings()).Solve(room, items)
	second := New(model.DefaultSettings()).Solve(room, items)
	assert.Equal(t, first.Placements, second.Placements)
	assert.Equal(t, first.Stats, second.Stats)

	parallel := model.DefaultSettings()
	parallel.Workers = 4
	third := New(parallel).Solve(room, items)
	assert.Equal(t, first.Placements, third.Placements)
	assert.Equal(t, first.Stats, third.Stats)
}

func TestSolve_LShapedRoom(t *testing.T) {
	s := model.DefaultSettings()
	room := model.NewRoom([]orb.Point{{0, 0}, {6000, 0}, {6000, 3000}, {3000, 3000}, {3000, 6000}, {0, 6000}}, nil)
	items := []model.Item{
		model.NewItem("shelf_1", 2500, 600),
		model.NewItem("shelf_2", 2500, 600),
		model.NewItem("shelf_3", 2500, 600),
		model.NewItem("shelf_4", 2500, 600),
		model.NewItem("shelf_5", 2500, 600),
	}
	res := New(s).Solve(room, items)

	require.True(t, res.Feasible, res.Message)
	assertLayoutInvariants(t, room, res, s)
}

func TestSolve_ClockwiseBoundary(t *testing.T) {
	room := model.NewRoom([]orb.Point{{0, 0}, {0, 8000}, {10000, 8000}, {10000, 0}}, nil)
	res := New(model.DefaultSettings()).Solve(room, []model.Item{model.NewItem("table", 2000, 1000)})

	require.True(t, res.Feasible)
	assert.Equal(t, 1, res.Stats.WallTouching)
	assertLayoutInvariants(t, room, res, model.DefaultSettings())
}

func TestSolve_PartialPrefixOnFailure(t *testing.T) {
	room := rectRoom(2000, 1000, nil)
	items := []model.Item{
		model.NewItem("shelf_1", 2000, 500),
		model.NewItem("shelf_2", 2000, 500),
		model.NewItem("shelf_3", 2000, 500),
	}
	res := New(model.DefaultSettings()).Solve(room, items)

	assert.False(t, res.Feasible)
	assert.Len(t, res.Placements, 2)
	assert.Equal(t, 2, res.FailedIndex)
	assert.Equal(t, "shelf_3", res.FailedItem)
	assert.Positive(t, res.Stats.Rejections.Occupied)
}

func TestSolve_NoItems(t *testing.T) {
	res := New(model.DefaultSettings()).Solve(rectRoom(1000, 1000, nil), nil)
	assert.True(t, res.Feasible)
	assert.Empty(t, res.Placements)
}

func TestNew_FillsZeroSettings(t *testing.T) {
	s := New(model.Settings{GridSpacing: 50}, WithLogger(nil))
	assert.Equal(t, 50.0, s.Settings.GridSpacing)
	assert.Equal(t, model.DefaultSettings().AdjacencyWeight, s.Settings.AdjacencyWeight)
	assert.NotNil(t, s.logger)
}

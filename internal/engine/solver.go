package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// Solver runs the greedy placement algorithm.
type Solver struct {
	Settings model.Settings
	logger   *log.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger routes per-item progress to l. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(settings model.Settings, opts ...Option) *Solver {
	s := &Solver{
		Settings: settings.WithDefaults(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PriorityOrder returns items sorted by category rank, then by decreasing
// area. The sort is stable, so input order decides remaining ties.
func PriorityOrder(items []model.Item) []model.Item {
	ordered := make([]model.Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Category.Traits().Rank, ordered[j].Category.Traits().Rank
		if ri != rj {
			return ri < rj
		}
		return ordered[i].Area() > ordered[j].Area()
	})
	return ordered
}

// evaluation is the verdict on one candidate.
type evaluation struct {
	reason   Reason
	score    float64
	touching int
}

// Solve places items one at a time in priority order. Each item takes the
// highest scoring legal candidate, with the first one seen winning ties.
// Placement stops at the first item that has no legal candidate; the result
// then reports Feasible=false along with the placements made so far.
func (s *Solver) Solve(room model.Room, items []model.Item) model.Result {
	ordered := PriorityOrder(items)
	state := newLayout(room, s.Settings)
	walls := room.Walls()

	result := model.Result{
		Placements:  make([]model.Placement, 0, len(ordered)),
		FailedIndex: -1,
		DoorZone:    state.doorZone,
		Stats:       model.Stats{RoomArea: room.Area()},
	}

	for i, item := range ordered {
		s.logger.Debug("placing", "item", item.Name, "category", item.Category, "length", item.Length, "width", item.Width)

		candidates := Candidates(room, item, s.Settings)
		evals := s.evaluate(state, walls, item, candidates)
		result.Stats.Candidates += len(candidates)

		best := -1
		var rejected model.Rejections
		for j, e := range evals {
			if e.reason != ReasonNone {
				tally(&rejected, e.reason)
				continue
			}
			if best < 0 || e.score > evals[best].score {
				best = j
			}
		}
		result.Stats.Rejections.Add(rejected)

		if best < 0 {
			s.logger.Warn("infeasible", "item", item.Name, "candidates", len(candidates),
				"boundary", rejected.Boundary, "door", rejected.Door,
				"occupied", rejected.Occupied, "clearance", rejected.Clearance)
			result.Message = fmt.Sprintf("cannot place item: %s", item.Name)
			result.FailedIndex = i
			result.FailedItem = item.Name
			result.ClearanceZones = state.clearance
			return result
		}

		c := candidates[best]
		p := model.Placement{Item: item, Center: c.Center, Rotation: c.Rotation}
		state.commit(p, s.Settings)
		result.Placements = append(result.Placements, p)
		result.Stats.OccupiedArea += item.Area()
		if evals[best].touching > 0 {
			result.Stats.WallTouching++
		}

		s.logger.Debug("placed", "item", item.Name, "x", c.Center[0], "y", c.Center[1],
			"rotation", int(c.Rotation), "score", evals[best].score, "source", c.Source)
	}

	result.Feasible = true
	result.ClearanceZones = state.clearance
	return result
}

// evaluate validates and scores every candidate. With more than one worker
// the candidates are split into contiguous chunks; each verdict is written
// to its candidate's index, so selection sees the same slice as a
// sequential run.
func (s *Solver) evaluate(state *layout, walls []geom.Segment, item model.Item, candidates []Candidate) []evaluation {
	evals := make([]evaluation, len(candidates))
	eval := func(i int) {
		c := candidates[i]
		rect := geom.Rectangle(c.Center, item.Length, item.Width, c.Rotation.Rotated())
		if r := state.check(rect); r != ReasonNone {
			evals[i] = evaluation{reason: r}
			return
		}
		v, touching := score(rect, walls, s.Settings)
		evals[i] = evaluation{score: v, touching: touching}
	}

	workers := s.Settings.Workers
	if workers <= 1 || len(candidates) < 2*workers {
		for i := range candidates {
			eval(i)
		}
		return evals
	}

	chunk := (len(candidates) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				eval(i)
			}
			return nil
		})
	}
	_ = g.Wait()
	return evals
}

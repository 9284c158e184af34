package model

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/geom"
)

// ItemSpec is one entry of a scenario's item table.
type ItemSpec struct {
	Name   string
	Length float64
	Width  float64
}

// ItemSpecs is the "algoToPlace" object: item name to [length, width].
// Key order in the document is preserved, since it decides the order of
// equally ranked items of equal area.
type ItemSpecs []ItemSpec

func (s ItemSpecs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, spec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(spec.Name)
		if err != nil {
			return nil, err
		}
		dims, err := json.Marshal([2]float64{spec.Length, spec.Width})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(dims)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *ItemSpecs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return WrapError(ErrCodeInvalidFormat, err, "reading algoToPlace")
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return NewError(ErrCodeInvalidFormat, "algoToPlace must be an object of name: [length, width]")
	}

	var specs ItemSpecs
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return WrapError(ErrCodeInvalidFormat, err, "reading algoToPlace key")
		}
		name, _ := keyTok.(string)

		var dims []float64
		if err := dec.Decode(&dims); err != nil {
			return WrapError(ErrCodeInvalidFormat, err, "item %q", name)
		}
		if len(dims) != 2 {
			return NewError(ErrCodeInvalidFormat, "item %q: expected [length, width], got %d values", name, len(dims))
		}

		spec := ItemSpec{Name: name, Length: dims[0], Width: dims[1]}
		// A repeated key keeps its first position and its last value.
		if i, ok := index[name]; ok {
			specs[i] = spec
			continue
		}
		index[name] = len(specs)
		specs = append(specs, spec)
	}
	if _, err := dec.Token(); err != nil {
		return WrapError(ErrCodeInvalidFormat, err, "reading algoToPlace")
	}
	*s = specs
	return nil
}

// Scenario is the input document of a solve.
type Scenario struct {
	Boundary     []orb.Point `json:"boundary"`
	Door         []orb.Point `json:"door"`
	IsOpenInward bool        `json:"isOpenInward"`
	AlgoToPlace  ItemSpecs   `json:"algoToPlace"`
}

// NewScenario builds the input document for a room and item list.
func NewScenario(room Room, items []Item) Scenario {
	sc := Scenario{AlgoToPlace: make(ItemSpecs, 0, len(items))}
	if n := len(room.Boundary); n > 1 && room.Boundary[0] == room.Boundary[n-1] {
		sc.Boundary = append([]orb.Point(nil), room.Boundary[:n-1]...)
	} else {
		sc.Boundary = append([]orb.Point(nil), room.Boundary...)
	}
	if !room.Door.IsZero() {
		sc.Door = []orb.Point{room.Door.Segment.A, room.Door.Segment.B}
		sc.IsOpenInward = room.Door.OpensInward
	}
	for _, it := range items {
		sc.AlgoToPlace = append(sc.AlgoToPlace, ItemSpec{Name: it.Name, Length: it.Length, Width: it.Width})
	}
	return sc
}

// Room returns the room described by the scenario.
func (sc Scenario) Room() Room {
	var door *Door
	if len(sc.Door) >= 2 {
		door = &Door{
			Segment:     geom.Segment{A: sc.Door[0], B: sc.Door[1]},
			OpensInward: sc.IsOpenInward,
		}
	}
	return NewRoom(sc.Boundary, door)
}

// Items returns the items in document order, categories inferred from names.
func (sc Scenario) Items() []Item {
	items := make([]Item, 0, len(sc.AlgoToPlace))
	for _, spec := range sc.AlgoToPlace {
		items = append(items, NewItem(spec.Name, spec.Length, spec.Width))
	}
	return items
}

// Validate rejects input the solver cannot work with.
func (sc Scenario) Validate() error {
	ring := geom.Close(sc.Boundary)
	if len(ring) < 4 {
		return NewError(ErrCodeInvalidGeometry, "boundary needs at least 3 vertices, got %d", len(sc.Boundary))
	}
	for i, p := range sc.Boundary {
		if !finite(p) {
			return NewError(ErrCodeInvalidGeometry, "boundary vertex %d is not a finite number", i)
		}
	}
	if geom.Area(ring) < geom.Epsilon {
		return NewError(ErrCodeInvalidGeometry, "boundary encloses no area")
	}

	switch len(sc.Door) {
	case 0:
	case 2:
		if !finite(sc.Door[0]) || !finite(sc.Door[1]) {
			return NewError(ErrCodeInvalidGeometry, "door endpoint is not a finite number")
		}
		if (geom.Segment{A: sc.Door[0], B: sc.Door[1]}).Length() < geom.Epsilon {
			return NewError(ErrCodeInvalidGeometry, "door has zero length")
		}
	default:
		return NewError(ErrCodeInvalidGeometry, "door needs exactly 2 points, got %d", len(sc.Door))
	}

	for _, spec := range sc.AlgoToPlace {
		if spec.Name == "" {
			return NewError(ErrCodeInvalidInput, "item with empty name")
		}
		if !(spec.Length > 0) || !(spec.Width > 0) || math.IsInf(spec.Length, 0) || math.IsInf(spec.Width, 0) {
			return NewError(ErrCodeInvalidInput, "item %q: dimensions must be positive, got %gx%g", spec.Name, spec.Length, spec.Width)
		}
	}
	return nil
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}

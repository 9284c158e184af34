package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/geom"
)

// Category classifies an item and decides its placement priority.
type Category int

const (
	CategoryFridge    Category = iota // Needs a door-opening clearance zone
	CategoryIceMaker                  // Placed right after fridges
	CategoryShelf                     // Floor-standing shelf
	CategoryOverShelf                 // Floating shelf mounted above floor level
	CategoryOther                     // Anything not recognised by name
)

// Traits are the per-category placement rules.
type Traits struct {
	Rank      int  // Lower ranks are placed first
	Clearance bool // Whether a clearance zone is reserved in front of the item
}

var categoryTraits = [...]Traits{
	CategoryFridge:    {Rank: 0, Clearance: true},
	CategoryIceMaker:  {Rank: 1},
	CategoryShelf:     {Rank: 2},
	CategoryOverShelf: {Rank: 3},
	CategoryOther:     {Rank: 4},
}

var categoryNames = [...]string{
	CategoryFridge:    "fridge",
	CategoryIceMaker:  "iceMaker",
	CategoryShelf:     "shelf",
	CategoryOverShelf: "overShelf",
	CategoryOther:     "other",
}

// Categories lists every category in priority order.
var Categories = []Category{CategoryFridge, CategoryIceMaker, CategoryShelf, CategoryOverShelf, CategoryOther}

func (c Category) valid() bool {
	return c >= CategoryFridge && c <= CategoryOther
}

func (c Category) String() string {
	if !c.valid() {
		return categoryNames[CategoryOther]
	}
	return categoryNames[c]
}

// Traits returns the placement rules for the category.
func (c Category) Traits() Traits {
	if !c.valid() {
		return categoryTraits[CategoryOther]
	}
	return categoryTraits[c]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory resolves a canonical category name (case-insensitive).
// "unknown" is accepted as an alias of "other".
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, categoryNames[c]) {
			return c, nil
		}
	}
	if strings.EqualFold(s, "unknown") || s == "" {
		return CategoryOther, nil
	}
	return CategoryOther, NewError(ErrCodeInvalidInput, "unknown category %q", s)
}

// CategoryFromName infers the category from the item name prefix. Matching
// is case-sensitive: "Fridge1" is CategoryOther.
func CategoryFromName(name string) Category {
	switch {
	case strings.HasPrefix(name, "fridge"):
		return CategoryFridge
	case strings.HasPrefix(name, "iceMaker"):
		return CategoryIceMaker
	case strings.HasPrefix(name, "overShelf"):
		return CategoryOverShelf
	case strings.HasPrefix(name, "shelf"):
		return CategoryShelf
	default:
		return CategoryOther
	}
}

// Item is a rectangular appliance or fixture to place.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Length   float64  `json:"length"` // mm, along x when unrotated
	Width    float64  `json:"width"`  // mm, along y when unrotated
	Category Category `json:"category"`
}

// NewItem creates an item and infers its category from the name.
func NewItem(name string, length, width float64) Item {
	return NewItemWithCategory(name, length, width, CategoryFromName(name))
}

// NewItemWithCategory creates an item with an explicit category.
func NewItemWithCategory(name string, length, width float64, category Category) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Width:    width,
		Category: category,
	}
}

// Area returns the item's footprint area in mm².
func (it Item) Area() float64 {
	return it.Length * it.Width
}

// Rotation is the item orientation in degrees.
type Rotation int

const (
	Rot0  Rotation = 0  // Length along x
	Rot90 Rotation = 90 // Length along y
)

// Rotations lists the orientations in the order they are tried.
var Rotations = []Rotation{Rot0, Rot90}

// Rotated reports whether the extents are swapped.
func (r Rotation) Rotated() bool {
	return r == Rot90
}

// Extents returns the x and y size of the item's footprint at this rotation.
func (r Rotation) Extents(it Item) (x, y float64) {
	if r.Rotated() {
		return it.Width, it.Length
	}
	return it.Length, it.Width
}

// Placement is an item committed at a center point and rotation.
type Placement struct {
	Item     Item
	Center   orb.Point
	Rotation Rotation
}

// Footprint returns the rectangle the placed item occupies.
func (p Placement) Footprint() orb.Ring {
	return geom.Rectangle(p.Center, p.Item.Length, p.Item.Width, p.Rotation.Rotated())
}

type placementJSON struct {
	Item     string    `json:"item"`
	Center   orb.Point `json:"center"`
	Rotation Rotation  `json:"rotation"`
}

func (p Placement) MarshalJSON() ([]byte, error) {
	return json.Marshal(placementJSON{Item: p.Item.Name, Center: p.Center, Rotation: p.Rotation})
}

// UnmarshalJSON reads the output format. Only the item name is stored there,
// so dimensions are left at zero.
func (p *Placement) UnmarshalJSON(data []byte) error {
	var raw placementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Rotation != Rot0 && raw.Rotation != Rot90 {
		return NewError(ErrCodeInvalidFormat, "rotation must be 0 or 90, got %d", raw.Rotation)
	}
	*p = Placement{
		Item:     Item{Name: raw.Item, Category: CategoryFromName(raw.Item)},
		Center:   raw.Center,
		Rotation: raw.Rotation,
	}
	return nil
}

// Door is an opening in the room boundary.
type Door struct {
	Segment     geom.Segment `json:"segment"`
	OpensInward bool         `json:"opensInward"`
}

// Width returns the door opening width.
func (d *Door) Width() float64 {
	if d == nil {
		return 0
	}
	return d.Segment.Length()
}

// IsZero reports whether the door is absent.
func (d *Door) IsZero() bool {
	return d == nil || d.Segment.Length() < geom.Epsilon
}

// Room is the outline items are placed in.
type Room struct {
	Boundary orb.Ring `json:"boundary"`
	Door     *Door    `json:"door,omitempty"`
}

// NewRoom builds a room from an outline that may or may not repeat its first point.
func NewRoom(outline []orb.Point, door *Door) Room {
	return Room{Boundary: geom.Close(outline), Door: door}
}

// Walls returns the boundary edges in order.
func (r Room) Walls() []geom.Segment {
	return geom.Edges(r.Boundary)
}

// Area returns the floor area in mm².
func (r Room) Area() float64 {
	return geom.Area(r.Boundary)
}

// Bound returns the bounding box of the outline.
func (r Room) Bound() orb.Bound {
	return geom.Bound(r.Boundary)
}

// Rejections counts rejected candidates per failed constraint.
type Rejections struct {
	Boundary  int `json:"boundary"`
	Door      int `json:"door"`
	Occupied  int `json:"occupied"`
	Clearance int `json:"clearance"`
}

// Total returns the number of rejected candidates.
func (r Rejections) Total() int {
	return r.Boundary + r.Door + r.Occupied + r.Clearance
}

// Add accumulates other into r.
func (r *Rejections) Add(other Rejections) {
	r.Boundary += other.Boundary
	r.Door += other.Door
	r.Occupied += other.Occupied
	r.Clearance += other.Clearance
}

// Stats summarises one solve.
type Stats struct {
	Candidates   int        `json:"candidates"`
	Rejections   Rejections `json:"rejections"`
	WallTouching int        `json:"wallTouching"` // Placed items touching at least one wall
	OccupiedArea float64    `json:"occupiedArea"` // mm²
	RoomArea     float64    `json:"roomArea"`     // mm²
}

// Utilization returns the occupied share of the floor as a percentage.
func (s Stats) Utilization() float64 {
	if s.RoomArea == 0 {
		return 0
	}
	return s.OccupiedArea / s.RoomArea * 100.0
}

// Result is the outcome of a solve. On failure Placements holds the items
// committed before the failing one; it is not a usable layout.
type Result struct {
	Feasible    bool        `json:"feasible"`
	Placements  []Placement `json:"placements"`
	Message     string      `json:"message,omitempty"`
	FailedIndex int         `json:"-"` // Position of the failing item in priority order, -1 when feasible
	FailedItem  string      `json:"failedItem,omitempty"`
	Stats       Stats       `json:"stats"`

	DoorZone       orb.Ring   `json:"-"`
	ClearanceZones []orb.Ring `json:"-"`
}

// Placed returns the number of committed placements.
func (r Result) Placed() int {
	return len(r.Placements)
}

// Lookup returns the placement of the named item.
func (r Result) Lookup(name string) (Placement, bool) {
	for _, p := range r.Placements {
		if p.Item.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// Summary is a one-line human readable outcome.
func (r Result) Summary() string {
	if r.Feasible {
		return fmt.Sprintf("feasible: %d items placed, %.1f%% of floor used", r.Placed(), r.Stats.Utilization())
	}
	return fmt.Sprintf("infeasible: %s (placed %d before failing)", r.Message, r.Placed())
}

// Settings are the tunable placement policy constants.
type Settings struct {
	WallStrideCap        float64 `json:"wall_stride_cap" yaml:"wall_stride_cap" toml:"wall_stride_cap"`                      // Max distance between wall samples (mm)
	WallSubdivisions     float64 `json:"wall_subdivisions" yaml:"wall_subdivisions" toml:"wall_subdivisions"`                // Wall length divisor for the sample stride
	MinWallStride        float64 `json:"min_wall_stride" yaml:"min_wall_stride" toml:"min_wall_stride"`                      // Lower bound on the stride (mm)
	GridSpacing          float64 `json:"grid_spacing" yaml:"grid_spacing" toml:"grid_spacing"`                               // Interior grid step (mm)
	TouchTolerance       float64 `json:"touch_tolerance" yaml:"touch_tolerance" toml:"touch_tolerance"`                      // Wall distance counted as touching (mm)
	AdjacencyWeight      float64 `json:"adjacency_weight" yaml:"adjacency_weight" toml:"adjacency_weight"`                   // Score per touched wall
	OutwardDoorClearance float64 `json:"outward_door_clearance" yaml:"outward_door_clearance" toml:"outward_door_clearance"` // Buffer around an outward door (mm)
	ClearanceDepthFactor float64 `json:"clearance_depth_factor" yaml:"clearance_depth_factor" toml:"clearance_depth_factor"` // Clearance depth as a multiple of item width
	BufferSegments       int     `json:"buffer_segments" yaml:"buffer_segments" toml:"buffer_segments"`                      // Chords per quarter circle in buffers
	Workers              int     `json:"workers" yaml:"workers" toml:"workers"`                                              // Goroutines evaluating candidates
}

func DefaultSettings() Settings {
	return Settings{
		WallStrideCap:        100,
		WallSubdivisions:     20,
		MinWallStride:        1,
		GridSpacing:          200,
		TouchTolerance:       10,
		AdjacencyWeight:      10000,
		OutwardDoorClearance: 100,
		ClearanceDepthFactor: 1.0,
		BufferSegments:       8,
		Workers:              1,
	}
}

// WithDefaults fills zero or negative fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&s.WallStrideCap, d.WallStrideCap)
	fill(&s.WallSubdivisions, d.WallSubdivisions)
	fill(&s.MinWallStride, d.MinWallStride)
	fill(&s.GridSpacing, d.GridSpacing)
	fill(&s.TouchTolerance, d.TouchTolerance)
	fill(&s.AdjacencyWeight, d.AdjacencyWeight)
	fill(&s.OutwardDoorClearance, d.OutwardDoorClearance)
	fill(&s.ClearanceDepthFactor, d.ClearanceDepthFactor)
	if s.BufferSegments <= 0 {
		s.BufferSegments = d.BufferSegments
	}
	if s.Workers <= 0 {
		s.Workers = d.Workers
	}
	return s
}

// Package interact tracks which hand holds which object and enforces the
// grab/drop transitions for the grid and cube scenes.
package interact

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/mudra/internal/space"
)

// NoOwner marks an entity that is not held by any hand slot.
const NoOwner = -1

// Entity is a held or placeable object. It is created at scene setup and
// mutated only by grab/drop transitions. Exactly one of the following holds
// at any time: it rests in a cell (Cell >= 0, Owner == NoOwner) or it is
// held (Owner set, Cell == space.NoCell). Cube entities rest "in space"
// with Cell permanently NoCell, which still satisfies the exclusivity rule.
type Entity struct {
	ID string `json:"id"`

	// InitialCell is the cell the entity spawned in, or space.NoCell for
	// non-grid entities. It never changes and is what the protocol tracker
	// keys on.
	InitialCell int `json:"initial_cell"`

	Cell    int    `json:"cell"`
	Owner   int    `json:"owner"`
	Pos     r3.Vec `json:"pos"`
	Flipped bool   `json:"flipped"`

	snapshot *grabSnapshot
}

// grabSnapshot freezes the palm orientation at the moment of a grab so the
// flip state can be computed relative to it on every subsequent frame.
type grabSnapshot struct {
	angle      float64
	normalZ    float64 // palm-normal z sign at grab; 0 when world landmarks were absent
	wasFlipped bool
}

// Held reports whether the entity is currently owned by a hand slot.
func (e *Entity) Held() bool {
	return e.Owner != NoOwner
}

// CellStore maps grid cells to the ordered entities resting in them.
// Insertion order is preserved: the last pushed entity is "on top" and is
// the next one to be grabbed.
type CellStore struct {
	cells [space.GridSize * space.GridSize][]*Entity
}

// NewCellStore creates an empty CellStore.
func NewCellStore() *CellStore {
	return &CellStore{}
}

func (s *CellStore) valid(cell int) bool {
	return cell >= 0 && cell < len(s.cells)
}

// Push appends an entity to a cell, making it the new top.
// Out-of-range cells are ignored.
func (s *CellStore) Push(cell int, e *Entity) {
	if !s.valid(cell) || e == nil {
		return
	}
	s.cells[cell] = append(s.cells[cell], e)
}

// PopTop removes and returns the top entity of a cell, or nil when the
// cell is empty or out of range.
func (s *CellStore) PopTop(cell int) *Entity {
	if !s.valid(cell) || len(s.cells[cell]) == 0 {
		return nil
	}
	last := len(s.cells[cell]) - 1
	e := s.cells[cell][last]
	s.cells[cell] = s.cells[cell][:last]
	return e
}

// Top returns the top entity of a cell without removing it, or nil.
func (s *CellStore) Top(cell int) *Entity {
	if !s.valid(cell) || len(s.cells[cell]) == 0 {
		return nil
	}
	return s.cells[cell][len(s.cells[cell])-1]
}

// Len returns the number of entities resting in a cell.
func (s *CellStore) Len(cell int) int {
	if !s.valid(cell) {
		return 0
	}
	return len(s.cells[cell])
}

// Entities returns the entities in a cell in insertion order. The returned
// slice is the store's own; callers must not mutate it.
func (s *CellStore) Entities(cell int) []*Entity {
	if !s.valid(cell) {
		return nil
	}
	return s.cells[cell]
}

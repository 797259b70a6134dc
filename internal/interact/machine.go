package interact

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/space"
)

// MaxSlots is the number of hand slots the machine tracks.
const MaxSlots = 2

// DefaultAngleThreshold is the wrapped angular difference beyond which the
// 2D fallback path considers the hand rotated (pi/6).
const DefaultAngleThreshold = math.Pi / 6

// Config holds the state machine tunables.
type Config struct {
	// AngleThreshold is the rotation threshold for the 2D orientation
	// fallback, in radians.
	AngleThreshold float64

	// InteractionRadius is how close the pinch must be to a free entity
	// for a cube-mode grab.
	InteractionRadius float64
}

// DefaultConfig returns the state machine defaults.
func DefaultConfig() Config {
	return Config{
		AngleThreshold:    DefaultAngleThreshold,
		InteractionRadius: 0.6,
	}
}

// HandInput is everything the machine needs about one hand slot for one
// frame.
type HandInput struct {
	Present   bool
	Gesture   gesture.State
	Landmarks [detector.NumLandmarks]detector.Point3D
	World     [detector.NumLandmarks]detector.Point3D
	HasWorld  bool

	// Pos is the mapped world position of the palm center (grid mode) or
	// pinch midpoint (cube mode). Held entities follow it every frame.
	Pos r3.Vec

	// Cell is the mapped palm-center grid cell, space.NoCell when the palm
	// is outside the grid. Ignored in cube mode.
	Cell int
}

// EventType labels a state machine transition.
type EventType string

const (
	// EventGrab fires when a hand takes ownership of an entity.
	EventGrab EventType = "grab"
	// EventDrop fires when a hand releases an entity.
	EventDrop EventType = "drop"
)

// Event records a transition for logging and rendering.
type Event struct {
	Type   EventType
	Slot   int
	Entity *Entity
	Cell   int // destination cell for drops, source cell for grid grabs
}

// Mode selects the grab/drop trigger rules.
type Mode int

const (
	// ModeGrid grabs the top entity of the palm's cell on a fist and drops
	// it into the palm's cell on an open hand.
	ModeGrid Mode = iota
	// ModeCube grabs a free entity within the interaction radius on a
	// pinch and releases it when the pinch ends.
	ModeCube
)

// StateMachine owns the per-slot EMPTY/HOLDING state. All mutation of the
// CellStore and the ownership map happens inside Update, which the engine
// calls once per slot per tick in fixed slot order.
type StateMachine struct {
	config  Config
	mode    Mode
	cells   *CellStore
	tracker *Tracker
	free    []*Entity

	held        [MaxSlots]*Entity
	lastGesture [MaxSlots]gesture.Type
}

// NewGridMachine creates a grid-mode machine over the given cell store.
// The tracker may be nil when protocol validation is not wanted.
func NewGridMachine(config Config, cells *CellStore, tracker *Tracker) *StateMachine {
	m := &StateMachine{config: config, mode: ModeGrid, cells: cells, tracker: tracker}
	for i := range m.lastGesture {
		m.lastGesture[i] = gesture.TypeNone
	}
	return m
}

// NewCubeMachine creates a cube-mode machine over a fixed set of grabbable
// entities.
func NewCubeMachine(config Config, entities []*Entity) *StateMachine {
	m := &StateMachine{config: config, mode: ModeCube, free: entities}
	for i := range m.lastGesture {
		m.lastGesture[i] = gesture.TypeNone
	}
	return m
}

// Held returns the entity a slot is holding, or nil.
func (m *StateMachine) Held(slot int) *Entity {
	if slot < 0 || slot >= MaxSlots {
		return nil
	}
	return m.held[slot]
}

// Update evaluates at most one grab and one drop transition for the slot,
// then applies orientation tracking and position follow while holding.
//
// A hand that disappears while holding leaves the entity owned and frozen
// at its last position; the slot must reappear and release explicitly.
func (m *StateMachine) Update(slot int, in HandInput) []Event {
	if slot < 0 || slot >= MaxSlots {
		return nil
	}

	if !in.Present {
		// Transition detection restarts when the hand returns.
		m.lastGesture[slot] = gesture.TypeNone
		return nil
	}

	now := in.Gesture.Type
	entered := now != m.lastGesture[slot]
	m.lastGesture[slot] = now

	var events []Event

	switch m.mode {
	case ModeGrid:
		if e := m.gridGrab(slot, in, now, entered); e != nil {
			events = append(events, *e)
		} else if e := m.gridDrop(slot, in, now, entered); e != nil {
			events = append(events, *e)
		}
	case ModeCube:
		if e := m.cubeGrab(slot, in, now, entered); e != nil {
			events = append(events, *e)
		} else if e := m.cubeDrop(slot, now); e != nil {
			events = append(events, *e)
		}
	}

	if held := m.held[slot]; held != nil {
		m.trackOrientation(held, in)
		held.Pos = in.Pos
	}

	return events
}

// gridGrab pops the top entity of the palm cell when the gesture enters
// FIST. Empty or invalid cells are a no-op, never an error.
func (m *StateMachine) gridGrab(slot int, in HandInput, now gesture.Type, entered bool) *Event {
	if m.held[slot] != nil || now != gesture.TypeFist || !entered {
		return nil
	}
	if in.Cell == space.NoCell || m.cells.Len(in.Cell) == 0 {
		return nil
	}

	e := m.cells.PopTop(in.Cell)
	m.takeOwnership(slot, e, in)

	return &Event{Type: EventGrab, Slot: slot, Entity: e, Cell: in.Cell}
}

// gridDrop pushes the held entity into the palm cell when the gesture
// enters OPEN. The protocol tracker inspects the pending drop first; a
// violation fails the protocol but the drop still commits.
func (m *StateMachine) gridDrop(slot int, in HandInput, now gesture.Type, entered bool) *Event {
	e := m.held[slot]
	if e == nil || now != gesture.TypeOpen || !entered {
		return nil
	}
	if in.Cell == space.NoCell {
		return nil
	}

	if m.tracker != nil {
		m.tracker.CheckDrop(e.InitialCell, in.Cell)
	}

	m.releaseOwnership(slot, e)
	e.Cell = in.Cell
	m.cells.Push(in.Cell, e)

	return &Event{Type: EventDrop, Slot: slot, Entity: e, Cell: in.Cell}
}

// cubeGrab takes a free entity within the interaction radius of the pinch.
func (m *StateMachine) cubeGrab(slot int, in HandInput, now gesture.Type, entered bool) *Event {
	if m.held[slot] != nil || now != gesture.TypePinch || !entered {
		return nil
	}

	for _, e := range m.free {
		if e.Held() {
			continue
		}
		d := r3.Norm(r3.Sub(e.Pos, in.Pos))
		if d <= m.config.InteractionRadius {
			m.takeOwnership(slot, e, in)
			return &Event{Type: EventGrab, Slot: slot, Entity: e, Cell: space.NoCell}
		}
	}
	return nil
}

// cubeDrop releases the held entity when the pinch ends; it rests where
// it was last carried.
func (m *StateMachine) cubeDrop(slot int, now gesture.Type) *Event {
	e := m.held[slot]
	if e == nil || now == gesture.TypePinch {
		return nil
	}

	m.releaseOwnership(slot, e)
	return &Event{Type: EventDrop, Slot: slot, Entity: e, Cell: space.NoCell}
}

func (m *StateMachine) takeOwnership(slot int, e *Entity, in HandInput) {
	e.Owner = slot
	e.Cell = space.NoCell
	e.Pos = in.Pos

	snap := &grabSnapshot{
		angle:      PalmAngle(in.Landmarks),
		wasFlipped: e.Flipped,
	}
	if in.HasWorld {
		snap.normalZ = PalmNormalZ(in.World)
	}
	e.snapshot = snap

	m.held[slot] = e
}

func (m *StateMachine) releaseOwnership(slot int, e *Entity) {
	e.Owner = NoOwner
	e.snapshot = nil
	m.held[slot] = nil
}

// trackOrientation recomputes the flip state every frame while holding.
// The palm-normal path is authoritative whenever world landmarks are
// present at grab and now; otherwise the wrapped 2D angle difference
// against the grab snapshot decides.
func (m *StateMachine) trackOrientation(e *Entity, in HandInput) {
	snap := e.snapshot
	if snap == nil {
		return
	}

	var flippedSinceGrab bool
	if in.HasWorld && snap.normalZ != 0 {
		flippedSinceGrab = PalmNormalZ(in.World)*snap.normalZ < 0
	} else {
		diff := wrapAngle(PalmAngle(in.Landmarks) - snap.angle)
		if diff < 0 {
			diff = -diff
		}
		flippedSinceGrab = diff > m.config.AngleThreshold
	}

	e.Flipped = flippedSinceGrab != snap.wasFlipped
}

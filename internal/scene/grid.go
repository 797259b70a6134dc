package scene

import (
	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/space"
)

// GridScene is the 3x3 sorting game: fist over a cell grabs the top prop,
// open hand over a cell drops it, and a step tracker validates the moves
// against a fixed sequence.
type GridScene struct {
	mapper   *space.Mapper
	cells    *interact.CellStore
	tracker  *interact.Tracker
	machine  *interact.StateMachine
	entities []*interact.Entity

	frame    Frame
	hover    [interact.MaxSlots]int
	wasDone  bool
	wasFail  bool
	advanced int
}

// NewGridScene builds the scene with one prop spawned in each source cell
// of the step sequence.
func NewGridScene(mapper *space.Mapper, machineConfig interact.Config, steps []interact.Step) *GridScene {
	if steps == nil {
		steps = interact.DefaultSteps()
	}

	cells := interact.NewCellStore()
	tracker := interact.NewTracker(steps)

	spawned := make(map[int]bool)
	var entities []*interact.Entity
	for _, st := range steps {
		if spawned[st.From] {
			continue
		}
		spawned[st.From] = true
		e := &interact.Entity{
			ID:          uuid.NewString(),
			InitialCell: st.From,
			Cell:        st.From,
			Owner:       interact.NoOwner,
		}
		cells.Push(st.From, e)
		entities = append(entities, e)
	}

	return &GridScene{
		mapper:   mapper,
		cells:    cells,
		tracker:  tracker,
		machine:  interact.NewGridMachine(machineConfig, cells, tracker),
		entities: entities,
	}
}

func (s *GridScene) Name() string { return "grid" }

// Tracker exposes the step tracker, mainly for tests and the API layer.
func (s *GridScene) Tracker() *interact.Tracker { return s.tracker }

// Step runs both hand slots through the state machine in slot order, then
// rescans the board for step advances.
func (s *GridScene) Step(f Frame) []Event {
	s.frame = f
	var events []Event

	for slot := range f.Hands {
		h := f.Hands[slot]
		in := interact.HandInput{Present: h.Present}
		s.hover[slot] = space.NoCell

		if h.Present {
			palm := h.Gesture.PalmCenter
			in.Gesture = h.Gesture
			in.Landmarks = h.Landmarks
			in.World = h.World
			in.HasWorld = h.HasWorld
			in.Pos = s.mapper.World(palm.X, palm.Y, palm.Z)
			in.Cell = s.mapper.Cell(palm.X, palm.Y)
			s.hover[slot] = in.Cell
		}

		events = append(events, machineEvents(s.machine.Update(slot, in))...)
	}

	if n := s.tracker.Scan(s.entities); n > 0 {
		s.advanced += n
		events = append(events, Event{Type: EventStepAdvance, Cell: s.tracker.StepIndex()})
	}
	if s.tracker.Done() && !s.wasDone {
		s.wasDone = true
		events = append(events, Event{Type: EventProtocolDone})
	}
	if s.tracker.Failed() && !s.wasFail {
		s.wasFail = true
		events = append(events, Event{Type: EventProtocolFailed})
	}
	return events
}

// Snapshot renders the board, hovered and target cells, and the current
// instruction text.
func (s *GridScene) Snapshot() RenderState {
	hands := handStates(s.frame)
	for slot := range hands {
		if hands[slot].Present {
			palm := s.frame.Hands[slot].Gesture.PalmCenter
			hands[slot].Palm = s.mapper.World(palm.X, palm.Y, palm.Z)
		}
	}

	target := space.NoCell
	if step, ok := s.tracker.Current(); ok {
		target = step.To
	}

	cells := make([]CellState, space.GridSize*space.GridSize)
	for i := range cells {
		cells[i] = CellState{
			Index:  i,
			Count:  s.cells.Len(i),
			Target: i == target,
		}
	}
	for slot := range s.hover {
		if c := s.hover[slot]; c != space.NoCell {
			cells[c].Hover = true
		}
	}

	return RenderState{
		Scene:          s.Name(),
		Tick:           s.frame.Tick,
		Hands:          hands,
		Entities:       entityStates(s.entities),
		Cells:          cells,
		Instruction:    s.tracker.Instruction(),
		ProtocolDone:   s.tracker.Done(),
		ProtocolFailed: s.tracker.Failed(),
	}
}

package scene

import (
	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/space"
)

// CubeScene is the single-prop manipulation mode: a pinch near the cube
// grabs it, moving the pinch carries it, opening the pinch releases it,
// and turning the hand over flips the cube's displayed face.
type CubeScene struct {
	mapper   *space.Mapper
	machine  *interact.StateMachine
	entities []*interact.Entity

	frame Frame
}

// NewCubeScene builds the scene with one cube resting at the scene origin.
func NewCubeScene(mapper *space.Mapper, machineConfig interact.Config) *CubeScene {
	cube := &interact.Entity{
		ID:          uuid.NewString(),
		InitialCell: space.NoCell,
		Cell:        space.NoCell,
		Owner:       interact.NoOwner,
	}
	entities := []*interact.Entity{cube}

	return &CubeScene{
		mapper:   mapper,
		machine:  interact.NewCubeMachine(machineConfig, entities),
		entities: entities,
	}
}

func (s *CubeScene) Name() string { return "cube" }

// Step drives the pinch grab machine. The carry position is the pinch
// midpoint while pinching, the palm center otherwise.
func (s *CubeScene) Step(f Frame) []Event {
	s.frame = f
	var events []Event

	for slot := range f.Hands {
		h := f.Hands[slot]
		in := interact.HandInput{Present: h.Present}

		if h.Present {
			anchor := h.Gesture.PalmCenter
			if h.Gesture.Type == gesture.TypePinch {
				anchor = h.Gesture.PinchCenter
			}
			in.Gesture = h.Gesture
			in.Landmarks = h.Landmarks
			in.World = h.World
			in.HasWorld = h.HasWorld
			in.Pos = s.mapper.World(anchor.X, anchor.Y, anchor.Z)
		}

		events = append(events, machineEvents(s.machine.Update(slot, in))...)
	}
	return events
}

func (s *CubeScene) Snapshot() RenderState {
	hands := handStates(s.frame)
	for slot := range hands {
		if hands[slot].Present {
			palm := s.frame.Hands[slot].Gesture.PalmCenter
			hands[slot].Palm = s.mapper.World(palm.X, palm.Y, palm.Z)
		}
	}

	return RenderState{
		Scene:    s.Name(),
		Tick:     s.frame.Tick,
		Hands:    hands,
		Entities: entityStates(s.entities),
	}
}

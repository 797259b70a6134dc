// Package scene hosts the interaction modes the engine can run. A scene
// consumes one classified frame per tick and exposes a render state for
// the websocket broadcaster.
package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/swarm"
)

// Hand is one slot's classified state for a single tick.
type Hand struct {
	Present   bool
	Gesture   gesture.State
	Landmarks [detector.NumLandmarks]detector.Point3D
	World     [detector.NumLandmarks]detector.Point3D
	HasWorld  bool
}

// Frame is the per-tick input to a scene. Slots are stable across ticks;
// an absent hand is Present=false, not removed.
type Frame struct {
	Tick  uint64
	Hands [interact.MaxSlots]Hand
}

// Event is a scene-level occurrence worth logging.
type Event struct {
	Type     string
	Slot     int
	EntityID string
	Cell     int
	Detail   string
}

// Event types emitted by the scenes.
const (
	EventGrab           = "grab"
	EventDrop           = "drop"
	EventStepAdvance    = "step_advance"
	EventProtocolDone   = "protocol_done"
	EventProtocolFailed = "protocol_failed"
	EventGather         = "gather"
	EventScatter        = "scatter"
)

// Scene is one interaction mode.
type Scene interface {
	Name() string
	Step(Frame) []Event
	Snapshot() RenderState
}

// HandState is the rendered view of one hand slot.
type HandState struct {
	Slot       int                `json:"slot"`
	Present    bool               `json:"present"`
	Gesture    gesture.Type       `json:"gesture"`
	Confidence float64            `json:"confidence"`
	Landmarks  []detector.Point3D `json:"landmarks,omitempty"`
	Palm       r3.Vec             `json:"palm"`
}

// EntityState is the rendered view of one entity.
type EntityState struct {
	ID      string `json:"id"`
	Cell    int    `json:"cell"`
	Held    bool   `json:"held"`
	Owner   int    `json:"owner"`
	Pos     r3.Vec `json:"pos"`
	Flipped bool   `json:"flipped"`
}

// CellState is the rendered view of one grid cell.
type CellState struct {
	Index  int  `json:"index"`
	Count  int  `json:"count"`
	Hover  bool `json:"hover"`
	Target bool `json:"target"`
}

// ParticleState is the rendered view of one swarm particle.
type ParticleState struct {
	Pos   r3.Vec      `json:"pos"`
	Color swarm.Color `json:"color"`
}

// RenderState is the JSON payload pushed to the renderer every tick.
type RenderState struct {
	Scene          string          `json:"scene"`
	Tick           uint64          `json:"tick"`
	Hands          []HandState     `json:"hands"`
	Entities       []EntityState   `json:"entities,omitempty"`
	Cells          []CellState     `json:"cells,omitempty"`
	Particles      []ParticleState `json:"particles,omitempty"`
	Instruction    string          `json:"instruction,omitempty"`
	ProtocolDone   bool            `json:"protocol_done,omitempty"`
	ProtocolFailed bool            `json:"protocol_failed,omitempty"`
	SwarmMode      swarm.Mode      `json:"swarm_mode,omitempty"`
}

func handStates(f Frame) []HandState {
	states := make([]HandState, 0, len(f.Hands))
	for slot, h := range f.Hands {
		hs := HandState{Slot: slot, Present: h.Present}
		if h.Present {
			hs.Gesture = h.Gesture.Type
			hs.Confidence = h.Gesture.Confidence
			hs.Landmarks = h.Landmarks[:]
		} else {
			hs.Gesture = gesture.TypeNone
		}
		states = append(states, hs)
	}
	return states
}

func entityStates(entities []*interact.Entity) []EntityState {
	states := make([]EntityState, 0, len(entities))
	for _, e := range entities {
		states = append(states, EntityState{
			ID:      e.ID,
			Cell:    e.Cell,
			Held:    e.Held(),
			Owner:   e.Owner,
			Pos:     e.Pos,
			Flipped: e.Flipped,
		})
	}
	return states
}

func machineEvents(events []interact.Event) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		typ := EventGrab
		if ev.Type == interact.EventDrop {
			typ = EventDrop
		}
		out = append(out, Event{
			Type:     typ,
			Slot:     ev.Slot,
			EntityID: ev.Entity.ID,
			Cell:     ev.Cell,
		})
	}
	return out
}

package interact

import "fmt"

// Step is one prescribed move: carry the entity that spawned in From and
// set it down in To. From identifies the prop by its immutable spawn cell,
// not by where it currently rests.
type Step struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DefaultSteps returns the prescribed six-move sequence: a forward phase
// carrying the bottom-row props to the middle row, then a return phase
// putting each prop back in its spawn cell.
func DefaultSteps() []Step {
	return []Step{
		{From: 6, To: 3},
		{From: 7, To: 4},
		{From: 8, To: 5},
		{From: 6, To: 6},
		{From: 7, To: 7},
		{From: 8, To: 8},
	}
}

// Tracker validates a prescribed sequence of cell-to-cell moves. DONE and
// FAILED are absorbing: once reached, no further step evaluation occurs.
type Tracker struct {
	steps  []Step
	index  int
	failed bool
}

// NewTracker creates a Tracker over the given steps. Nil or empty steps
// fall back to DefaultSteps.
func NewTracker(steps []Step) *Tracker {
	if len(steps) == 0 {
		steps = DefaultSteps()
	}
	return &Tracker{steps: steps}
}

// Active reports whether the tracker is still evaluating steps.
func (t *Tracker) Active() bool {
	return !t.failed && t.index < len(t.steps)
}

// Done reports whether every step has been completed.
func (t *Tracker) Done() bool {
	return !t.failed && t.index >= len(t.steps)
}

// Failed reports whether a drop violated the sequence.
func (t *Tracker) Failed() bool {
	return t.failed
}

// Current returns the active step. ok is false once the tracker is DONE or
// FAILED.
func (t *Tracker) Current() (step Step, ok bool) {
	if !t.Active() {
		return Step{}, false
	}
	return t.steps[t.index], true
}

// StepIndex returns the zero-based index of the active step.
func (t *Tracker) StepIndex() int {
	return t.index
}

// Scan checks the resident entities against the active step: when an
// entity whose InitialCell matches the step's source is now resting in the
// step's destination, the step is passed. Returns the number of steps
// advanced this scan. Steps already passed never re-trigger because the
// index only moves forward.
func (t *Tracker) Scan(entities []*Entity) int {
	advanced := 0
	for t.Active() {
		step := t.steps[t.index]
		matched := false
		for _, e := range entities {
			if e.InitialCell == step.From && !e.Held() && e.Cell == step.To {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		t.index++
		advanced++
	}
	return advanced
}

// CheckDrop inspects a pending drop immediately before it commits. A drop
// whose destination is not the active step's destination, or whose entity
// did not spawn in the active step's source, fails the protocol. The drop
// itself still commits; failure only stops protocol evaluation.
func (t *Tracker) CheckDrop(initialCell, destCell int) {
	if !t.Active() {
		return
	}
	step := t.steps[t.index]
	if destCell != step.To || initialCell != step.From {
		t.failed = true
	}
}

// Instruction returns the operator-facing text for the current state.
func (t *Tracker) Instruction() string {
	switch {
	case t.failed:
		return "Sequence failed. Reset to try again"
	case t.Done():
		return "Sequence complete!"
	default:
		step := t.steps[t.index]
		if step.From == step.To {
			return fmt.Sprintf("Return the prop that started in cell %d to its cell", step.From)
		}
		return fmt.Sprintf("Move the prop from cell %d to cell %d", step.From, step.To)
	}
}

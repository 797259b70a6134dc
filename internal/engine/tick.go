package engine

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/store"
)

// run is the tick loop. Each tick executes the pipeline stages in a fixed
// order: capture, detect, smooth, classify, scene step, snapshot. Hand
// slots are filled in detector output order and processed slot 0 first,
// so cell mutations stay deterministic.
//
// The interval follows the tuned FPS: after each fire the loop re-reads
// it and resets the ticker when a config update changed the rate.
func (e *Engine) run(stopCh chan struct{}) {
	interval := e.tickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if next := e.tickInterval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
			if !e.IsEnabled() {
				continue
			}
			e.step()
		}
	}
}

// tickInterval derives the loop interval from the tuned FPS, falling
// back to the construction-time rate.
func (e *Engine) tickInterval() time.Duration {
	e.mu.RLock()
	fps := e.tuning.FPS
	e.mu.RUnlock()

	if fps <= 0 {
		fps = e.config.FPS
	}
	return time.Second / time.Duration(fps)
}

// step executes one pipeline tick. Exported to tests via Tick.
func (e *Engine) step() {
	e.mu.RLock()
	cam, det, sc := e.camera, e.detector, e.scene
	smoother, classifier := e.smoother, e.classifier
	e.mu.RUnlock()

	if sc == nil {
		return
	}

	e.tick++

	// A read or detect failure is treated the same as "no hands": every
	// slot resets and the scene sees an empty frame.
	var hands []detector.Observation
	frame, err := cam.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
	} else {
		hands, err = det.Detect(frame)
		frame.Close()
		if err != nil {
			log.Printf("Error detecting hands: %v", err)
			hands = nil
		}
	}

	f := scene.Frame{Tick: e.tick}
	for slot := range f.Hands {
		if slot < len(hands) {
			obs := hands[slot]
			smoothed := smoother.Smooth(obs.Landmarks, slot)
			f.Hands[slot] = scene.Hand{
				Present:   true,
				Gesture:   classifier.Classify(smoothed[:], slot),
				Landmarks: smoothed,
				World:     obs.World,
				HasWorld:  obs.HasWorld,
			}
		} else {
			smoother.Reset(slot)
			classifier.Reset(slot)
		}
	}

	events := sc.Step(f)
	snap := sc.Snapshot()

	e.mu.Lock()
	e.snapshot = snap
	sessionID := e.sessionID
	e.mu.Unlock()

	e.logEvents(sessionID, f.Tick, events)
}

// Tick runs a single pipeline step synchronously. Tests drive the engine
// with it instead of the ticker.
func (e *Engine) Tick() {
	e.step()
}

func (e *Engine) logEvents(sessionID string, tick uint64, events []scene.Event) {
	if e.config.Store == nil || sessionID == "" {
		return
	}

	for _, ev := range events {
		rec := &store.Event{
			SessionID: sessionID,
			Tick:      tick,
			Type:      ev.Type,
			HandSlot:  ev.Slot,
			EntityID:  ev.EntityID,
			Cell:      ev.Cell,
			Detail:    ev.Detail,
		}
		if err := e.config.Store.Events().Append(rec); err != nil {
			log.Printf("Failed to log %s event: %v", ev.Type, err)
		}
	}
}

package engine

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/space"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/swarm"
)

func newTestSwarmScene() *scene.SwarmScene {
	config := swarm.DefaultConfig()
	config.Count = 20
	config.Seed = 3
	return scene.NewSwarmScene(space.NewMapper(space.DefaultConfig()), swarm.New(config))
}

// newTestEngine wires a started engine with a mock camera/detector pair.
// The pipeline stays disabled so tests drive ticks with Tick().
func newTestEngine(t *testing.T, s *store.Store, sc scene.Scene) (*Engine, *detector.MockDetector) {
	t.Helper()

	e := New(Config{Store: s, FPS: 30}, sc)

	mat := gocv.NewMat()
	t.Cleanup(func() { mat.Close() })
	e.SetCamera(capture.NewMockCamera([]*gocv.Mat{&mat}, true))

	mock := detector.NewMockDetector()
	e.SetDetector(mock)

	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(e.Stop)

	return e, mock
}

func TestEngine_TickClassifiesAndStepsScene(t *testing.T) {
	e, mock := newTestEngine(t, nil, newTestSwarmScene())

	mock.SetHands([]detector.Observation{detector.FistLandmarks()})
	e.Tick()

	snap := e.Snapshot()
	if snap.Tick != 1 {
		t.Errorf("snapshot tick = %d, want 1", snap.Tick)
	}
	if snap.Hands[0].Gesture != gesture.TypeFist {
		t.Errorf("hand gesture = %q, want fist", snap.Hands[0].Gesture)
	}
	if snap.SwarmMode != swarm.ModeGathering {
		t.Errorf("swarm mode = %q, want gathering after a fist", snap.SwarmMode)
	}
}

func TestEngine_NoHandsResetsSlotsAndScatters(t *testing.T) {
	e, mock := newTestEngine(t, nil, newTestSwarmScene())

	mock.SetHands([]detector.Observation{detector.FistLandmarks()})
	e.Tick()
	mock.SetHands(nil)
	e.Tick()

	snap := e.Snapshot()
	if snap.Hands[0].Present {
		t.Error("hand still present after detector reported none")
	}
	if snap.SwarmMode != swarm.ModeScattered {
		t.Errorf("swarm mode = %q, want scattered on hand loss", snap.SwarmMode)
	}
}

func TestEngine_DetectorErrorActsAsEmptyFrame(t *testing.T) {
	e, mock := newTestEngine(t, nil, newTestSwarmScene())

	mock.SetHands([]detector.Observation{detector.FistLandmarks()})
	e.Tick()

	mock.SetError(errors.New("detector exploded"))
	e.Tick()

	if e.Snapshot().SwarmMode != swarm.ModeScattered {
		t.Error("detector error should scatter like an empty frame")
	}
}

func TestEngine_SessionAndEventLogging(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() failed: %v", err)
	}
	defer s.Close()

	e, mock := newTestEngine(t, s, newTestSwarmScene())

	sessionID := e.SessionID()
	if sessionID == "" {
		t.Fatal("no session after Start()")
	}

	mock.SetHands([]detector.Observation{detector.FistLandmarks()})
	e.Tick()
	mock.SetHands(nil)
	e.Tick()

	events, err := s.Events().ListBySession(sessionID)
	if err != nil {
		t.Fatalf("ListBySession() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want gather then scatter", len(events))
	}
	if events[0].Type != scene.EventGather || events[1].Type != scene.EventScatter {
		t.Errorf("event types = %q, %q", events[0].Type, events[1].Type)
	}

	e.Stop()
	sess, err := s.Sessions().GetByID(sessionID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if sess.EndedAt == nil {
		t.Error("session not ended on Stop()")
	}
	if sess.Scene != "swarm" {
		t.Errorf("session scene = %q, want swarm", sess.Scene)
	}
}

func TestEngine_SetSceneStartsFreshSession(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() failed: %v", err)
	}
	defer s.Close()

	e, _ := newTestEngine(t, s, newTestSwarmScene())
	first := e.SessionID()

	e.SetScene(newTestSwarmScene())
	second := e.SessionID()

	if second == "" || second == first {
		t.Errorf("SetScene() session = %q, want a fresh one (was %q)", second, first)
	}

	sess, err := s.Sessions().GetByID(first)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if sess.EndedAt == nil {
		t.Error("previous session not ended on scene switch")
	}
}

func TestEngine_DisabledByDefault(t *testing.T) {
	e, _ := newTestEngine(t, nil, newTestSwarmScene())

	if e.IsEnabled() {
		t.Error("engine should start disabled")
	}
	e.SetEnabled(true)
	if !e.IsEnabled() {
		t.Error("SetEnabled(true) did not stick")
	}
}

func TestEngine_TuningChangesTickInterval(t *testing.T) {
	e, _ := newTestEngine(t, nil, newTestSwarmScene())

	if got, want := e.tickInterval(), time.Second/30; got != want {
		t.Fatalf("tickInterval() = %v, want %v", got, want)
	}

	tuned := e.Tuning()
	tuned.FPS = 10
	e.ApplyTuning(tuned)

	if got, want := e.tickInterval(), time.Second/10; got != want {
		t.Errorf("tickInterval() after tuning = %v, want %v", got, want)
	}

	// Invalid rates fall back to the construction-time FPS.
	tuned.FPS = -1
	e.ApplyTuning(tuned)
	if got, want := e.tickInterval(), time.Second/30; got != want {
		t.Errorf("tickInterval() after invalid FPS = %v, want %v", got, want)
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/engine"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	sc, err := engine.NewScene("grid", 0)
	if err != nil {
		t.Fatalf("NewScene() failed: %v", err)
	}
	return engine.New(engine.Config{FPS: 30}, sc)
}

func TestSceneHandler_Get(t *testing.T) {
	h := NewSceneHandler(newTestEngine(t))

	req := httptest.NewRequest(http.MethodGet, "/api/scene", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body sceneResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Scene != "grid" {
		t.Errorf("scene = %q, want grid", body.Scene)
	}
	if body.Enabled {
		t.Error("engine should start disabled")
	}
}

func TestSceneHandler_Switch(t *testing.T) {
	e := newTestEngine(t)
	h := NewSceneHandler(e)

	req := httptest.NewRequest(http.MethodPost, "/api/scene",
		strings.NewReader(`{"scene":"swarm","enabled":true}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if e.SceneName() != "swarm" {
		t.Errorf("scene = %q, want swarm", e.SceneName())
	}
	if !e.IsEnabled() {
		t.Error("enabled flag not applied")
	}
}

func TestSceneHandler_UnknownScene(t *testing.T) {
	h := NewSceneHandler(newTestEngine(t))

	req := httptest.NewRequest(http.MethodPost, "/api/scene",
		strings.NewReader(`{"scene":"maze"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSceneHandler_InvalidBody(t *testing.T) {
	h := NewSceneHandler(newTestEngine(t))

	req := httptest.NewRequest(http.MethodPost, "/api/scene", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/engine"
)

// SceneHandler exposes the active scene and the enable switch.
type SceneHandler struct {
	engine *engine.Engine
}

// NewSceneHandler creates a new SceneHandler over the given engine.
func NewSceneHandler(e *engine.Engine) *SceneHandler {
	return &SceneHandler{engine: e}
}

type sceneResponse struct {
	Scene   string   `json:"scene"`
	Enabled bool     `json:"enabled"`
	Scenes  []string `json:"scenes"`
}

type setSceneRequest struct {
	Scene   string `json:"scene"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// ServeHTTP handles GET and POST on /api/scene.
func (h *SceneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.set(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SceneHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sceneResponse{
		Scene:   h.engine.SceneName(),
		Enabled: h.engine.IsEnabled(),
		Scenes:  engine.SceneNames,
	})
}

func (h *SceneHandler) set(w http.ResponseWriter, r *http.Request) {
	var req setSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Scene != "" && req.Scene != h.engine.SceneName() {
		if err := h.engine.SwitchScene(req.Scene); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Enabled != nil {
		h.engine.SetEnabled(*req.Enabled)
	}

	h.get(w, r)
}

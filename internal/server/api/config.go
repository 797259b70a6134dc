package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ayusman/mudra/internal/engine"
	"github.com/ayusman/mudra/internal/store"
)

// tuningSettingsKey is where the last applied tuning persists across runs.
const tuningSettingsKey = "tuning"

// ConfigHandler exposes the engine's runtime tuning parameters.
type ConfigHandler struct {
	engine *engine.Engine
	store  *store.Store
}

// NewConfigHandler creates a new ConfigHandler. The store may be nil, in
// which case tuning changes are not persisted.
func NewConfigHandler(e *engine.Engine, s *store.Store) *ConfigHandler {
	return &ConfigHandler{engine: e, store: s}
}

// ServeHTTP handles GET and PUT on /api/config.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.engine.Tuning())
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ConfigHandler) put(w http.ResponseWriter, r *http.Request) {
	var t engine.Tuning
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.engine.ApplyTuning(t)
	applied := h.engine.Tuning()

	if h.store != nil {
		encoded, err := json.Marshal(applied)
		if err == nil {
			err = h.store.Settings().Set(tuningSettingsKey, string(encoded))
		}
		if err != nil {
			log.Printf("Failed to persist tuning: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, applied)
}

// LoadTuning restores persisted tuning into the engine at startup.
func LoadTuning(e *engine.Engine, s *store.Store) error {
	if s == nil {
		return nil
	}

	raw, err := s.Settings().Get(tuningSettingsKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	var t engine.Tuning
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return err
	}

	e.ApplyTuning(t)
	return nil
}

package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/engine"
)

// StreamHandler serves MJPEG frames from the engine's camera.
type StreamHandler struct {
	engine *engine.Engine
}

// NewStreamHandler creates a new StreamHandler over the given engine.
func NewStreamHandler(e *engine.Engine) *StreamHandler {
	return &StreamHandler{engine: e}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	camera := h.engine.Camera()
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		if err := writePart(w, buf.GetBytes()); err != nil {
			buf.Close()
			return
		}
		buf.Close()

		if flusher != nil {
			flusher.Flush()
		}

		time.Sleep(33 * time.Millisecond) // ~30 FPS
	}
}

// writePart emits one MJPEG multipart section. A write error means the
// client went away.
func writePart(w http.ResponseWriter, jpeg []byte) error {
	if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(jpeg)); err != nil {
		return err
	}
	if _, err := w.Write(jpeg); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "\r\n")
	return err
}

package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// idleShutdown is how long the Python subprocess may sit unused before
// it is reaped. It restarts transparently on the next Detect call.
const idleShutdown = 30 * time.Second

// MediaPipeDetector runs hand landmark inference in a Python MediaPipe
// subprocess. Frames go over stdin as length-prefixed JPEG, results come
// back as one JSON document per frame on stdout.
type MediaPipeDetector struct {
	config Config

	mu        sync.Mutex
	proc      *exec.Cmd
	frames    io.WriteCloser
	results   *json.Decoder
	idleTimer *time.Timer
}

// NewMediaPipeDetector builds a detector backed by mediapipe_service.py.
// It fails fast when the script cannot be located; the subprocess itself
// starts lazily on the first Detect call.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	if scriptPath() == "" {
		return nil, fmt.Errorf("mediapipe_service.py not found")
	}
	return &MediaPipeDetector{config: config}, nil
}

// Detect sends one frame to the subprocess and decodes the hands it saw.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]Observation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.spawn(); err != nil {
		return nil, err
	}

	if err := d.writeFrame(frame); err != nil {
		// A broken pipe means the subprocess died. Reap it so the
		// next call starts a fresh one.
		d.reap()
		return nil, err
	}

	var resp struct {
		Hands []wireHand `json:"hands"`
	}
	if err := d.results.Decode(&resp); err != nil {
		d.reap()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hands := make([]Observation, len(resp.Hands))
	for i, h := range resp.Hands {
		hands[i] = h.observation()
	}

	d.armIdleTimer()
	return hands, nil
}

// Close shuts the subprocess down.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reap()
}

// writeFrame encodes the frame as JPEG and writes it with a 4-byte
// big-endian length prefix, the framing the Python side expects.
func (d *MediaPipeDetector) writeFrame(frame *gocv.Mat) error {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(data)))

	if _, err := d.frames.Write(prefix[:]); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	if _, err := d.frames.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (d *MediaPipeDetector) spawn() error {
	if d.proc != nil {
		return nil
	}

	script := scriptPath()
	if script == "" {
		return fmt.Errorf("mediapipe_service.py not found")
	}

	python := pythonPath()
	args := []string{script, fmt.Sprintf("--max-hands=%d", d.config.MaxHands)}
	if d.config.WorldLandmarks {
		args = append(args, "--world-landmarks")
	}

	cmd := exec.Command(python, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mediapipe service: %w", err)
	}

	d.proc = cmd
	d.frames = stdin
	d.results = json.NewDecoder(bufio.NewReader(stdout))
	return nil
}

func (d *MediaPipeDetector) reap() error {
	if d.proc == nil {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.frames != nil {
		d.frames.Close()
	}

	err := d.proc.Wait()
	d.proc = nil
	d.frames = nil
	d.results = nil
	return err
}

func (d *MediaPipeDetector) armIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(idleShutdown, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.reap()
	})
}

// scriptPath locates mediapipe_service.py next to the working directory,
// the executable, or under ~/.mudra.
func scriptPath() string {
	return firstExisting(searchDirs("scripts/mediapipe_service.py"))
}

// pythonPath prefers a project virtualenv interpreter over the system
// python3.
func pythonPath() string {
	if p := firstExisting(searchDirs("venv/bin/python")); p != "" {
		return p
	}
	return "python3"
}

// searchDirs expands a project-relative path into the places the daemon
// may be launched from.
func searchDirs(rel string) []string {
	candidates := []string{rel, filepath.Join("..", rel)}

	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), rel))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".mudra", rel))
	}
	return candidates
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}

// wireHand is one hand in the subprocess response.
type wireHand struct {
	Points      []wirePoint `json:"points"`
	WorldPoints []wirePoint `json:"world_points"`
	Handedness  string      `json:"handedness"`
	Score       float64     `json:"score"`
}

type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (h wireHand) observation() Observation {
	obs := Observation{
		Handedness: h.Handedness,
		Score:      h.Score,
	}

	for i := 0; i < NumLandmarks && i < len(h.Points); i++ {
		obs.Landmarks[i] = Point3D(h.Points[i])
	}

	if len(h.WorldPoints) >= NumLandmarks {
		for i := 0; i < NumLandmarks; i++ {
			obs.World[i] = Point3D(h.WorldPoints[i])
		}
		obs.HasWorld = true
	}

	return obs
}

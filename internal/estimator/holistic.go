package estimator

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

// HolisticEstimator implements Estimator using a Python MediaPipe Holistic subprocess.
type HolisticEstimator struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewHolisticEstimator creates a new holistic landmark estimator.
// The Python process is started lazily on first estimation.
func NewHolisticEstimator(config Config) (*HolisticEstimator, error) {
	scriptPath := findHolisticScript()
	if scriptPath == "" {
		return nil, fmt.Errorf("holistic_service.py not found")
	}

	return &HolisticEstimator{
		config: config,
	}, nil
}

// Estimate analyzes a frame and returns the detected landmark groups.
func (e *HolisticEstimator) Estimate(frame *gocv.Mat) (*Landmarks, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureStarted(); err != nil {
		return nil, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := e.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := e.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	// Read JSON response
	line, err := e.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response jsonLandmarks
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	e.lastUsed = time.Now()
	e.resetIdleTimer()

	return response.toLandmarks(), nil
}

// Close shuts down the Python process.
func (e *HolisticEstimator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shutdown()
}

func (e *HolisticEstimator) ensureStarted() error {
	if e.started {
		return nil
	}

	scriptPath := findHolisticScript()
	if scriptPath == "" {
		return fmt.Errorf("holistic_service.py not found")
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	e.cmd = exec.Command(pythonPath, scriptPath,
		fmt.Sprintf("--min-detection-confidence=%g", e.config.MinDetectionConfidence),
		fmt.Sprintf("--min-tracking-confidence=%g", e.config.MinTrackingConfidence),
	)

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := e.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	e.cmd.Stderr = os.Stderr

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("start holistic service: %w", err)
	}

	e.stdin = stdin
	e.stdout = bufio.NewReader(stdout)
	e.started = true
	e.lastUsed = time.Now()

	return nil
}

func (e *HolisticEstimator) shutdown() error {
	if !e.started {
		return nil
	}

	if e.idleTimer != nil {
		e.idleTimer.Stop()
		e.idleTimer = nil
	}

	if e.stdin != nil {
		e.stdin.Close()
	}

	err := e.cmd.Wait()
	e.started = false
	e.cmd = nil
	e.stdin = nil
	e.stdout = nil

	return err
}

func (e *HolisticEstimator) resetIdleTimer() {
	if e.idleTimer != nil {
		e.idleTimer.Stop()
	}
	e.idleTimer = time.AfterFunc(30*time.Second, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.shutdown()
	})
}

func findHolisticScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/holistic_service.py",
		"../scripts/holistic_service.py",
		filepath.Join(execDir, "scripts/holistic_service.py"),
		filepath.Join(os.Getenv("HOME"), ".studylens/scripts/holistic_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".studylens/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// jsonLandmarks represents the JSON structure from the Python service.
// Each group is null when the region was not detected.
type jsonLandmarks struct {
	Face      []jsonPoint `json:"face"`
	Pose      []jsonPoint `json:"pose"`
	LeftHand  []jsonPoint `json:"left_hand"`
	RightHand []jsonPoint `json:"right_hand"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (j jsonLandmarks) toLandmarks() *Landmarks {
	return &Landmarks{
		Face:      toPoints(j.Face),
		Pose:      toPoints(j.Pose),
		LeftHand:  toPoints(j.LeftHand),
		RightHand: toPoints(j.RightHand),
	}
}

func toPoints(pts []jsonPoint) []Point3D {
	if len(pts) == 0 {
		return nil
	}
	points := make([]Point3D, len(pts))
	for i, p := range pts {
		points[i] = Point3D{X: p.X, Y: p.Y, Z: p.Z}
	}
	return points
}

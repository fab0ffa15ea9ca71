// Package app wires frame decoding, landmark estimation, behavior
// detection, and result recording into the detection pipeline.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/meghnad/studylens/internal/behavior"
	"github.com/meghnad/studylens/internal/capture"
	"github.com/meghnad/studylens/internal/estimator"
	"github.com/meghnad/studylens/internal/feature"
	"github.com/meghnad/studylens/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Estimator  estimator.Estimator
	Bank       *behavior.Bank
	Detections *store.DetectionRepository
}

// App runs the per-frame detection pipeline. It holds no cross-request
// mutable state, so concurrent Detect calls are safe.
type App struct {
	estimator  estimator.Estimator
	bank       *behavior.Bank
	detections *store.DetectionRepository
	now        func() time.Time
	recordWG   sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	return &App{
		estimator:  config.Estimator,
		bank:       config.Bank,
		detections: config.Detections,
		now:        time.Now,
	}
}

// DetectImage decodes a base64 frame payload and runs detection on it.
// A payload that cannot be decoded fails with capture.ErrInvalidImage.
func (a *App) DetectImage(payload, userID, sessionID string) (*behavior.Result, error) {
	frame, err := capture.DecodeImage(payload)
	if err != nil {
		return nil, err
	}
	defer frame.Close()

	return a.Detect(frame, userID, sessionID)
}

// Detect runs the detection pipeline on one decoded frame: estimate
// landmarks, build the feature vector, evaluate the detector bank, and
// record the result when both user and session are supplied.
//
// Recording is best-effort and asynchronous: a storage failure is logged
// and never affects the returned result.
func (a *App) Detect(frame *gocv.Mat, userID, sessionID string) (*behavior.Result, error) {
	landmarks, err := a.estimator.Estimate(frame)
	if err != nil {
		return nil, fmt.Errorf("estimate landmarks: %w", err)
	}

	vec := feature.Build(landmarks)
	result := a.bank.Evaluate(vec, a.now())

	if userID != "" && sessionID != "" && a.detections != nil {
		a.recordWG.Add(1)
		go a.record(userID, sessionID, result)
	}

	return result, nil
}

// record persists one result. Failures are diagnostics only.
func (a *App) record(userID, sessionID string, result *behavior.Result) {
	defer a.recordWG.Done()

	row := &store.DetectionRow{
		UserID:    userID,
		SessionID: sessionID,
		Score:     result.Score,
		Behaviors: result.Behaviors,
		Timestamp: result.Timestamp,
	}
	if err := a.detections.Insert(row); err != nil {
		log.Printf("Failed to record detection result for user %s: %v", userID, err)
	}
}

// Flush waits for pending result writes to finish. Intended for shutdown
// and tests.
func (a *App) Flush() {
	a.recordWG.Wait()
}

// Close flushes pending writes and releases the estimator.
func (a *App) Close() error {
	a.Flush()
	if a.estimator != nil {
		return a.estimator.Close()
	}
	return nil
}

package session

import (
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/capwave/capwave/internal/config"
)

// TargetRate is the pipeline's canonical sample rate; all capture audio is
// normalized to this rate before it reaches the decoder adapter.
const TargetRate = 16000

// State holds the session's mutable, frequently-read, infrequently-written
// data behind a single RWMutex. Writes occur only on device selection, model
// path update, and stream start/stop; steady-state audio and worker threads
// never touch this lock.
type State struct {
	mu sync.RWMutex

	config Config
	active bool
	device *malgo.Device
	stop   chan struct{}
}

// Config is the in-memory view of session-relevant settings, refreshed from
// disk through internal/config.
type Config struct {
	ActiveModelPath  string
	SelectedDeviceID string
}

// NewState builds a State seeded from persisted configuration.
func NewState(cfg config.Config) *State {
	return &State{
		config: Config{
			ActiveModelPath:  cfg.ActiveModelPath,
			SelectedDeviceID: cfg.AudioDevice.SelectedDeviceID,
		},
	}
}

// Config returns a copy of the current configuration snapshot.
func (s *State) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetModelPath updates the configured model path.
func (s *State) SetModelPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.ActiveModelPath = path
}

// SetSelectedDevice updates the configured input device.
func (s *State) SetSelectedDevice(deviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.SelectedDeviceID = deviceID
}

// IsActive reports whether a transcription session is currently running.
func (s *State) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// markStarted records the running stream and stop signal. Caller must hold
// no other lock.
func (s *State) markStarted(device *malgo.Device, stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.device = device
	s.stop = stop
}

// markStopped clears the running stream and returns what was running, or
// nil/nil if nothing was.
func (s *State) markStopped() (*malgo.Device, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	device, stop := s.device, s.stop
	s.active = false
	s.device = nil
	s.stop = nil
	return device, stop
}

package session

import (
	"testing"

	"github.com/capwave/capwave/internal/config"
)

func TestStateConfigSnapshotIsIndependent(t *testing.T) {
	s := NewState(config.Config{ActiveModelPath: "/models/a.bin"})
	snap := s.Config()
	s.SetModelPath("/models/b.bin")

	if snap.ActiveModelPath != "/models/a.bin" {
		t.Errorf("snapshot mutated: got %q", snap.ActiveModelPath)
	}
	if s.Config().ActiveModelPath != "/models/b.bin" {
		t.Errorf("SetModelPath did not apply")
	}
}

func TestStateActiveLifecycle(t *testing.T) {
	s := NewState(config.Config{})
	if s.IsActive() {
		t.Fatal("new state should not be active")
	}

	stop := make(chan struct{})
	s.markStarted(nil, stop)
	if !s.IsActive() {
		t.Fatal("expected active after markStarted")
	}

	device, gotStop := s.markStopped()
	if device != nil {
		t.Errorf("device = %v, want nil", device)
	}
	if gotStop != stop {
		t.Error("markStopped returned a different stop channel than was stored")
	}
	if s.IsActive() {
		t.Fatal("expected inactive after markStopped")
	}
}

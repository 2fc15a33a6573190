package session

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/capwave/capwave/internal/bridge"
	"github.com/capwave/capwave/internal/config"
	"github.com/capwave/capwave/internal/sttengine"
)

func newTestSupervisor(t *testing.T) (*Supervisor, *State, chan bridge.OutboundMessage) {
	t.Helper()
	state := NewState(config.Config{})
	events := make(chan bridge.OutboundMessage, 8)
	factory := func(modelPath string) (sttengine.Engine, error) {
		t.Fatalf("engine factory should not be called when preconditions fail")
		return nil, nil
	}
	sup := NewSupervisor(nil, state, events, factory, log.New(io.Discard))
	return sup, state, events
}

func TestStartTranscriptionFailsWithoutModelPath(t *testing.T) {
	sup, _, events := newTestSupervisor(t)
	sup.StartTranscription()

	msg := <-events
	n, ok := msg.(bridge.NotificationEvent)
	if !ok {
		t.Fatalf("got %T, want NotificationEvent", msg)
	}
	if n.Notification.Severity != bridge.Error {
		t.Errorf("Severity = %v, want Error", n.Notification.Severity)
	}
	if n.Notification.Text != "Сначала скачайте модель для распознания речи." {
		t.Errorf("Text = %q", n.Notification.Text)
	}
}

func TestStartTranscriptionFailsWithMissingModelFile(t *testing.T) {
	sup, state, events := newTestSupervisor(t)
	state.SetModelPath("/nonexistent/model.bin")

	sup.StartTranscription()
	msg := <-events
	n := msg.(bridge.NotificationEvent)
	if n.Notification.Text != "Скачанная модель распознавания речи повреждена." {
		t.Errorf("Text = %q", n.Notification.Text)
	}
}

func TestStartTranscriptionFailsWithoutDevice(t *testing.T) {
	sup, state, events := newTestSupervisor(t)
	state.SetModelPath(t.TempDir()) // exists, suffices for os.Stat

	sup.StartTranscription()
	msg := <-events
	n := msg.(bridge.NotificationEvent)
	if n.Notification.Text != "Выберите вводное устройство для захвата звука." {
		t.Errorf("Text = %q", n.Notification.Text)
	}
}

func TestStartTranscriptionWarnsWhenAlreadyActive(t *testing.T) {
	sup, state, events := newTestSupervisor(t)
	state.markStarted(nil, make(chan struct{}))

	sup.StartTranscription()
	msg := <-events
	n := msg.(bridge.NotificationEvent)
	if n.Notification.Severity != bridge.Warning {
		t.Errorf("Severity = %v, want Warning", n.Notification.Severity)
	}
}

func TestStopTranscriptionNoopWhenNotActive(t *testing.T) {
	sup, _, _ := newTestSupervisor(t)
	sup.StopTranscription() // must not panic
}

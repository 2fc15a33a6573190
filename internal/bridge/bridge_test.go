package bridge

import "testing"

func TestChannelsRouteCommandsAndEvents(t *testing.T) {
	ch := New(4)

	ch.CollaboratorTx <- StartTranscription{}
	select {
	case msg := <-ch.CoreRx:
		if _, ok := msg.(StartTranscription); !ok {
			t.Fatalf("got %T, want StartTranscription", msg)
		}
	default:
		t.Fatal("expected a message on CoreRx")
	}

	ch.CoreTx <- TranscriptionStateUpdate{DecodeMS: 12, ComposedText: "hi"}
	select {
	case msg := <-ch.CollaboratorRx:
		update, ok := msg.(TranscriptionStateUpdate)
		if !ok {
			t.Fatalf("got %T, want TranscriptionStateUpdate", msg)
		}
		if update.ComposedText != "hi" {
			t.Errorf("ComposedText = %q, want %q", update.ComposedText, "hi")
		}
	default:
		t.Fatal("expected a message on CollaboratorRx")
	}
}

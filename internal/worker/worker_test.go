package worker

import (
	"testing"
	"time"

	"github.com/capwave/capwave/internal/audio"
	"github.com/capwave/capwave/internal/caption"
	"github.com/capwave/capwave/internal/sttengine"
	"github.com/capwave/capwave/internal/sttengine/fake"
)

func TestWorkerEmitsOnComposedTextChange(t *testing.T) {
	handoff := audio.NewHandoffBuffer(16000 * 3)
	eng := &fake.Engine{Responses: [][]sttengine.Segment{
		{{StartCS: 0, EndCS: 10, Text: "hello"}},
	}}
	decoder := NewDecoderAdapter(eng, 16000)
	stabilizer := caption.NewStabilizer(0) // tail_ms=0: everything finalizes immediately

	w := New(handoff, decoder, stabilizer, 16000, 4096, nil)

	loud := make([]float32, decoder.minSamples+decoder.repeatSamples)
	for i := range loud {
		loud[i] = 0.8
	}
	handoff.Push(loud)

	stop := make(chan struct{})
	go w.Run(stop)

	select {
	case update, ok := <-w.Updates():
		if !ok {
			t.Fatal("updates channel closed before emitting")
		}
		if update.Text != "hello" {
			t.Errorf("Text = %q, want %q", update.Text, "hello")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transcript update")
	}

	close(stop)
}

func TestWorkerSkipsEmptyDecodes(t *testing.T) {
	handoff := audio.NewHandoffBuffer(16000 * 3)
	eng := &fake.Engine{} // silence -> no segments ever
	decoder := NewDecoderAdapter(eng, 16000)
	stabilizer := caption.NewStabilizer(1500)

	w := New(handoff, decoder, stabilizer, 16000, 4096, nil)
	handoff.Push(make([]float32, 2000))

	stop := make(chan struct{})
	go w.Run(stop)

	select {
	case update, ok := <-w.Updates():
		if ok {
			t.Fatalf("expected no updates, got %+v", update)
		}
	case <-time.After(150 * time.Millisecond):
		// no update arrived, as expected
	}
	close(stop)
}

package worker

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/capwave/capwave/internal/audio"
	"github.com/capwave/capwave/internal/caption"
)

// dropLogThreshold bounds how often a sustained handoff overflow re-logs:
// only once at least this many additional samples have been dropped since
// the last warning, so a continuous overrun doesn't flood the log.
const dropLogThreshold = 1000

// TranscriptUpdate is the outbound event the worker emits whenever the
// composed caption text changes.
type TranscriptUpdate struct {
	DecodeLatency time.Duration
	Text          string
}

// Worker runs the main transcription loop on a dedicated goroutine/OS
// thread. It owns the decoder adapter, the caption stabilizer, a pull
// buffer, and the running composed-text state.
type Worker struct {
	handoff    *audio.HandoffBuffer
	decoder    *DecoderAdapter
	stabilizer *caption.Stabilizer
	targetRate int

	pullBuf []float32

	totalSamplesSeen int64
	history          []caption.Segment
	active           []caption.Segment
	lastEmitted      string
	lastLoggedDrops  uint64

	updates chan TranscriptUpdate
	errs    chan error
	done    chan struct{}
	log     *log.Logger
}

// New constructs a Worker. pullSize bounds how many samples are drained from
// handoff per loop iteration. logger may be nil, in which case handoff
// overflow goes unlogged.
func New(handoff *audio.HandoffBuffer, decoder *DecoderAdapter, stabilizer *caption.Stabilizer, targetRate, pullSize int, logger *log.Logger) *Worker {
	return &Worker{
		handoff:    handoff,
		decoder:    decoder,
		stabilizer: stabilizer,
		targetRate: targetRate,
		pullBuf:    make([]float32, pullSize),
		updates:    make(chan TranscriptUpdate, 16),
		errs:       make(chan error, 8),
		done:       make(chan struct{}),
		log:        logger,
	}
}

// Updates returns the channel on which composed-text changes are published.
// Closed once Run returns.
func (w *Worker) Updates() <-chan TranscriptUpdate {
	return w.updates
}

// Errors returns the channel on which decode failures the engine reported
// are published, for callers that want to classify and log them. Closed
// once Run returns.
func (w *Worker) Errors() <-chan error {
	return w.errs
}

// Run executes the main loop until stop is closed and the samples still
// queued in the handoff buffer have been processed. After stop is closed, an
// update composed during that drain may be dropped instead of sent, which
// also ends the loop. It must run on its own
// goroutine; callers typically pin it to an OS thread with
// runtime.LockOSThread since decoder inference is CPU-heavy and must not
// starve other goroutines sharing a thread.
func (w *Worker) Run(stop <-chan struct{}) {
	defer close(w.updates)
	defer close(w.errs)

	for {
		select {
		case <-stop:
			if w.handoff.Available() == 0 {
				return
			}
		default:
		}

		pulled := w.handoff.Pop(w.pullBuf)
		if pulled == 0 {
			select {
			case <-stop:
				return
			case <-w.handoff.Notify():
			}
			continue
		}

		w.logDrops()
		w.totalSamplesSeen += int64(pulled)
		w.decoder.Accept(w.pullBuf[:pulled])

		segments, decodeLatency, decodeErr := w.decoder.TryTranscribe()
		if decodeErr != nil {
			select {
			case w.errs <- decodeErr:
			default:
			}
		}

		nowMS := w.totalSamplesSeen * 1000 / int64(w.targetRate)
		update := w.stabilizer.Push(nowMS, segments)
		if update.IsEmpty() {
			continue
		}

		w.history = append(w.history, update.History...)
		w.active = update.Active

		text := caption.Compose(w.history, w.active)
		if text == "" || text == w.lastEmitted {
			continue
		}
		w.lastEmitted = text

		select {
		case w.updates <- TranscriptUpdate{DecodeLatency: decodeLatency, Text: text}:
		case <-stop:
			return
		}
	}
}

// logDrops warns once the handoff buffer has dropped at least
// dropLogThreshold more samples than the last time it was logged, so a
// sustained capture overrun produces periodic warnings instead of silence or
// a flood of per-sample log lines.
func (w *Worker) logDrops() {
	if w.log == nil {
		return
	}
	dc := w.handoff.DropCount()
	if dc > 0 && (w.lastLoggedDrops == 0 || dc-w.lastLoggedDrops >= dropLogThreshold) {
		w.log.Warn("handoff buffer overflow: oldest audio dropped", "total_dropped", dc)
		w.lastLoggedDrops = dc
	}
}

// Package worker runs the transcription worker: a dedicated-thread loop
// that pulls resampled audio off the handoff buffer, decodes it through the
// decoder adapter, stabilizes the resulting captions, and emits composed
// text on change.
package worker

import (
	"math"
	"time"

	"github.com/capwave/capwave/internal/caption"
	"github.com/capwave/capwave/internal/sttengine"
)

const (
	contextLengthMS = 3000
	repeatRunMS     = 500
)

func millisecondsToSamples(ms int64, rate int) int {
	return int(ms * int64(rate) / 1000)
}

// DecoderAdapter wraps an opaque sttengine.Engine with a rolling context
// window, a minimum-sample zero-pad floor, a decode-rate limiter, and a
// silence gate, turning a raw sample stream into timestamped caption
// segments.
//
// The rolling context is held in a fixed-capacity circular buffer
// (ring/ringHead/ringLen) sized to contextSamples at construction: accepting
// new audio never grows or reallocates it, it only advances the head once
// full, evicting the oldest samples in place.
type DecoderAdapter struct {
	engine         sttengine.Engine
	rate           int
	minSamples     int
	contextSamples int
	repeatSamples  int

	ring    []float32 // fixed-capacity circular buffer, len == contextSamples
	ringHead int        // index of the oldest valid sample
	ringLen  int        // number of valid samples currently held, <= len(ring)
	linear   []float32  // pre-allocated contiguous scratch, len == contextSamples

	sinceLastDecode  int
	totalSamplesSeen int64
}

// NewDecoderAdapter constructs an adapter targeting rate samples/sec.
func NewDecoderAdapter(engine sttengine.Engine, rate int) *DecoderAdapter {
	contextSamples := millisecondsToSamples(contextLengthMS, rate)
	return &DecoderAdapter{
		engine:         engine,
		rate:           rate,
		minSamples:     rate / 10,
		contextSamples: contextSamples,
		repeatSamples:  millisecondsToSamples(repeatRunMS, rate),
		ring:           make([]float32, contextSamples),
		linear:         make([]float32, contextSamples),
	}
}

// Accept writes samples into the rolling context ring, evicting the oldest
// samples once the ring is full, and advances the decode-rate and
// total-sample counters. Never allocates: at most len(samples) writes into
// the fixed-size ring.
func (d *DecoderAdapter) Accept(samples []float32) {
	d.sinceLastDecode += len(samples)
	d.totalSamplesSeen += int64(len(samples))

	capRing := len(d.ring)
	for _, s := range samples {
		writeIdx := (d.ringHead + d.ringLen) % capRing
		d.ring[writeIdx] = s
		if d.ringLen < capRing {
			d.ringLen++
		} else {
			d.ringHead = (d.ringHead + 1) % capRing
		}
	}
}

// window copies the ring's current contents into the pre-allocated linear
// scratch buffer (unwrapping it if it wraps past the end of ring) and
// returns the valid prefix. The copy does not allocate.
func (d *DecoderAdapter) window() []float32 {
	if d.ringLen == 0 {
		return d.linear[:0]
	}
	capRing := len(d.ring)
	first := capRing - d.ringHead
	if first > d.ringLen {
		first = d.ringLen
	}
	n := copy(d.linear[:first], d.ring[d.ringHead:d.ringHead+first])
	if n < d.ringLen {
		n += copy(d.linear[n:d.ringLen], d.ring[:d.ringLen-n])
	}
	return d.linear[:n]
}

// TryTranscribe attempts a decode pass, returning the segments the engine
// produced (already mapped to absolute session timestamps), the wall-clock
// time spent decoding, and any error the engine returned. Returns
// immediately with no segments and a nil error if not enough new audio has
// accumulated since the last attempt, or if the candidate window is
// effectively silent.
func (d *DecoderAdapter) TryTranscribe() ([]caption.Segment, time.Duration, error) {
	if d.sinceLastDecode < d.repeatSamples {
		return nil, 0, nil
	}

	start := time.Now()

	win := d.window()
	var slice []float32
	if len(win) >= d.minSamples {
		slice = win
	} else {
		for i := len(win); i < d.minSamples; i++ {
			d.linear[i] = 0
		}
		slice = d.linear[:d.minSamples]
	}

	rms := rmsOf(slice)
	if rms == 0 || 20*math.Log10(rms) <= -60 {
		d.sinceLastDecode = 0
		return nil, 0, nil
	}

	windowStartMS := (d.totalSamplesSeen - int64(len(slice))) * 1000 / int64(d.rate)

	engineSegments, err := d.engine.Decode(slice, 0)
	if err != nil {
		d.sinceLastDecode = 0
		return nil, time.Since(start), err
	}

	segments := make([]caption.Segment, 0, len(engineSegments))
	for _, seg := range engineSegments {
		text := seg.Text
		if trimmedEmpty(text) {
			continue
		}
		segments = append(segments, caption.Segment{
			StartMS: windowStartMS + seg.StartCS*10,
			EndMS:   windowStartMS + seg.EndCS*10,
			Text:    text,
		})
	}

	d.sinceLastDecode = 0
	return segments, time.Since(start), nil
}

func rmsOf(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range samples {
		f := float64(s)
		sumSq += f * f
	}
	return math.Sqrt(sumSq / float64(len(samples)))
}

func trimmedEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

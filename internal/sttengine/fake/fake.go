// Package fake provides a deterministic sttengine.Engine double for tests
// that exercise the decoder adapter and above without a real model.
package fake

import "github.com/capwave/capwave/internal/sttengine"

// Engine returns canned segments for each Decode call in order, looping the
// last entry once exhausted. It never returns an error unless Err is set.
type Engine struct {
	Responses [][]sttengine.Segment
	Err       error

	calls  int
	Inputs [][]float32 // records each window handed to Decode, for assertions
}

// Decode implements sttengine.Engine.
func (e *Engine) Decode(samples []float32, offsetMS int64) ([]sttengine.Segment, error) {
	_ = offsetMS
	cp := make([]float32, len(samples))
	copy(cp, samples)
	e.Inputs = append(e.Inputs, cp)

	if e.Err != nil {
		return nil, e.Err
	}
	if len(e.Responses) == 0 {
		return nil, nil
	}
	idx := e.calls
	if idx >= len(e.Responses) {
		idx = len(e.Responses) - 1
	}
	e.calls++
	return e.Responses[idx], nil
}

// Close implements sttengine.Engine.
func (e *Engine) Close() {}

// Calls reports how many times Decode has been invoked.
func (e *Engine) Calls() int { return len(e.Inputs) }

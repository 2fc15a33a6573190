package audio

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ResamplerError distinguishes a caller input-shape mistake from an internal
// resampling failure so upstream code can tell the two apart.
type ResamplerError struct {
	Expected int
	Actual   int
	Internal error
}

func (e *ResamplerError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("resample: %v", e.Internal)
	}
	return fmt.Sprintf("resample: invalid input length: expected %d samples, got %d", e.Expected, e.Actual)
}

// Resampler converts a continuous mono audio stream from one fixed sample
// rate to another, emitting resampled output through a callback. No
// implementation allocates during Process; construction may allocate freely
// and must happen off the real-time thread.
type Resampler interface {
	// Process consumes input and invokes callback zero or more times with
	// contiguous slices of resampled output. Returns the total number of
	// output samples produced.
	Process(input []float32, callback func([]float32)) (int, error)
}

// fftBlockResampler performs a single fixed-ratio FFT resample of one input
// block: forward real FFT, truncate or zero-pad the spectrum to the target
// length scaled by the rate ratio, inverse FFT. It is the shared core used by
// both FixedBlockResampler and StreamingResampler.
type fftBlockResampler struct {
	fwd            *fourier.FFT
	outFFT         *fourier.FFT
	inRate         int
	outRate        int
	blockSize      int
	outLen         int
	outSpectrumLen int
	spectrum       []complex128
	resized        []complex128
	scratch        []float64
	carry          int64 // fractional-output carry accumulator, in units of outRate
}

func newFFTBlockResampler(inRate, outRate, blockSize int) (*fftBlockResampler, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("resample: rates must be positive (in=%d out=%d)", inRate, outRate)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("resample: block size must be positive, got %d", blockSize)
	}
	outLen := int(int64(blockSize) * int64(outRate) / int64(inRate))
	if outLen <= 0 {
		outLen = 1
	}
	outSpectrumLen := outLen/2 + 1
	return &fftBlockResampler{
		fwd:            fourier.NewFFT(blockSize),
		outFFT:         fourier.NewFFT(outLen),
		inRate:         inRate,
		outRate:        outRate,
		blockSize:      blockSize,
		outLen:         outLen,
		outSpectrumLen: outSpectrumLen,
		spectrum:       make([]complex128, blockSize/2+1),
		resized:        make([]complex128, outSpectrumLen),
		scratch:        make([]float64, blockSize),
	}, nil
}

// inputFramesNext reports how many input samples the next Process call
// expects, mirroring rubato's input_frames_next: always the fixed block
// length, which does not change between calls.
func (r *fftBlockResampler) inputFramesNext() int {
	return r.blockSize
}

// runBlock consumes exactly blockSize samples from block and writes the
// resampled result into out, returning the number of valid samples written.
// out must have capacity for the oversized FFT-derived length; runBlock
// trims the result to the exact number of samples owed by the fractional
// carry accumulator so that, across many calls, total output converges to
// floor(N*outRate/inRate) within one sample.
func (r *fftBlockResampler) runBlock(block []float32, out []float64) int {
	n := len(block)
	if n > len(r.scratch) {
		n = len(r.scratch)
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = float64(block[i])
	}
	for i := n; i < len(r.scratch); i++ {
		r.scratch[i] = 0
	}
	coeffs := r.fwd.Coefficients(r.spectrum, r.scratch)

	clear(r.resized)
	copyLen := len(coeffs)
	if copyLen > r.outSpectrumLen {
		copyLen = r.outSpectrumLen
	}
	scale := float64(r.outLen) / float64(r.blockSize)
	for i := 0; i < copyLen; i++ {
		r.resized[i] = coeffs[i] * complex(scale, 0)
	}

	seq := r.outFFT.Sequence(out[:r.outLen], r.resized)

	// Bresenham-style carry: total owed output for N input samples is
	// N*outRate/inRate exactly; track the remainder across calls so the
	// cumulative sample count never drifts by more than one.
	r.carry += int64(r.outLen) * int64(r.inRate)
	owed := r.carry / int64(r.outRate)
	r.carry -= owed * int64(r.outRate)
	if owed > int64(len(seq)) {
		owed = int64(len(seq))
	}
	return int(owed)
}

// FixedBlockResampler resamples audio delivered in a constant, known block
// size. It rejects any call whose input length differs from that size.
type FixedBlockResampler struct {
	core   *fftBlockResampler
	inBuf  []float32
	outBuf []float64
	out32  []float32
}

// NewFixedBlockResampler constructs a resampler that expects exactly
// blockSize mono samples per Process call. Allocates; call during setup, not
// from the audio callback.
func NewFixedBlockResampler(originalRate, targetRate, blockSize uint32) (*FixedBlockResampler, error) {
	core, err := newFFTBlockResampler(int(originalRate), int(targetRate), int(blockSize))
	if err != nil {
		return nil, err
	}
	return &FixedBlockResampler{
		core:   core,
		inBuf:  make([]float32, blockSize),
		outBuf: make([]float64, core.outLen),
		out32:  make([]float32, core.outLen),
	}, nil
}

// Process implements Resampler. input must have exactly the configured block
// length; any other length returns a *ResamplerError.
func (r *FixedBlockResampler) Process(input []float32, callback func([]float32)) (int, error) {
	expected := r.core.inputFramesNext()
	if len(input) != expected {
		return 0, &ResamplerError{Expected: expected, Actual: len(input)}
	}
	written := r.core.runBlock(input, r.outBuf)
	if written > 0 {
		for i := 0; i < written; i++ {
			r.out32[i] = float32(r.outBuf[i])
		}
		callback(r.out32[:written])
	}
	return written, nil
}

// streamingQueueBlocks sizes the pre-allocated queue as a multiple of the
// core block size, generous enough that a steady stream of same-sized input
// chunks never forces queue to grow past its initial capacity.
const streamingQueueBlocks = 8

// StreamingResampler resamples audio arriving in arbitrary, possibly partial
// block sizes by buffering internally in a fixed-capacity FIFO and feeding
// the FFT core whenever enough samples have accumulated.
type StreamingResampler struct {
	core   *fftBlockResampler
	queue  []float32 // len tracks valid data; cap is fixed at construction
	qHead  int
	outBuf []float64
	out32  []float32
	log    *log.Logger
}

// NewStreamingResampler constructs a streaming FFT resampler. blockSize
// controls the internal FFT processing granularity and therefore latency; it
// does not constrain the sizes callers may pass to Process. logger may be
// nil, in which case a rare queue-growth event is not logged.
func NewStreamingResampler(originalRate, targetRate, blockSize uint32, logger *log.Logger) (*StreamingResampler, error) {
	core, err := newFFTBlockResampler(int(originalRate), int(targetRate), int(blockSize))
	if err != nil {
		return nil, err
	}
	return &StreamingResampler{
		core:   core,
		queue:  make([]float32, 0, int(blockSize)*streamingQueueBlocks),
		outBuf: make([]float64, core.outLen),
		out32:  make([]float32, core.outLen),
		log:    logger,
	}, nil
}

// Process implements Resampler. input may be any length, including zero.
func (r *StreamingResampler) Process(input []float32, callback func([]float32)) (int, error) {
	r.compact()
	if len(r.queue)+len(input) > cap(r.queue) {
		if r.log != nil {
			r.log.Warn("resample: streaming queue grew past its initial capacity", "cap", cap(r.queue), "needed", len(r.queue)+len(input))
		}
		grown := make([]float32, len(r.queue), len(r.queue)+len(input))
		copy(grown, r.queue)
		r.queue = grown
	}
	r.queue = append(r.queue, input...)

	totalWritten := 0
	for {
		wanted := r.core.inputFramesNext()
		if len(r.queue)-r.qHead < wanted {
			break
		}
		block := r.queue[r.qHead : r.qHead+wanted]
		written := r.core.runBlock(block, r.outBuf)
		r.qHead += wanted

		if written > 0 {
			for i := 0; i < written; i++ {
				r.out32[i] = float32(r.outBuf[i])
			}
			callback(r.out32[:written])
			totalWritten += written
		}
	}

	return totalWritten, nil
}

// compact shifts unconsumed tail data to the front of the fixed backing
// array, reclaiming the head of the queue in place without reallocating.
func (r *StreamingResampler) compact() {
	if r.qHead == 0 {
		return
	}
	remaining := len(r.queue) - r.qHead
	copy(r.queue, r.queue[r.qHead:])
	r.queue = r.queue[:remaining]
	r.qHead = 0
}

// RMSDB computes the root-mean-square amplitude of a mono sample block,
// expressed as dB relative to full scale.
func RMSDB(samples []float32) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sumSq float64
	for _, s := range samples {
		f := float64(s)
		sumSq += f * f
	}
	mean := sumSq / float64(len(samples))
	if mean <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(mean)
}

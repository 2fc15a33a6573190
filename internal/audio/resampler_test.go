package audio

import (
	"math"
	"testing"
)

func TestFixedBlockResamplerRejectsWrongLength(t *testing.T) {
	r, err := NewFixedBlockResampler(48000, 16000, 480)
	if err != nil {
		t.Fatalf("NewFixedBlockResampler: %v", err)
	}
	_, err = r.Process(make([]float32, 10), func([]float32) {})
	if err == nil {
		t.Fatal("expected ResamplerError for wrong input length")
	}
	var rerr *ResamplerError
	if !isResamplerError(err, &rerr) {
		t.Fatalf("expected *ResamplerError, got %T", err)
	}
	if rerr.Expected != 480 {
		t.Errorf("Expected = %d, want 480", rerr.Expected)
	}
}

func isResamplerError(err error, target **ResamplerError) bool {
	if e, ok := err.(*ResamplerError); ok {
		*target = e
		return true
	}
	return false
}

func TestFixedBlockResamplerThroughputRatio(t *testing.T) {
	const inRate, outRate, block = 48000, 16000, 480
	r, err := NewFixedBlockResampler(inRate, outRate, block)
	if err != nil {
		t.Fatalf("NewFixedBlockResampler: %v", err)
	}

	in := make([]float32, block)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / inRate))
	}

	const blocks = 100
	total := 0
	for i := 0; i < blocks; i++ {
		n, err := r.Process(in, func(out []float32) {
			total += len(out)
		})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		_ = n
	}

	expected := blocks * block * outRate / inRate
	if diff := total - expected; diff < -1 || diff > 1 {
		t.Errorf("total output = %d, want within 1 of %d", total, expected)
	}
}

func TestStreamingResamplerAcceptsArbitraryChunking(t *testing.T) {
	const inRate, outRate, block = 44100, 16000, 512
	r, err := NewStreamingResampler(inRate, outRate, block, nil)
	if err != nil {
		t.Fatalf("NewStreamingResampler: %v", err)
	}

	total := 0
	chunk := make([]float32, 37) // deliberately not a divisor of block
	for i := 0; i < 500; i++ {
		if _, err := r.Process(chunk, func(out []float32) { total += len(out) }); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	expected := 500 * len(chunk) * outRate / inRate
	if diff := total - expected; diff < -2 || diff > 2 {
		t.Errorf("total output = %d, want near %d", total, expected)
	}
}

func TestRMSDBSilence(t *testing.T) {
	zeros := make([]float32, 100)
	if got := RMSDB(zeros); !math.IsInf(got, -1) {
		t.Errorf("RMSDB(zeros) = %v, want -Inf", got)
	}
}

func TestRMSDBFullScale(t *testing.T) {
	full := make([]float32, 100)
	for i := range full {
		full[i] = 1.0
	}
	if got := RMSDB(full); math.Abs(got-0) > 1e-6 {
		t.Errorf("RMSDB(full scale) = %v, want 0", got)
	}
}

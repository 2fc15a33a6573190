package config

import "testing"

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want uint32
	}{
		{44100, 16000, 100},
		{48000, 16000, 16000},
		{7, 13, 1},
		{0, 5, 5},
	}
	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.want {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNearestMultiple(t *testing.T) {
	tests := []struct {
		base, denom, want uint32
	}{
		{4097, 3, 4098},
		{4096, 3, 4095},
		{10, 5, 10},
		{12, 5, 10},
		{13, 5, 15},
	}
	for _, tt := range tests {
		if got := NearestMultiple(tt.base, tt.denom); got != tt.want {
			t.Errorf("NearestMultiple(%d, %d) = %d, want %d", tt.base, tt.denom, got, tt.want)
		}
	}
}

func TestTargetBufferFrames(t *testing.T) {
	// original=44100, target=16000 -> gcd=100 -> denominator=441
	got := TargetBufferFrames(2048, 44100, 16000)
	want := NearestMultiple(2048, 441)
	if got != want {
		t.Errorf("TargetBufferFrames = %d, want %d", got, want)
	}
}

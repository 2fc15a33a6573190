package config

// GCD computes the greatest common divisor of a and b via the Euclidean
// algorithm.
func GCD(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// NearestMultiple returns the integer nearest to base that is evenly
// divisible by denominator, rounding half up.
func NearestMultiple(base, denominator uint32) uint32 {
	remainder := base % denominator
	if remainder*2 < denominator {
		return base - remainder
	}
	return base - remainder + denominator
}

// TargetBufferFrames derives the capture buffer size a device should be
// opened with, so that the frame count divides evenly into the resampler's
// target-rate-denominated block size. deviceBufferSize is the device's
// reported (or assumed) native buffer size in frames; originalRate is the
// device's native sample rate; targetRate is the pipeline's target rate
// (16000).
func TargetBufferFrames(deviceBufferSize, originalRate, targetRate uint32) uint32 {
	denom := GCD(originalRate, targetRate)
	return NearestMultiple(deviceBufferSize, originalRate/denom)
}

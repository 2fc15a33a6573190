//go:build linux

// Package sherpa re-exports the platform-specific sherpa-onnx bindings so
// the rest of the engine package can import a single, build-tag-free name.
package sherpa

import (
	impl "github.com/k2-fsa/sherpa-onnx-go-linux"
)

type OfflineRecognizer = impl.OfflineRecognizer
type OfflineRecognizerConfig = impl.OfflineRecognizerConfig
type OfflineStream = impl.OfflineStream
type OfflineRecognizerResult = impl.OfflineRecognizerResult

var NewOfflineRecognizer = impl.NewOfflineRecognizer
var DeleteOfflineRecognizer = impl.DeleteOfflineRecognizer
var NewOfflineStream = impl.NewOfflineStream
var DeleteOfflineStream = impl.DeleteOfflineStream

// DefaultProvider returns the recommended inference provider for this
// platform: "cuda" if an NVIDIA GPU is detected, otherwise "cpu".
func DefaultProvider() string {
	if HasNvidiaGPU() {
		return "cuda"
	}
	return "cpu"
}

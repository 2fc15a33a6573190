//go:build darwin

package sherpa

import (
	impl "github.com/k2-fsa/sherpa-onnx-go-macos"
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
// platform. macOS builds use coreml, the accelerated path sherpa-onnx
// exposes on Apple hardware.
func DefaultProvider() string {
	return "coreml"
}

package session

import "errors"

// ErrorKind classifies a session-level failure so callers can apply the
// propagation policy (abort pre-session, log-and-drop in-session, fatal to
// start, or config-I/O-only) without string matching.
type ErrorKind int

const (
	DeviceEnumeration ErrorKind = iota
	DeviceLookup
	StreamConstruction
	ResamplerConstruction
	DecoderLoad
	DecoderRuntime
	ConfigIO
	SessionLifecycle
)

func (k ErrorKind) String() string {
	switch k {
	case DeviceEnumeration:
		return "device_enumeration"
	case DeviceLookup:
		return "device_lookup"
	case StreamConstruction:
		return "stream_construction"
	case ResamplerConstruction:
		return "resampler_construction"
	case DecoderLoad:
		return "decoder_load"
	case DecoderRuntime:
		return "decoder_runtime"
	case ConfigIO:
		return "config_io"
	case SessionLifecycle:
		return "session_lifecycle"
	default:
		return "unknown"
	}
}

var (
	ErrNoModelConfigured = errors.New("no speech recognition model configured")
	ErrModelFileMissing  = errors.New("configured speech recognition model file is missing")
	ErrNoDeviceSelected  = errors.New("no audio input device selected")
	ErrSessionNotActive  = errors.New("session is not active")
	ErrSessionAlreadyOn  = errors.New("session is already active")
)

// Error pairs a Kind with the underlying cause, the way callers that need to
// branch on classification (rather than just log-and-continue) can type
// assert.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapErr builds an *Error from a kind and cause.
func WrapErr(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

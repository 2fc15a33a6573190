// Package bridge defines the in-process message boundary between the
// session supervisor and a GUI collaborator: paired buffered channels
// carrying inbound commands and outbound events, mirroring the original
// backend's mpsc-based bridge.
package bridge

// Severity classifies a Notification by intent and visual styling.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// Notification is a user-visible message pushed from the supervisor to the
// GUI collaborator.
type Notification struct {
	Severity Severity
	Text     string
}

// AudioDeviceInfo describes one enumerated input device.
type AudioDeviceInfo struct {
	ID          string
	Description string
	Selected    bool
}

// InboundMessage is implemented by every command a GUI collaborator may
// send into the core.
type InboundMessage interface{ inbound() }

// StartTranscription requests that the session begin, if preconditions are
// met.
type StartTranscription struct{}

// SelectAudioDevice persists a device selection and updates session state.
type SelectAudioDevice struct {
	DeviceID string
}

// AudioDevicesListRequest asks for the current input device list.
type AudioDevicesListRequest struct{}

// DownloadModel is recognized as an inbound message type but handling it is
// an external collaborator's responsibility; the core only plumbs it.
type DownloadModel struct {
	ModelID string
}

// ConfigRequest is recognized as an inbound message type but, like
// DownloadModel, is handled outside this core.
type ConfigRequest struct{}

func (StartTranscription) inbound()      {}
func (SelectAudioDevice) inbound()       {}
func (AudioDevicesListRequest) inbound() {}
func (DownloadModel) inbound()           {}
func (ConfigRequest) inbound()           {}

// OutboundMessage is implemented by every event the core may push to a GUI
// collaborator.
type OutboundMessage interface{ outbound() }

// TranscriptionStarted confirms a session began.
type TranscriptionStarted struct{}

// TranscriptionStateUpdate carries a composed caption update.
type TranscriptionStateUpdate struct {
	DecodeMS     int64
	ComposedText string
}

// NotificationEvent wraps a Notification for outbound delivery.
type NotificationEvent struct {
	Notification Notification
}

// AudioDevicesListResponse answers AudioDevicesListRequest.
type AudioDevicesListResponse struct {
	Devices []AudioDeviceInfo
}

// DownloadProgressUpdate is recognized as an outbound message type; emitting
// it is an external collaborator's responsibility.
type DownloadProgressUpdate struct {
	DownloadedBytes uint64
	TotalBytes      uint64
	Speed           float64
	RemainingTime   float64
}

func (TranscriptionStarted) outbound()      {}
func (TranscriptionStateUpdate) outbound()  {}
func (NotificationEvent) outbound()         {}
func (AudioDevicesListResponse) outbound()  {}
func (DownloadProgressUpdate) outbound()    {}

// DefaultChannelBuffer is the default capacity for each direction of a
// Channels pair.
const DefaultChannelBuffer = 64

// Channels is one in-process, buffered channel pair per direction, owned
// jointly by the supervisor and its GUI collaborator. Core holds CoreRx/
// CoreTx; the collaborator holds the opposite ends.
type Channels struct {
	CoreRx <-chan InboundMessage
	CoreTx chan<- OutboundMessage

	CollaboratorRx <-chan OutboundMessage
	CollaboratorTx chan<- InboundMessage
}

// New constructs a Channels pair with the given per-direction buffer
// capacity.
func New(buffer int) Channels {
	toCore := make(chan InboundMessage, buffer)
	toCollaborator := make(chan OutboundMessage, buffer)
	return Channels{
		CoreRx:         toCore,
		CoreTx:         toCollaborator,
		CollaboratorRx: toCollaborator,
		CollaboratorTx: toCore,
	}
}

// NewDefault constructs a Channels pair using DefaultChannelBuffer.
func NewDefault() Channels {
	return New(DefaultChannelBuffer)
}

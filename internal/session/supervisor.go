package session

import (
	"os"
	"runtime"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/malgo"

	"github.com/capwave/capwave/internal/audio"
	"github.com/capwave/capwave/internal/bridge"
	"github.com/capwave/capwave/internal/caption"
	"github.com/capwave/capwave/internal/config"
	"github.com/capwave/capwave/internal/sttengine"
	"github.com/capwave/capwave/internal/worker"
)

// stabilizerWindowMS is the caption stabilizer's tail window: audio newer
// than this many milliseconds remains revisable.
const stabilizerWindowMS = 1500

// handoffSeconds sizes the handoff buffer in seconds of target-rate audio.
const handoffSeconds = 3

// EngineFactory builds a fresh decoder engine bound to modelPath. Supervisor
// takes this as a dependency so tests can substitute sttengine/fake.Engine
// without linking the native sherpa-onnx backend.
type EngineFactory func(modelPath string) (sttengine.Engine, error)

// Supervisor orchestrates session start/stop: resolving device settings,
// building the capture/SRC/handoff pipeline, spawning the transcription
// worker, and reporting outcomes through a bridge.Channels.
type Supervisor struct {
	ctx     *malgo.AllocatedContext
	state   *State
	events  chan<- bridge.OutboundMessage
	engines EngineFactory
	log     *log.Logger
}

// NewSupervisor constructs a Supervisor. ctx is a malgo audio context owned
// by the caller for the process lifetime.
func NewSupervisor(ctx *malgo.AllocatedContext, state *State, events chan<- bridge.OutboundMessage, engines EngineFactory, logger *log.Logger) *Supervisor {
	return &Supervisor{ctx: ctx, state: state, events: events, engines: engines, log: logger}
}

func (s *Supervisor) notify(severity bridge.Severity, text string) {
	s.events <- bridge.NotificationEvent{Notification: bridge.Notification{Severity: severity, Text: text}}
}

// fail logs a classified session error and surfaces its user-facing text as
// an error notification. Kind drives the log field so operators can filter
// by failure category without string-matching the message.
func (s *Supervisor) fail(kind ErrorKind, err error, text string) {
	s.log.Error(text, "kind", kind.String(), "err", WrapErr(kind, err))
	s.notify(bridge.Error, text)
}

// StartTranscription implements the session supervisor's entry point.
// Preconditions (missing model, missing model file, no device selected)
// each surface a Notification{Error} and abort without starting anything.
func (s *Supervisor) StartTranscription() {
	if s.state.IsActive() {
		s.log.Warn("Транскрипция уже запущена.", "kind", SessionLifecycle.String(), "err", WrapErr(SessionLifecycle, ErrSessionAlreadyOn))
		s.notify(bridge.Warning, "Транскрипция уже запущена.")
		return
	}

	cfg := s.state.Config()

	if cfg.ActiveModelPath == "" {
		s.fail(DecoderLoad, ErrNoModelConfigured, "Сначала скачайте модель для распознания речи.")
		return
	}
	if _, err := os.Stat(cfg.ActiveModelPath); err != nil {
		s.fail(DecoderLoad, ErrModelFileMissing, "Скачанная модель распознавания речи повреждена.")
		return
	}
	if cfg.SelectedDeviceID == "" {
		s.fail(DeviceLookup, ErrNoDeviceSelected, "Выберите вводное устройство для захвата звука.")
		return
	}

	deviceID, err := resolveDeviceID(s.ctx, cfg.SelectedDeviceID)
	if err != nil {
		s.fail(DeviceEnumeration, err, "Выбранное устройство записи звука недоступно.")
		return
	}

	nativeRate, nativeChannels, err := probeDeviceFormat(s.ctx, deviceID)
	if err != nil {
		s.fail(StreamConstruction, err, "Не удалось опросить устройство записи звука.")
		return
	}

	bufferFrames := config.TargetBufferFrames(4096, nativeRate, TargetRate)

	src, err := audio.NewStreamingResampler(nativeRate, TargetRate, bufferFrames, s.log)
	if err != nil {
		s.fail(ResamplerConstruction, err, "Не удалось настроить преобразование частоты дискретизации.")
		return
	}

	handoff := audio.NewHandoffBuffer(handoffSeconds * TargetRate)

	engine, err := s.engines(cfg.ActiveModelPath)
	if err != nil {
		s.fail(DecoderLoad, err, "Не удалось загрузить модель распознавания речи.")
		return
	}

	decoder := worker.NewDecoderAdapter(engine, TargetRate)
	stabilizer := caption.NewStabilizer(stabilizerWindowMS)
	w := worker.New(handoff, decoder, stabilizer, TargetRate, int(bufferFrames), s.log)

	stop := make(chan struct{})
	go s.runWorker(w, stop, engine)

	cb := audio.NewCaptureCallback(int(bufferFrames), int(nativeChannels), src, handoff, s.log)
	deviceSettings := audio.DeviceSettings{
		DeviceID:     deviceID,
		SampleRate:   nativeRate,
		Channels:     nativeChannels,
		BufferFrames: bufferFrames,
	}
	device, err := audio.OpenInputStream(s.ctx, deviceSettings, cb)
	if err != nil {
		close(stop)
		engine.Close()
		s.fail(StreamConstruction, err, "Не удалось открыть поток записи звука.")
		return
	}

	s.state.markStarted(device, stop)
	s.events <- bridge.TranscriptionStarted{}
}

// runWorker starts the worker loop on a goroutine pinned to an OS thread
// (decoder inference is CPU-heavy and must not starve other goroutines
// sharing a thread) and forwards worker updates to the bridge until the
// worker loop exits. Decode failures are an
// in-session transient condition: per the propagation policy they're logged
// and dropped rather than surfaced to the bridge, so a single bad decode
// never aborts the session.
func (s *Supervisor) runWorker(w *worker.Worker, stop <-chan struct{}, engine sttengine.Engine) {
	defer engine.Close()

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		w.Run(stop)
	}()

	updates := w.Updates()
	errs := w.Errors()
	for updates != nil || errs != nil {
		select {
		case update, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			s.events <- bridge.TranscriptionStateUpdate{
				DecodeMS:     update.DecodeLatency.Milliseconds(),
				ComposedText: update.Text,
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.log.Error("transcription decode failed", "kind", DecoderRuntime.String(), "err", WrapErr(DecoderRuntime, err))
		}
	}
}

// StopTranscription tears down a running session: dropping the capture
// stream (which stops the callback) and closing the worker's stop channel
// (the worker drains remaining buffered audio and exits on its own).
func (s *Supervisor) StopTranscription() {
	device, stop := s.state.markStopped()
	if device == nil {
		s.log.Debug("StopTranscription called with no active session", "kind", SessionLifecycle.String(), "err", WrapErr(SessionLifecycle, ErrSessionNotActive))
		return
	}
	device.Uninit()
	close(stop)
}

// resolveDeviceID looks up the enumerated capture device matching
// selectedID by its display name. Falls back to the platform default device
// (nil ID) if selectedID is empty or not found among enumerated devices,
// matching miniaudio's convention that a nil device ID opens the default.
func resolveDeviceID(ctx *malgo.AllocatedContext, selectedID string) (unsafe.Pointer, error) {
	devices, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].Name() == selectedID {
			return devices[i].ID.Pointer(), nil
		}
	}
	return nil, nil
}

// probeDeviceFormat opens a short-lived device against deviceID using
// malgo's default negotiated config and reads back the sample rate it was
// actually granted, mirroring the teacher's temp-device query pattern.
// Channel count is fixed at 1 (mono capture): the device is probed and later
// opened with one channel, so miniaudio delivers mono frames and the capture
// callback's downmix is a single-channel copy. The device's native channel
// count is not probed.
func probeDeviceFormat(ctx *malgo.AllocatedContext, deviceID unsafe.Pointer) (rate, channels uint32, err error) {
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = 1
	if deviceID != nil {
		deviceConfig.Capture.DeviceID = deviceID
	}

	tempDevice, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{})
	if err != nil {
		return 0, 0, err
	}
	rate = tempDevice.SampleRate()
	tempDevice.Uninit()

	if rate == 0 {
		rate = TargetRate
	}
	return rate, 1, nil
}

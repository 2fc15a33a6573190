package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/malgo"
)

// CaptureCallback processes one interleaved buffer from the real-time audio
// thread. It must not allocate, lock, or perform I/O on its hot path: all
// scratch buffers are pre-sized at construction and the SRC's callback feeds
// directly into a handoff buffer's lock-free Push.
type CaptureCallback struct {
	blockFrames int
	channels    int
	mono        []float32 // pre-sized downmix accumulator, length blockFrames
	src         Resampler
	handoff     *HandoffBuffer
	log         *log.Logger
}

// NewCaptureCallback builds a callback that downmixes blockFrames*channels
// interleaved samples per invocation, resamples through src, and pushes the
// result into handoff. Allocates; must run during session setup.
func NewCaptureCallback(blockFrames, channels int, src Resampler, handoff *HandoffBuffer, logger *log.Logger) *CaptureCallback {
	return &CaptureCallback{
		blockFrames: blockFrames,
		channels:    channels,
		mono:        make([]float32, blockFrames),
		src:         src,
		handoff:     handoff,
		log:         logger,
	}
}

// OnSamples is invoked per device buffer with raw interleaved float32
// samples. It verifies the buffer shape, downmixes, and resamples; any
// failure is logged and the callback returns without advancing state,
// leaving the stream running for the next buffer.
func (c *CaptureCallback) OnSamples(interleaved []float32) {
	if len(interleaved) != c.blockFrames*c.channels {
		c.log.Warn("capture: unexpected buffer length", "expected", c.blockFrames*c.channels, "actual", len(interleaved))
		return
	}
	if err := Downmix(c.mono, interleaved, c.channels); err != nil {
		c.log.Warn("capture: downmix failed", "err", err)
		return
	}
	if _, err := c.src.Process(c.mono, func(out []float32) {
		c.handoff.Push(out)
	}); err != nil {
		c.log.Warn("capture: resample failed, dropping buffer", "err", err)
		return
	}
}

// malgoDeviceCallback wires a *CaptureCallback into malgo's device data
// callback convention: raw little-endian float32 PCM bytes in, nothing out
// (capture-only device). Allocation-free on the steady path aside from the
// one-time interleaved slice reused across calls.
type malgoDeviceCallback struct {
	cb          *CaptureCallback
	interleaved []float32
}

func newMalgoDeviceCallback(cb *CaptureCallback, maxFrames, channels int) *malgoDeviceCallback {
	return &malgoDeviceCallback{
		cb:          cb,
		interleaved: make([]float32, maxFrames*channels),
	}
}

func (m *malgoDeviceCallback) onData(_ []byte, input []byte, frameCount uint32) {
	_ = frameCount
	floatsNeeded := len(input) / 4
	if cap(m.interleaved) < floatsNeeded {
		m.interleaved = make([]float32, floatsNeeded)
	}
	buf := m.interleaved[:floatsNeeded]
	for i := 0; i < floatsNeeded; i++ {
		bits := binary.LittleEndian.Uint32(input[i*4 : i*4+4])
		buf[i] = math.Float32frombits(bits)
	}
	m.cb.OnSamples(buf)
}

// DeviceSettings describes the resolved input device configuration used to
// open a capture stream. DeviceID is nil to request the platform default
// device, matching miniaudio's convention.
type DeviceSettings struct {
	DeviceID     unsafe.Pointer
	SampleRate   uint32
	Channels     uint32
	BufferFrames uint32
}

// OpenInputStream constructs and starts a malgo capture device feeding cb.
// The caller owns the returned device and must call Stop/Uninit on it during
// session teardown.
func OpenInputStream(ctx *malgo.AllocatedContext, settings DeviceSettings, cb *CaptureCallback) (*malgo.Device, error) {
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = settings.Channels
	deviceConfig.SampleRate = settings.SampleRate
	deviceConfig.PeriodSizeInFrames = settings.BufferFrames
	if settings.DeviceID != nil {
		deviceConfig.Capture.DeviceID = settings.DeviceID
	}

	wire := newMalgoDeviceCallback(cb, int(settings.BufferFrames), int(settings.Channels))
	deviceCallbacks := malgo.DeviceCallbacks{
		Data: wire.onData,
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return nil, fmt.Errorf("capture: init device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, fmt.Errorf("capture: start device: %w", err)
	}
	return device, nil
}

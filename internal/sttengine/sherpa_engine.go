package sttengine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/capwave/capwave/internal/sttengine/sherpa"
)

// SherpaConfig configures the sherpa-onnx-backed Engine.
type SherpaConfig struct {
	Encoder    string
	Decoder    string
	Tokens     string
	Language   string // "auto" maps to sherpa's language auto-detection
	SampleRate int
	NumThreads int
	Provider   string // "", defaults to sherpa.DefaultProvider()
	Debug      bool
}

// WhisperConfigFromModelDir derives the encoder/decoder/tokens paths sherpa's
// offline Whisper backend requires from a single model directory, the same
// fixed-layout convention the teacher's internal/config.applyModelPaths uses
// for its own ModelDir: <dir>/whisper/whisper-small-{encoder,decoder}.int8.onnx
// and <dir>/whisper/whisper-small-tokens.txt.
func WhisperConfigFromModelDir(modelDir string, sampleRate int, language string) SherpaConfig {
	whisperDir := filepath.Join(modelDir, "whisper")
	return SherpaConfig{
		Encoder:    filepath.Join(whisperDir, "whisper-small-encoder.int8.onnx"),
		Decoder:    filepath.Join(whisperDir, "whisper-small-decoder.int8.onnx"),
		Tokens:     filepath.Join(whisperDir, "whisper-small-tokens.txt"),
		Language:   language,
		SampleRate: sampleRate,
	}
}

// SherpaEngine drives sherpa-onnx's offline Whisper recognizer. One
// OfflineStream is created and torn down per Decode call, matching the
// teacher's TranscribeSegment pattern; sherpa's offline API returns a single
// transcript per stream rather than Whisper.cpp-style multi-segment output,
// so Decode surfaces it as one Segment spanning the whole input window.
type SherpaEngine struct {
	recognizer *sherpa.OfflineRecognizer
	sampleRate int
}

// NewSherpaEngine constructs a sherpa-onnx offline recognizer from cfg.
// Allocates native resources; must be called during session setup and
// paired with Close.
func NewSherpaEngine(cfg SherpaConfig) (*SherpaEngine, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = sherpa.DefaultProvider()
	}

	language := cfg.Language
	if strings.EqualFold(language, "auto") {
		language = ""
	}

	recognizerConfig := &sherpa.OfflineRecognizerConfig{}
	recognizerConfig.ModelConfig.Whisper.Encoder = cfg.Encoder
	recognizerConfig.ModelConfig.Whisper.Decoder = cfg.Decoder
	recognizerConfig.ModelConfig.Whisper.Language = language
	recognizerConfig.ModelConfig.Whisper.Task = "transcribe"
	recognizerConfig.ModelConfig.Whisper.TailPaddings = -1
	recognizerConfig.ModelConfig.Tokens = cfg.Tokens
	recognizerConfig.ModelConfig.NumThreads = cfg.NumThreads
	recognizerConfig.ModelConfig.Provider = provider
	recognizerConfig.DecodingMethod = "greedy_search"
	if cfg.Debug {
		recognizerConfig.ModelConfig.Debug = 1
	}

	recognizer := sherpa.NewOfflineRecognizer(recognizerConfig)
	if recognizer == nil {
		return nil, fmt.Errorf("sttengine: failed to create offline recognizer")
	}

	return &SherpaEngine{recognizer: recognizer, sampleRate: cfg.SampleRate}, nil
}

// Decode implements Engine.
func (e *SherpaEngine) Decode(samples []float32, offsetMS int64) ([]Segment, error) {
	_ = offsetMS
	if len(samples) == 0 {
		return nil, nil
	}

	stream := sherpa.NewOfflineStream(e.recognizer)
	if stream == nil {
		return nil, fmt.Errorf("sttengine: failed to create offline stream")
	}
	defer sherpa.DeleteOfflineStream(stream)

	stream.AcceptWaveform(e.sampleRate, samples)
	e.recognizer.Decode(stream)

	result := stream.GetResult()
	text := strings.TrimSpace(result.Text)
	if text == "" {
		return nil, nil
	}

	windowCS := int64(len(samples)) * 100 / int64(e.sampleRate)
	return []Segment{{StartCS: 0, EndCS: windowCS, Text: text}}, nil
}

// Close implements Engine.
func (e *SherpaEngine) Close() {
	if e.recognizer != nil {
		sherpa.DeleteOfflineRecognizer(e.recognizer)
		e.recognizer = nil
	}
}

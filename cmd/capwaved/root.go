// Command capwaved runs the audio-capture-to-caption pipeline as a
// standalone process: it starts transcription at launch, prints caption
// updates, and logs the other events the supervisor sends on the bridge's
// outbound channel.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/malgo"
	"github.com/spf13/cobra"

	"github.com/capwave/capwave/internal/bridge"
	"github.com/capwave/capwave/internal/config"
	"github.com/capwave/capwave/internal/session"
	"github.com/capwave/capwave/internal/sttengine"
)

var (
	logger     = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	debug      bool
	modelFlag  string
	deviceFlag string
)

var rootCmd = &cobra.Command{
	Use:   "capwaved",
	Short: "Real-time speech-to-caption pipeline",
	Long:  `capwaved captures a live audio input stream, normalizes it to 16kHz mono, and emits stabilized captions as it transcribes.`,
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "path to the model directory containing whisper/ (overrides the saved config)")
	rootCmd.PersistentFlags().StringVarP(&deviceFlag, "device", "d", "", "input device name to use (overrides the saved config)")

	rootCmd.AddCommand(listDevicesCmd)
	rootCmd.AddCommand(printConfigCmd)
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return session.WrapErr(session.ConfigIO, err)
	}
	if modelFlag != "" {
		cfg.ActiveModelPath = modelFlag
	}
	if deviceFlag != "" {
		cfg.AudioDevice.SelectedDeviceID = deviceFlag
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		logger.Debug("malgo", "msg", msg)
	})
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	defer ctx.Uninit()
	defer ctx.Free()

	state := session.NewState(cfg)
	channels := bridge.NewDefault()

	engines := func(modelDir string) (sttengine.Engine, error) {
		return sttengine.NewSherpaEngine(sttengine.WhisperConfigFromModelDir(modelDir, session.TargetRate, "auto"))
	}
	supervisor := session.NewSupervisor(ctx, state, channels.CoreTx, engines, logger)

	go func() {
		for msg := range channels.CollaboratorRx {
			logEvent(msg)
		}
	}()

	supervisor.StartTranscription()

	sigCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-sigCtx.Done()

	logger.Info("shutting down")
	supervisor.StopTranscription()
	return nil
}

func logEvent(msg bridge.OutboundMessage) {
	switch m := msg.(type) {
	case bridge.TranscriptionStarted:
		logger.Info("transcription started")
	case bridge.TranscriptionStateUpdate:
		fmt.Println(m.ComposedText)
	case bridge.NotificationEvent:
		logger.Warn(m.Notification.Text, "severity", m.Notification.Severity)
	case bridge.AudioDevicesListResponse:
		for _, d := range m.Devices {
			logger.Info("device", "id", d.ID, "description", d.Description, "selected", d.Selected)
		}
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

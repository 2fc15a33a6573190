package main

import (
	"fmt"
	"os"

	"github.com/gen2brain/malgo"
	"github.com/spf13/cobra"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List available audio capture devices",
	RunE:  runListDevices,
}

func runListDevices(cmd *cobra.Command, args []string) error {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		logger.Debug("malgo", "msg", msg)
	})
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	defer ctx.Uninit()
	defer ctx.Free()

	devices, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return fmt.Errorf("enumerate capture devices: %w", err)
	}
	if len(devices) == 0 {
		fmt.Fprintln(os.Stdout, "no capture devices found")
		return nil
	}
	for _, d := range devices {
		fmt.Fprintln(os.Stdout, d.Name())
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/snapsite/snapsite/pkg/models"
)

var generateDevices []string

// NewGenerateCommand triggers screenshot generation from the command line.
func NewGenerateCommand() *cobra.Command {
	genCmd := &cobra.Command{
		Use:   "generate <project-id>",
		Short: "Generate screenshots for a project",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	genCmd.Flags().StringSliceVar(&generateDevices, "devices",
		[]string{"mobile", "tablet", "desktop"},
		"device profiles to capture (mobile, tablet, desktop)")

	return genCmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	projectID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}

	devices := make([]models.Device, 0, len(generateDevices))
	for _, name := range generateDevices {
		d, err := models.ParseDevice(name)
		if err != nil {
			return err
		}
		devices = append(devices, d)
	}

	client, _, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	shots, err := client.Generate(context.Background(), projectID, devices)
	if err != nil {
		return fmt.Errorf("failed to generate screenshots: %w", err)
	}

	fmt.Printf("Generated %d screenshots\n", len(shots))
	for _, s := range shots {
		fmt.Printf("  %-8s %s (%dx%d)\n", s.DeviceType, s.DeviceName, s.Width, s.Height)
	}
	return nil
}

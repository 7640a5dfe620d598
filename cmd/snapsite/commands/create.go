package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCreateCommand creates a project directly from the command line.
func NewCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <website-url>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(2),
		RunE:  runCreate,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, _, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	project, err := client.Create(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("Created project %d: %s (%s)\n", project.ID, project.Name, project.WebsiteURL)
	return nil
}

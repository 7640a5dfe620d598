package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand prints the project list without starting the TUI.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects without the TUI",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	client, _, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	projects, err := client.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	for _, p := range projects {
		fmt.Printf("%d. %s\n", p.ID, p.Name)
		fmt.Printf("   URL: %s\n", p.WebsiteURL)
		fmt.Printf("   Screenshots: %d\n", p.ScreenshotCount)
		fmt.Printf("   Created: %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/snapsite/snapsite/pkg/models"
)

// Repository is the slice of the API client the TUI drives. Tests swap in
// a fake.
type Repository interface {
	List(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, name, websiteURL string) (*models.Project, error)
	Generate(ctx context.Context, projectID int, devices []models.Device) ([]models.Screenshot, error)
	Get(ctx context.Context, projectID int) (*models.Project, []models.Screenshot, error)
}

// Message types for async operations. Every network call resolves into
// exactly one of these; Update processes them one at a time.
type (
	// projectsLoadedMsg carries the result of a full list reload.
	projectsLoadedMsg struct {
		Projects []models.Project
		Err      error
	}

	// projectCreatedMsg carries the result of a create call.
	projectCreatedMsg struct {
		Project *models.Project
		Err     error
	}

	// screenshotsGeneratedMsg carries the result of a generation call.
	screenshotsGeneratedMsg struct {
		Screenshots []models.Screenshot
		Err         error
	}

	// projectDetailMsg carries one project and its screenshots.
	projectDetailMsg struct {
		Project     *models.Project
		Screenshots []models.Screenshot
		Err         error
	}

	// tickMsg drives toast expiry and the spinner.
	tickMsg time.Time
)

func loadProjectsCmd(ctx context.Context, repo Repository) tea.Cmd {
	return func() tea.Msg {
		projects, err := repo.List(ctx)
		return projectsLoadedMsg{Projects: projects, Err: err}
	}
}

func createProjectCmd(ctx context.Context, repo Repository, name, websiteURL string) tea.Cmd {
	return func() tea.Msg {
		project, err := repo.Create(ctx, name, websiteURL)
		return projectCreatedMsg{Project: project, Err: err}
	}
}

func generateCmd(ctx context.Context, repo Repository, projectID int, devices []models.Device) tea.Cmd {
	return func() tea.Msg {
		shots, err := repo.Generate(ctx, projectID, devices)
		return screenshotsGeneratedMsg{Screenshots: shots, Err: err}
	}
}

func loadProjectCmd(ctx context.Context, repo Repository, projectID int) tea.Cmd {
	return func() tea.Msg {
		project, shots, err := repo.Get(ctx, projectID)
		return projectDetailMsg{Project: project, Screenshots: shots, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snapsite/snapsite/internal/notify"
	"github.com/snapsite/snapsite/internal/session"
	"github.com/snapsite/snapsite/pkg/models"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
)

type model struct {
	ctx      context.Context
	repo     Repository
	session  *session.Session
	notifier *notify.Center
	logger   *slog.Logger

	mode     viewMode
	projects []models.Project
	cursor   int

	detailProject     *models.Project
	detailScreenshots []models.Screenshot
	loadingDetail     bool

	form     createForm
	showForm bool
	creating bool

	pickerCursor int

	loadingList bool
	spinner     *Spinner
	ticking     bool

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func initialModel(ctx context.Context, repo Repository, logger *slog.Logger) model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return model{
		ctx:      ctx,
		repo:     repo,
		session:  session.New(),
		notifier: notify.NewCenter(),
		logger:   logger,
		form:     newCreateForm(),
		spinner:  NewSpinner(),
		// The initial load starts from Init, so the model is born
		// loading with the tick loop armed.
		loadingList: true,
		ticking:     true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, loadProjectsCmd(m.ctx, m.repo), tickCmd())
}

// startLoadProjects marks the list as loading and returns the reload
// command. The list is always replaced wholesale with whatever comes back.
func (m *model) startLoadProjects() tea.Cmd {
	m.loadingList = true
	return tea.Batch(loadProjectsCmd(m.ctx, m.repo), m.ensureTick())
}

// ensureTick arms the tick loop if it is not already running. One chain
// of ticks at a time keeps toast expiry and the spinner moving.
func (m *model) ensureTick() tea.Cmd {
	if m.ticking || !m.needsTick() {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func (m *model) needsTick() bool {
	return m.notifier.Len() > 0 || m.session.Submitting() || m.loadingList || m.loadingDetail
}

// pickerOpen reports whether the device-selection surface is showing.
func (m model) pickerOpen() bool {
	return m.session.State() == session.StateTargeted
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.updateViewport()
		return m, nil

	case tickMsg:
		m.notifier.Prune(time.Time(msg))
		m.spinner.Next()
		m.ticking = false
		return m, m.ensureTick()

	case projectsLoadedMsg:
		return m.handleProjectsLoaded(msg)

	case projectCreatedMsg:
		return m.handleProjectCreated(msg)

	case screenshotsGeneratedMsg:
		return m.handleScreenshotsGenerated(msg)

	case projectDetailMsg:
		return m.handleProjectDetail(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleProjectsLoaded(msg projectsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingList = false
	if msg.Err != nil {
		m.logger.Error("list projects failed", "error", msg.Err)
		m.notifier.Error("Failed to load projects: " + msg.Err.Error())
		return m, m.ensureTick()
	}
	m.projects = msg.Projects
	if m.cursor >= len(m.projects) {
		m.cursor = len(m.projects) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.updateViewport()
	return m, m.ensureTick()
}

func (m model) handleProjectCreated(msg projectCreatedMsg) (tea.Model, tea.Cmd) {
	m.creating = false
	if msg.Err != nil {
		m.logger.Error("create project failed", "error", msg.Err)
		m.notifier.Error("Failed to create project: " + msg.Err.Error())
		// The form keeps its values so the user can correct and retry.
		return m, m.ensureTick()
	}
	m.logger.Info("project created", "id", msg.Project.ID, "name", msg.Project.Name)
	m.notifier.Success("Project created successfully!")
	m.form.Reset()
	m.showForm = false
	return m, m.startLoadProjects()
}

func (m model) handleScreenshotsGenerated(msg screenshotsGeneratedMsg) (tea.Model, tea.Cmd) {
	// Submitting resolves to Idle no matter how the call went.
	m.session.Resolve()
	if msg.Err != nil {
		m.logger.Error("generate screenshots failed", "error", msg.Err)
		m.notifier.Error("Failed to generate screenshots: " + msg.Err.Error())
		// Nothing changed server-side, so no reload.
		return m, m.ensureTick()
	}
	m.logger.Info("screenshots generated", "count", len(msg.Screenshots))
	m.notifier.Success(fmt.Sprintf("Generated %d screenshots successfully!", len(msg.Screenshots)))
	return m, m.startLoadProjects()
}

func (m model) handleProjectDetail(msg projectDetailMsg) (tea.Model, tea.Cmd) {
	m.loadingDetail = false
	if msg.Err != nil {
		m.logger.Error("load project failed", "error", msg.Err)
		m.notifier.Error("Failed to load project: " + msg.Err.Error())
		return m, m.ensureTick()
	}
	m.mode = detailView
	m.detailProject = msg.Project
	m.detailScreenshots = msg.Screenshots
	m.updateViewport()
	return m, m.ensureTick()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showForm {
		return m.handleFormKey(msg)
	}
	if m.pickerOpen() {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.mode == listView && m.cursor > 0 {
			m.cursor--
			m.updateViewport()
		}

	case "down", "j":
		if m.mode == listView && m.cursor < len(m.projects)-1 {
			m.cursor++
			m.updateViewport()
		}

	case "enter":
		if m.mode == listView {
			if p, ok := m.currentProject(); ok {
				m.loadingDetail = true
				return m, tea.Batch(loadProjectCmd(m.ctx, m.repo, p.ID), m.ensureTick())
			}
		}

	case "esc", "backspace":
		if m.mode == detailView {
			m.mode = listView
			m.detailProject = nil
			m.detailScreenshots = nil
			m.updateViewport()
		}

	case "n":
		if m.mode == listView && !m.session.Submitting() {
			m.showForm = true
			return m, m.form.Focus()
		}

	case "g":
		// A second target while a generation is outstanding is rejected;
		// Target is a no-op and the picker never opens.
		var id int
		var ok bool
		if m.mode == detailView && m.detailProject != nil {
			id, ok = m.detailProject.ID, true
		} else if p, has := m.currentProject(); has {
			id, ok = p.ID, true
		}
		if ok && m.session.Target(id) {
			m.pickerCursor = 0
			m.logger.Debug("session targeted", "project_id", id)
		}

	case "r":
		if m.mode == detailView && m.detailProject != nil {
			m.loadingDetail = true
			return m, tea.Batch(loadProjectCmd(m.ctx, m.repo, m.detailProject.ID), m.ensureTick())
		}
		return m, m.startLoadProjects()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !m.creating {
			m.form.Reset()
			m.showForm = false
		}
		return m, nil

	case "tab", "shift+tab":
		return m, m.form.Next()

	case "enter":
		if m.creating {
			return m, nil
		}
		name, website := m.form.Values()
		if name == "" || website == "" {
			m.notifier.Error("Please fill in all fields.")
			return m, m.ensureTick()
		}
		m.creating = true
		return m, tea.Batch(createProjectCmd(m.ctx, m.repo, name, website), m.ensureTick())
	}

	return m, m.form.Update(msg)
}

func (m model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	devices := models.AllDevices()

	switch msg.String() {
	case "esc":
		m.session.Cancel()
		return m, nil

	case "up", "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}

	case "down", "j":
		if m.pickerCursor < len(devices)-1 {
			m.pickerCursor++
		}

	case " ", "x":
		m.session.Toggle(devices[m.pickerCursor])

	case "m":
		m.session.Toggle(models.DeviceMobile)
	case "t":
		m.session.Toggle(models.DeviceTablet)
	case "d":
		m.session.Toggle(models.DeviceDesktop)

	case "enter":
		projectID, selected, err := m.session.Confirm()
		if err != nil {
			// Empty selection: surface the error, stay Targeted so
			// the picker remains open.
			m.notifier.Error("Please select at least one device type.")
			return m, m.ensureTick()
		}
		m.logger.Info("generation submitted", "project_id", projectID, "devices", len(selected))
		return m, tea.Batch(generateCmd(m.ctx, m.repo, projectID, selected), m.ensureTick())
	}

	return m, nil
}

func (m *model) currentProject() (models.Project, bool) {
	if m.cursor < 0 || m.cursor >= len(m.projects) {
		return models.Project{}, false
	}
	return m.projects[m.cursor], true
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	if m.mode == detailView {
		m.viewport.SetContent(m.renderDetail())
	} else {
		m.viewport.SetContent(m.renderProjects())
	}
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch {
	case m.showForm:
		content = m.form.View(m.creating)
	case m.pickerOpen():
		content = m.renderDevicePicker()
	default:
		content = m.viewport.View()
	}

	return fmt.Sprintf("%s\n%s\n%s", header, content, footer)
}

// Run starts the TUI against the given repository and blocks until the
// user quits.
func Run(ctx context.Context, repo Repository, logger *slog.Logger) error {
	p := tea.NewProgram(
		initialModel(ctx, repo, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

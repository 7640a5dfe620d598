package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/snapsite/snapsite/internal/notify"
	"github.com/snapsite/snapsite/pkg/models"
)

// sanitize strips control runes (C0, DEL, C1) from service-supplied text.
// Project names and URLs come from the wire and must never be able to
// smuggle escape sequences into the terminal.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func (m model) renderProjects() string {
	if len(m.projects) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
		return emptyStyle.Render("No projects yet. Press n to create your first project.")
	}

	var s strings.Builder

	for i, project := range m.projects {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		nameStyle := lipgloss.NewStyle()
		if i == m.cursor {
			nameStyle = nameStyle.Foreground(lipgloss.Color("212")).Bold(true)
		}

		line := fmt.Sprintf("%s%s (%d screenshots)", cursor, sanitize(project.Name), project.ScreenshotCount)
		s.WriteString(nameStyle.Render(line) + "\n")

		metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		if i != m.cursor {
			metaStyle = metaStyle.Foreground(lipgloss.Color("238"))
		}
		meta := fmt.Sprintf("  %s • created %s",
			sanitize(project.WebsiteURL),
			project.CreatedAt.Local().Format("2006-01-02 15:04"))
		s.WriteString(metaStyle.Render(meta) + "\n")

		if i < len(m.projects)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) renderDetail() string {
	if m.detailProject == nil {
		return "No project selected"
	}

	var s strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	s.WriteString(titleStyle.Render(sanitize(m.detailProject.Name)) + "\n")
	s.WriteString(metaStyle.Render(sanitize(m.detailProject.WebsiteURL)) + "\n")
	s.WriteString(metaStyle.Render(fmt.Sprintf("created %s",
		m.detailProject.CreatedAt.Local().Format("2006-01-02 15:04"))) + "\n\n")

	if len(m.detailScreenshots) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
		s.WriteString(emptyStyle.Render("No screenshots yet. Press g to generate some."))
		return s.String()
	}

	s.WriteString(titleStyle.Render("Screenshots") + "\n")
	for _, shot := range m.detailScreenshots {
		line := fmt.Sprintf("  %-8s %s (%dx%d) • %s",
			shot.DeviceType,
			sanitize(shot.DeviceName),
			shot.Width, shot.Height,
			shot.CreatedAt.Local().Format("2006-01-02 15:04"))
		s.WriteString(metaStyle.Render(line) + "\n")
	}

	return s.String()
}

func (m model) renderDevicePicker() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	name := ""
	if id, ok := m.session.TargetID(); ok {
		for _, p := range m.projects {
			if p.ID == id {
				name = sanitize(p.Name)
				break
			}
		}
	}
	title := "Generate Screenshots"
	if name != "" {
		title = fmt.Sprintf("Generate Screenshots — %s", name)
	}
	s.WriteString(titleStyle.Render(title) + "\n\n")

	for i, d := range models.AllDevices() {
		cursor := "  "
		if i == m.pickerCursor {
			cursor = "> "
		}
		check := "[ ]"
		if m.session.Selected(d) {
			check = "[x]"
		}
		style := lipgloss.NewStyle()
		if i == m.pickerCursor {
			style = style.Foreground(lipgloss.Color("212")).Bold(true)
		}
		s.WriteString(style.Render(fmt.Sprintf("%s%s %s", cursor, check, d)) + "\n")
	}

	s.WriteString("\n" + hintStyle.Render("space: toggle • enter: generate • esc: cancel") + "\n")
	return s.String()
}

func (m model) renderToasts() string {
	toasts := m.notifier.Active()
	if len(toasts) == 0 {
		return ""
	}

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	var s strings.Builder
	for _, t := range toasts {
		switch t.Kind {
		case notify.KindSuccess:
			s.WriteString(successStyle.Render("✓ "+t.Message) + "\n")
		case notify.KindError:
			s.WriteString(errorStyle.Render("✗ "+t.Message) + "\n")
		}
	}
	return strings.TrimRight(s.String(), "\n")
}

func (m model) renderHeader() string {
	title := "Snapsite — Projects"
	if m.mode == detailView && m.detailProject != nil {
		title = fmt.Sprintf("Snapsite — %s", sanitize(m.detailProject.Name))
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	var info string
	switch {
	case m.showForm:
		info = "tab: switch field • enter: create • esc: cancel"
	case m.pickerOpen():
		info = "space: toggle device • enter: generate • esc: cancel"
	case m.mode == detailView:
		info = "esc: back • g: generate • r: refresh • q: quit"
	default:
		info = "↑/↓: navigate • enter: view • n: new • g: generate • r: refresh • q: quit"
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := style.Render(info)

	if m.session.Submitting() {
		footer = m.spinner.Line("Generating screenshots...") + "\n" + footer
	} else if m.loadingList || m.loadingDetail {
		footer = m.spinner.Line("Loading...") + "\n" + footer
	}

	if toasts := m.renderToasts(); toasts != "" {
		footer = toasts + "\n" + footer
	}
	return footer
}

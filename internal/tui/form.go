package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// createForm collects the two required fields for a new project.
type createForm struct {
	name    textinput.Model
	website textinput.Model
	focus   int
}

func newCreateForm() createForm {
	name := textinput.New()
	name.Placeholder = "My Website"
	name.Prompt = "> "
	name.CharLimit = 200

	website := textinput.New()
	website.Placeholder = "https://example.com"
	website.Prompt = "> "
	website.CharLimit = 500

	return createForm{name: name, website: website}
}

// Focus puts the cursor on the first field.
func (f *createForm) Focus() tea.Cmd {
	f.focus = 0
	f.website.Blur()
	return f.name.Focus()
}

// Next moves focus between the two fields.
func (f *createForm) Next() tea.Cmd {
	if f.focus == 0 {
		f.focus = 1
		f.name.Blur()
		return f.website.Focus()
	}
	f.focus = 0
	f.website.Blur()
	return f.name.Focus()
}

// Values returns the trimmed field values.
func (f *createForm) Values() (name, website string) {
	return strings.TrimSpace(f.name.Value()), strings.TrimSpace(f.website.Value())
}

// Reset clears both fields and drops focus.
func (f *createForm) Reset() {
	f.name.SetValue("")
	f.website.SetValue("")
	f.name.Blur()
	f.website.Blur()
	f.focus = 0
}

// Update forwards input events to the focused field.
func (f *createForm) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	cmds = append(cmds, cmd)
	f.website, cmd = f.website.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// View renders the form.
func (f *createForm) View(creating bool) string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	s.WriteString(titleStyle.Render("New Project") + "\n\n")
	s.WriteString(labelStyle.Render("Project name") + "\n")
	s.WriteString(f.name.View() + "\n\n")
	s.WriteString(labelStyle.Render("Website URL") + "\n")
	s.WriteString(f.website.View() + "\n\n")
	if creating {
		s.WriteString(hintStyle.Render("creating...") + "\n")
	} else {
		s.WriteString(hintStyle.Render("tab: switch field • enter: create • esc: cancel") + "\n")
	}

	return s.String()
}

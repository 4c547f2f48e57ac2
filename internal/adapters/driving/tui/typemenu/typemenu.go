// Package typemenu provides the interactive meeting type picker shown
// when a classification falls below the auto-accept threshold.
package typemenu

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driving/tui/keymap"
	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driving/tui/styles"
	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// Item is one selectable meeting type.
type Item struct {
	Type     domain.MeetingType
	Detected bool
}

// Model is the bubbletea model for the picker. The detected type is
// listed first and pre-selected, so pressing enter confirms it.
type Model struct {
	styles         *styles.Styles
	keys           *keymap.KeyMap
	classification domain.Classification
	items          []Item
	selected       int
	done           bool
}

// NewModel creates a picker model for the given classification.
func NewModel(c domain.Classification, s *styles.Styles) *Model {
	if s == nil {
		s = styles.DefaultStyles()
	}

	items := []Item{{Type: c.DetectedType, Detected: true}}
	for _, t := range domain.AllMeetingTypes() {
		if t != c.DetectedType {
			items = append(items, Item{Type: t})
		}
	}

	return &Model{
		styles:         s,
		keys:           keymap.DefaultKeyMap(),
		classification: c,
		items:          items,
		selected:       0,
	}
}

// Init initialises the picker.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key messages for the picker.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case keymap.Matches(keyMsg.String(), m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case keymap.Matches(keyMsg.String(), m.keys.Down):
		if m.selected < len(m.items)-1 {
			m.selected++
		}
		return m, nil

	case keymap.Matches(keyMsg.String(), m.keys.Select):
		m.done = true
		return m, tea.Quit

	case keymap.Matches(keyMsg.String(), m.keys.Accept),
		keymap.Matches(keyMsg.String(), m.keys.Cancel),
		keymap.Matches(keyMsg.String(), m.keys.Quit):
		m.selected = 0
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the picker.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Meeting type"))
	b.WriteString("\n\n")

	c := m.classification
	confidence := fmt.Sprintf("%.0f%%", c.Confidence*100)
	confStyle := m.styles.Warning
	if c.Confidence >= 0.8 {
		confStyle = m.styles.Success
	}
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Detected: %s", c.DetectedType.Description())))
	b.WriteString(m.styles.Muted.Render(" ("))
	b.WriteString(confStyle.Render(confidence))
	b.WriteString(m.styles.Muted.Render(")"))
	b.WriteString("\n")

	if len(c.Evidence) > 0 {
		b.WriteString(m.styles.Muted.Render("Evidence: " + strings.Join(c.Evidence, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.styles.Normal
		if i == m.selected {
			cursor = "> "
			style = m.styles.Selected
		}

		label := item.Type.Description()
		if item.Detected {
			label += " (detected)"
		}

		b.WriteString(cursor + style.Render(label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(renderHelp(m.keys)))

	return b.String()
}

// Choice returns the selected meeting type.
func (m *Model) Choice() domain.MeetingType {
	return m.items[m.selected].Type
}

// Selected returns the currently selected index.
func (m *Model) Selected() int {
	return m.selected
}

// Done reports whether the picker has finished.
func (m *Model) Done() bool {
	return m.done
}

func renderHelp(keys *keymap.KeyMap) string {
	var parts []string
	for _, binding := range keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}

// Run shows the picker on the terminal and blocks until a type is
// chosen. On a non-interactive stdin the detected type is returned
// unchanged.
func Run(c domain.Classification) (domain.MeetingType, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return c.DetectedType, nil
	}

	program := tea.NewProgram(NewModel(c, nil))
	final, err := program.Run()
	if err != nil {
		return c.DetectedType, fmt.Errorf("run type picker: %w", err)
	}

	model, ok := final.(*Model)
	if !ok {
		return c.DetectedType, nil
	}
	return model.Choice(), nil
}

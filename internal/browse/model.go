package browse

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	queryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

// Model is the Bubble Tea list used by TUIPicker. Typing narrows the list
// with a fuzzy filter; enter accepts and esc dismisses.
type Model struct {
	items   []Item
	visible []Item
	query   string
	cursor  int
	height  int

	done     bool
	accepted bool
	chosen   int
}

// NewModel creates a model with the cursor on the item whose ring index is
// initial.
func NewModel(items []Item, initial int) Model {
	m := Model{items: items}
	m.visible = Filter("", items)
	for i, it := range m.visible {
		if it.Index == initial {
			m.cursor = i
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case tea.KeyEnter:
			if len(m.visible) == 0 {
				return m, nil
			}
			m.done, m.accepted = true, true
			m.chosen = m.visible[m.cursor].Index
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlG:
			m.done = true
			return m, tea.Quit
		case tea.KeyBackspace:
			if r := []rune(m.query); len(r) > 0 {
				m.setQuery(string(r[:len(r)-1]))
			}
		case tea.KeySpace:
			m.setQuery(m.query + " ")
		case tea.KeyRunes:
			m.setQuery(m.query + string(msg.Runes))
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	}
	return m, nil
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.visible = Filter(q, m.items)
	m.cursor = 0
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Kill ring"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("enter: yank  esc: cancel"))
	b.WriteByte('\n')
	b.WriteString(queryStyle.Render("> " + m.query))
	b.WriteByte('\n')

	if len(m.visible) == 0 {
		b.WriteString(mutedStyle.Render("  no matches"))
		return b.String()
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		it := m.visible[i]
		line := fmt.Sprintf("%3d  %s", it.Index, it.Label)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String()
}

// window returns the visible row range keeping the cursor on screen.
func (m Model) window() (int, int) {
	rows := m.height - 3
	if rows <= 0 || rows >= len(m.visible) {
		return 0, len(m.visible)
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, start + rows
}

// Result returns the chosen ring index and whether an entry was accepted.
func (m Model) Result() (int, bool) {
	return m.chosen, m.accepted
}

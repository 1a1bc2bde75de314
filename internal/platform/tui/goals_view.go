package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sleigh-run/internal/goals"
)

const goalBarWidth = 20

// GoalsKeyMap defines the key bindings of the goals screen.
type GoalsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GoalsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k GoalsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Prev, k.Next}, {k.Back, k.Quit}}
}

// DefaultGoalsKeyMap returns default key bindings.
func DefaultGoalsKeyMap() GoalsKeyMap {
	return GoalsKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("up/k", "prev slot")),
		Down: key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("down/j", "next slot")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("left/h", "prev item")),
		Next: key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("right/l", "next item")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// GoalsModel shows goal progress and lets the player equip unlocked cosmetics.
type GoalsModel struct {
	tracker   *goals.Tracker
	keys      GoalsKeyMap
	help      help.Model
	slot      int // Index into goals.Categories
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewGoalsModel creates the goals screen for tracker's player.
func NewGoalsModel(tracker *goals.Tracker, width, height int) GoalsModel {
	return GoalsModel{
		tracker: tracker,
		keys:    DefaultGoalsKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
}

// Init initializes the goals model.
func (m GoalsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the goals screen.
func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.slot = (m.slot + len(goals.Categories) - 1) % len(goals.Categories)
		case key.Matches(msg, m.keys.Down):
			m.slot = (m.slot + 1) % len(goals.Categories)
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// cycle equips the next unlocked item of the current slot.
func (m GoalsModel) cycle(dir int) {
	c := goals.Categories[m.slot]
	items := m.tracker.Unlocked(c)
	cur := 0
	for i, item := range items {
		if item == m.tracker.Equipped(c) {
			cur = i
		}
	}
	m.tracker.Equip(c, items[(cur+dir+len(items))%len(items)])
}

var (
	goalDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("120"))
	goalOpenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	slotStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the goals screen.
func (m GoalsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var g strings.Builder
	fmt.Fprintf(&g, "Goals  %d/%d\n\n", m.tracker.CompletedCount(), len(goals.Catalog))
	for _, p := range m.tracker.Progress() {
		g.WriteString(goalLine(p))
		g.WriteString("\n")
	}

	var c strings.Builder
	c.WriteString("Cosmetics\n\n")
	for i, cat := range goals.Categories {
		line := fmt.Sprintf("  %-13s < %-9s >  %d unlocked", cat, m.tracker.Equipped(cat), len(m.tracker.Unlocked(cat)))
		if i == m.slot {
			line = slotStyle.Render(">" + line[1:])
		}
		c.WriteString(line)
		c.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(slotStyle.Render("GOALS - "+m.tracker.Player()), m.width))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(strings.TrimRight(g.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(strings.TrimRight(c.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(menuHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// goalLine renders one goal with a text progress bar.
func goalLine(p goals.Progress) string {
	filled := goalBarWidth * p.Value / max(p.Target, 1)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", goalBarWidth-filled)
	mark, style := "o", goalOpenStyle
	if p.Completed {
		mark, style = "v", goalDoneStyle
	}
	return style.Render(fmt.Sprintf("%s %-24s [%s] %d/%d  -> %s %s",
		mark, p.Name, bar, p.Value, p.Target, p.Reward.Item, p.Reward.Category))
}

// IsGoingBack returns true if the user wants to return to the menu.
func (m GoalsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m GoalsModel) IsQuitting() bool {
	return m.quitting
}

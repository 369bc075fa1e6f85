package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toadworks/toadbox-ctl/internal/instance"
)

// Action represents the action to take after picker selection.
type Action int

const (
	ActionNone Action = iota
	ActionAttach
	ActionStart
	ActionStop
	ActionQuit
)

// PickerResult holds the result of the picker.
type PickerResult struct {
	Action   Action
	Instance *instance.Instance
}

// instanceItem implements list.Item for instance display.
type instanceItem struct {
	inst *instance.Instance
}

func (i instanceItem) Title() string {
	return i.inst.Name
}

func (i instanceItem) Description() string {
	statusIcon := "●"
	switch i.inst.Status {
	case instance.StatusRunning:
		statusIcon = "✓"
	case instance.StatusError:
		statusIcon = "✗"
	case instance.StatusStarting, instance.StatusStopping:
		statusIcon = "…"
	}

	return fmt.Sprintf("%s %s | ssh:%d rdp:%d | %s",
		statusIcon,
		i.inst.Status,
		i.inst.SSHPort,
		i.inst.RDPPort,
		truncatePath(i.inst.Workspace, 30),
	)
}

func (i instanceItem) FilterValue() string {
	return i.inst.Name
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the instance picker.
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new instance picker.
func NewPicker(instances []*instance.Instance) Model {
	items := make([]list.Item, len(instances))
	for i, inst := range instances {
		items[i] = instanceItem{inst: inst}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "Toadbox - Select Instance"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(instanceItem); ok {
				m.result = PickerResult{
					Action:   ActionAttach,
					Instance: item.inst,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "s":
			if item, ok := m.list.SelectedItem().(instanceItem); ok {
				m.result = PickerResult{
					Action:   ActionStart,
					Instance: item.inst,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "x":
			if item, ok := m.list.SelectedItem().(instanceItem); ok {
				m.result = PickerResult{
					Action:   ActionStop,
					Instance: item.inst,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] SSH  [s] Start  [x] Stop  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result.
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive instance picker.
func RunPicker(instances []*instance.Instance) (PickerResult, error) {
	if len(instances) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(instances)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker renders a non-interactive instance listing.
func SimplePicker(instances []*instance.Instance) string {
	var sb strings.Builder

	sb.WriteString("Toadbox - Instances\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(instances) == 0 {
		sb.WriteString("No instances found.\n")
		sb.WriteString("Create one with: toadbox-ctl create <name> --workspace <dir>\n")
		return sb.String()
	}

	for i, inst := range instances {
		statusIcon := "●"
		switch inst.Status {
		case instance.StatusRunning:
			statusIcon = "✓"
		case instance.StatusError:
			statusIcon = "✗"
		}

		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, statusIcon, inst.Name, inst.Status))
		sb.WriteString(fmt.Sprintf("   SSH: %d | RDP: %d | Workspace: %s\n\n",
			inst.SSHPort, inst.RDPPort, truncatePath(inst.Workspace, 40)))
	}

	return sb.String()
}

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toadworks/toadbox-ctl/internal/instance"
)

func pickerInstance() *instance.Instance {
	return &instance.Instance{
		Name:      "alpha",
		Workspace: "/home/user/alpha",
		SSHPort:   2222,
		RDPPort:   3390,
		Status:    instance.StatusRunning,
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"/home/user/workspace", 20, "/home/user/workspace"},
		{"/home/user/very/long/path/to/workspace", 20, "...path/to/workspace"},
		{"", 10, ""},
		{"exactly10!", 10, "exactly10!"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := truncatePath(tt.path, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncatePath(%q, %d) = %q, want %q", tt.path, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestInstanceItemMethods(t *testing.T) {
	item := instanceItem{inst: pickerInstance()}

	t.Run("Title", func(t *testing.T) {
		if got := item.Title(); got != "alpha" {
			t.Errorf("Title() = %q, want %q", got, "alpha")
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		if got := item.FilterValue(); got != "alpha" {
			t.Errorf("FilterValue() = %q, want %q", got, "alpha")
		}
	})

	t.Run("Description", func(t *testing.T) {
		desc := item.Description()
		if !strings.Contains(desc, "✓") {
			t.Error("Description should contain running status icon")
		}
		if !strings.Contains(desc, "ssh:2222") {
			t.Error("Description should contain the SSH port")
		}
		if !strings.Contains(desc, "rdp:3390") {
			t.Error("Description should contain the RDP port")
		}
		if !strings.Contains(desc, "/home/user/alpha") {
			t.Error("Description should contain the workspace")
		}
	})
}

func TestInstanceItemStatusIcons(t *testing.T) {
	tests := []struct {
		status instance.Status
		icon   string
	}{
		{instance.StatusRunning, "✓"},
		{instance.StatusError, "✗"},
		{instance.StatusStarting, "…"},
		{instance.StatusStopping, "…"},
		{instance.StatusStopped, "●"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			inst := pickerInstance()
			inst.Status = tt.status
			desc := instanceItem{inst: inst}.Description()
			if !strings.Contains(desc, tt.icon) {
				t.Errorf("Description for status %v should contain %q", tt.status, tt.icon)
			}
		})
	}
}

func TestModelKeyHandling(t *testing.T) {
	t.Run("attach with enter", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model := newModel.(Model)

		if model.result.Action != ActionAttach {
			t.Errorf("Action = %v, want ActionAttach", model.result.Action)
		}
		if model.result.Instance == nil || model.result.Instance.Name != "alpha" {
			t.Error("selected instance should ride along")
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("start with s", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
		model := newModel.(Model)

		if model.result.Action != ActionStart {
			t.Errorf("Action = %v, want ActionStart", model.result.Action)
		}
	})

	t.Run("stop with x", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		model := newModel.(Model)

		if model.result.Action != ActionStop {
			t.Errorf("Action = %v, want ActionStop", model.result.Action)
		}
	})

	t.Run("quit with q", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
		if !model.quitting {
			t.Error("Model should be quitting")
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("quit with esc", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
	})

	t.Run("window size update", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		newModel, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
		model := newModel.(Model)

		if model.width != 100 {
			t.Errorf("Width = %d, want 100", model.width)
		}
		if model.height != 50 {
			t.Errorf("Height = %d, want 50", model.height)
		}
		if cmd != nil {
			t.Error("Window size update should not return a command")
		}
	})
}

func TestModelInit(t *testing.T) {
	m := Model{}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestModelView(t *testing.T) {
	t.Run("normal view contains help", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		view := m.View()

		if !strings.Contains(view, "[enter] SSH") {
			t.Error("View should contain attach help")
		}
		if !strings.Contains(view, "[s] Start") {
			t.Error("View should contain start help")
		}
		if !strings.Contains(view, "[q] Quit") {
			t.Error("View should contain quit help")
		}
	})

	t.Run("quitting view is empty", func(t *testing.T) {
		m := NewPicker([]*instance.Instance{pickerInstance()})
		m.quitting = true
		if view := m.View(); view != "" {
			t.Errorf("Quitting view should be empty, got %q", view)
		}
	})
}

func TestSimplePicker(t *testing.T) {
	t.Run("empty listing", func(t *testing.T) {
		out := SimplePicker(nil)
		if !strings.Contains(out, "No instances found") {
			t.Errorf("empty listing missing hint:\n%s", out)
		}
	})

	t.Run("listing", func(t *testing.T) {
		out := SimplePicker([]*instance.Instance{pickerInstance()})
		if !strings.Contains(out, "alpha") || !strings.Contains(out, "SSH: 2222") {
			t.Errorf("listing missing instance details:\n%s", out)
		}
	})
}

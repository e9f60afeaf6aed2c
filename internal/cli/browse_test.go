package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/densitool/pkg/design"
)

func testDesigns() []design.Design {
	return []design.Design{
		design.New("dense", 0, 0, 1000, 1000, 500, "a"),
		design.New("mid", 0, 0, 1000, 1000, 300, "b"),
		design.New("sparse", 0, 0, 2000, 500, 200, "c"),
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestDesignListModelNavigation(t *testing.T) {
	m := NewDesignListModel(testDesigns())

	// Cursor is clamped at the top.
	next, _ := m.Update(keyMsg("up"))
	m = next.(DesignListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after up at top", m.Cursor)
	}

	next, _ = m.Update(keyMsg("down"))
	m = next.(DesignListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	// Cursor is clamped at the bottom.
	for i := 0; i < 10; i++ {
		next, _ = m.Update(keyMsg("down"))
		m = next.(DesignListModel)
	}
	if m.Cursor != len(m.Designs)-1 {
		t.Errorf("Cursor = %d, want %d after overshooting down", m.Cursor, len(m.Designs)-1)
	}
}

func TestDesignListModelQuit(t *testing.T) {
	m := NewDesignListModel(testDesigns())

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		msg := keyMsg(key)
		switch key {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestDesignListModelScrollsWithCursor(t *testing.T) {
	designs := make([]design.Design, 30)
	for i := range designs {
		designs[i] = design.New("block", 0, 0, 1000, 1000, i, "x")
	}
	m := NewDesignListModel(designs)
	m.Height = 5

	for i := 0; i < 10; i++ {
		next, _ := m.Update(keyMsg("down"))
		m = next.(DesignListModel)
	}
	if m.Cursor != 10 {
		t.Fatalf("Cursor = %d, want 10", m.Cursor)
	}
	if m.Offset != m.Cursor-m.Height+1 {
		t.Errorf("Offset = %d, want %d (cursor kept in view)", m.Offset, m.Cursor-m.Height+1)
	}
}

func TestDesignListModelView(t *testing.T) {
	m := NewDesignListModel(testDesigns())
	view := m.View()

	for _, name := range []string{"dense", "mid", "sparse"} {
		if !strings.Contains(view, name) {
			t.Errorf("view is missing design %q", name)
		}
	}
	if !strings.Contains(view, "▸") {
		t.Error("view should mark the cursor row")
	}
}

func TestDesignListModelViewEmpty(t *testing.T) {
	m := NewDesignListModel(nil)
	if !strings.Contains(m.View(), "empty listing") {
		t.Error("empty view should say so")
	}
}

func TestDesignListModelWindowResize(t *testing.T) {
	m := NewDesignListModel(testDesigns())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = next.(DesignListModel)
	if m.Height != 34 {
		t.Errorf("Height = %d, want 34", m.Height)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(DesignListModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want floor of 5", m.Height)
	}
}

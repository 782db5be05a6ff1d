package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tracker-go/internal/model"
	"github.com/nibzard/tracker-go/internal/store"
)

func testModel() *tuiModel {
	d := store.NewDataset()
	alice := d.NewUser("Alice", "alice@example.com")
	p := d.NewProject("Launch", "", "2020-01-01", alice.ID)
	d.NewTask("Design", p.ID, alice.ID).MarkDone()
	d.NewTask("Build", p.ID, 0)
	d.NewTask("Ship", p.ID, 0).MarkInProgress()

	m := newTUIModel(func() *store.Dataset { return d }, "/tmp/data.json", time.Second)
	m.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuildTUIData(t *testing.T) {
	m := testModel()
	m.refresh()

	if got := m.data.counts[model.StatusDone]; got != 1 {
		t.Errorf("done count: got %d, want 1", got)
	}
	if got := m.data.counts[model.StatusOpen]; got != 1 {
		t.Errorf("open count: got %d, want 1", got)
	}
	if len(m.data.tasks) != 3 || len(m.data.projects) != 1 || len(m.data.users) != 1 {
		t.Errorf("rows: got %d tasks %d projects %d users", len(m.data.tasks), len(m.data.projects), len(m.data.users))
	}
	if !m.data.projects[0].Overdue {
		t.Error("project due 2020-01-01 should be overdue")
	}
}

func TestUpdateKeys(t *testing.T) {
	m := testModel()
	m.Init()

	m.Update(key("3"))
	if m.filter != model.StatusDone {
		t.Errorf("filter after 3: got %q, want done", m.filter)
	}
	view := m.View()
	if !strings.Contains(view, "Design") || strings.Contains(view, "Build") {
		t.Errorf("filtered view should only list done tasks:\n%s", view)
	}

	m.Update(key("0"))
	if m.filter != "" {
		t.Errorf("filter after 0: got %q, want empty", m.filter)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewProjects {
		t.Errorf("view after tab: got %d, want projects", m.view)
	}
	if view := m.View(); !strings.Contains(view, "!overdue") {
		t.Errorf("projects view should mark overdue:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if view := m.View(); !strings.Contains(view, "<alice@example.com>") {
		t.Errorf("users view should show email:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewTasks {
		t.Errorf("view should wrap around to tasks, got %d", m.view)
	}

	m.Update(key("h"))
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("help not shown:\n%s", view)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestTickRefreshes(t *testing.T) {
	calls := 0
	m := newTUIModel(func() *store.Dataset {
		calls++
		return store.NewDataset()
	}, "data.json", time.Second)

	m.Update(tickMsg(time.Now()))
	m.Update(tickMsg(time.Now()))
	if calls != 2 {
		t.Errorf("loads: got %d, want 2", calls)
	}
	if view := m.View(); !strings.Contains(view, "No tasks.") {
		t.Errorf("empty dataset view:\n%s", view)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a TTY")
	}
}

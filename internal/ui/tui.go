// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tracker-go/internal/model"
	"github.com/nibzard/tracker-go/internal/store"
	"github.com/nibzard/tracker-go/internal/tracker"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refresh time.Duration
}

// WithRefresh sets how often the data file is reloaded.
func WithRefresh(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// RunTUI starts the read-only dataset browser.
func RunTUI(ctx context.Context, svc *tracker.Service, opts ...TUIOption) error {
	c := &tuiConfig{
		refresh: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	m := newTUIModel(svc.Dataset, svc.Store().Path(), c.refresh)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type view int

const (
	viewTasks view = iota
	viewProjects
	viewUsers
)

var viewNames = []string{"Tasks", "Projects", "Users"}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

type tuiModel struct {
	load         func() *store.Dataset
	dataPath     string
	data         *tuiData
	tickInterval time.Duration
	now          func() time.Time
	view         view
	filter       model.Status // Filter tasks by status
	showHelp     bool         // Show help screen
}

type tuiData struct {
	counts   map[model.Status]int
	users    []tracker.UserRow
	projects []tracker.ProjectRow
	tasks    []tracker.TaskRow
}

type tickMsg time.Time

func newTUIModel(load func() *store.Dataset, dataPath string, interval time.Duration) *tuiModel {
	return &tuiModel{
		load:         load,
		dataPath:     dataPath,
		tickInterval: interval,
		now:          time.Now,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "tab":
			m.view = (m.view + 1) % view(len(viewNames))
		case "shift+tab":
			m.view = (m.view + view(len(viewNames)) - 1) % view(len(viewNames))
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1", "2", "3", "4":
			m.filter = model.Statuses[msg.String()[0]-'1']
			m.view = viewTasks
		case "0":
			m.filter = ""
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.view)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.data == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.data)
	switch m.view {
	case viewTasks:
		writeTasks(&b, m.data.tasks, m.filter)
	case viewProjects:
		writeProjects(&b, m.data.projects)
	case viewUsers:
		writeUsers(&b, m.data.users)
	}
	b.WriteString(dimStyle.Render("Data file: "+m.dataPath) + "\n\n")
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	m.data = buildTUIData(m.load(), m.now())
}

func buildTUIData(d *store.Dataset, now time.Time) *tuiData {
	data := &tuiData{
		counts:   make(map[model.Status]int, len(model.Statuses)),
		users:    tracker.UserRows(d),
		projects: tracker.ProjectRows(d, now),
		tasks:    tracker.TaskRows(d, tracker.TaskFilter{}),
	}
	for _, t := range d.Tasks {
		data.counts[t.Status]++
	}
	return data
}

func writeTitle(b *strings.Builder, active view) {
	b.WriteString(titleStyle.Render("Tracker") + "  ")
	for i, name := range viewNames {
		if view(i) == active {
			b.WriteString(activeStyle.Render(name))
		} else {
			b.WriteString(dimStyle.Render(name))
		}
		b.WriteString("  ")
	}
	b.WriteString("\n\n")
}

func writeOverview(b *strings.Builder, data *tuiData) {
	b.WriteString(fmt.Sprintf("  Open: %d  In progress: %d  Done: %d  Cancelled: %d\n\n",
		data.counts[model.StatusOpen],
		data.counts[model.StatusInProgress],
		data.counts[model.StatusDone],
		data.counts[model.StatusCancelled],
	))
}

func writeTasks(b *strings.Builder, rows []tracker.TaskRow, filter model.Status) {
	if filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", filter))
	}
	var shown int
	for _, r := range rows {
		if filter != "" && r.Status != filter {
			continue
		}
		b.WriteString(formatTask(r) + "\n")
		shown++
	}
	if shown == 0 {
		b.WriteString("  No tasks.\n")
	}
	b.WriteString("\n")
}

func writeProjects(b *strings.Builder, rows []tracker.ProjectRow) {
	if len(rows) == 0 {
		b.WriteString("  No projects.\n\n")
		return
	}
	for _, r := range rows {
		line := fmt.Sprintf("  [%d] %s  owner: %s  tasks: %d", r.ID, r.Title, r.Owner, r.Tasks)
		if r.DueDate != "" {
			line += "  due: " + r.DueDate
		}
		if r.Overdue {
			line += " !overdue"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeUsers(b *strings.Builder, rows []tracker.UserRow) {
	if len(rows) == 0 {
		b.WriteString("  No users.\n\n")
		return
	}
	for _, r := range rows {
		line := fmt.Sprintf("  [%d] %s", r.ID, r.Name)
		if r.Email != "" {
			line += " <" + r.Email + ">"
		}
		b.WriteString(fmt.Sprintf("%s  projects: %d\n", line, r.Projects))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  tab          Next view (tasks, projects, users)\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by open\n")
	b.WriteString("  2            Filter by in_progress\n")
	b.WriteString("  3            Filter by done\n")
	b.WriteString("  4            Filter by cancelled\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

func formatTask(r tracker.TaskRow) string {
	statusIcon := " "
	switch r.Status {
	case model.StatusInProgress:
		statusIcon = ">"
	case model.StatusDone:
		statusIcon = "x"
	case model.StatusCancelled:
		statusIcon = "-"
	}

	line := fmt.Sprintf("  %s [%d] %s (%s)", statusIcon, r.ID, r.Title, r.Project)
	if r.Assignee != "" {
		line += " @" + r.Assignee
	}
	return line
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// Package render formats tracker listings and exports for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/tracker-go/internal/model"
	"github.com/nibzard/tracker-go/internal/tracker"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusColors = map[model.Status]lipgloss.Color{
		model.StatusOpen:       lipgloss.Color("12"),
		model.StatusInProgress: lipgloss.Color("11"),
		model.StatusDone:       lipgloss.Color("10"),
		model.StatusCancelled:  lipgloss.Color("8"),
	}
	overdueStyle = cellStyle.Foreground(lipgloss.Color("9"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func write(w io.Writer, title string, t *table.Table) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(title), t.Render())
	return err
}

// Users writes the user table.
func Users(w io.Writer, rows []tracker.UserRow) error {
	t := newTable("ID", "Name", "Email", "Projects")
	for _, r := range rows {
		t.Row(strconv.Itoa(r.ID), r.Name, r.Email, strconv.Itoa(r.Projects))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return write(w, "Users", t)
}

// Projects writes the project table. Overdue due dates are highlighted.
func Projects(w io.Writer, rows []tracker.ProjectRow) error {
	t := newTable("ID", "Title", "Owner", "Due Date", "Tasks")
	for _, r := range rows {
		due := r.DueDate
		if r.Overdue {
			due += " (overdue)"
		}
		t.Row(strconv.Itoa(r.ID), r.Title, r.Owner, due, strconv.Itoa(r.Tasks))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 3 && row >= 0 && row < len(rows) && rows[row].Overdue {
			return overdueStyle
		}
		return cellStyle
	})
	return write(w, "Projects", t)
}

// Tasks writes the task table with colored statuses.
func Tasks(w io.Writer, rows []tracker.TaskRow) error {
	t := newTable("ID", "Title", "Project", "Status", "Assigned To")
	for _, r := range rows {
		t.Row(strconv.Itoa(r.ID), r.Title, r.Project, string(r.Status), r.Assignee)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 3 && row >= 0 && row < len(rows) {
			if c, ok := statusColors[rows[row].Status]; ok {
				return cellStyle.Foreground(c)
			}
		}
		return cellStyle
	})
	return write(w, "Tasks", t)
}

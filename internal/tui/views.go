package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/classconnect-grupo3/classconnect-cli/internal/courses"
)

// Styles contains lipgloss styles for the course browser
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Favorite lipgloss.Style
	Pending  lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
	KeyDesc  lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).  // Purple
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true),
		Favorite: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// renderList renders the paginated course list with the search bar
func (m Model) renderList() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("ClassConnect Courses"))
	b.WriteString("\n")

	if m.searchInput.Focused() || m.searchQuery != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(" Loading courses...\n")
		return b.String()
	}

	entries := m.visibleEntries()
	if len(entries) == 0 {
		if m.searchQuery != "" {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("No courses matching %q.", m.searchQuery)))
		} else {
			b.WriteString(m.styles.Muted.Render("No courses yet. Press r to reload."))
		}
		b.WriteString("\n")
	}

	page := m.pager.Slice(entries)
	favorites := favoriteIDs(m.cache.Favorites())

	for i, entry := range page {
		line := entry.Title
		if entry.TeacherName != "" {
			line += m.styles.Muted.Render("  by " + entry.TeacherName)
		}
		if favorites[entry.ID] {
			line = m.styles.Favorite.Render("★ ") + line
		} else {
			line = "  " + line
		}
		if entry.Pending {
			line += m.styles.Pending.Render("  (saving...)")
		}
		if i == m.cursor {
			line = m.styles.Selected.Render("▸ " + entry.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	total := courses.PageCount(len(entries), courses.DefaultPageSize)
	if total > 1 {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("\nPage %d/%d", m.pager.Current(), total)))
		b.WriteString("\n")
	}

	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.lastError))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("/: search  ←/→: page  ↑/↓: move  enter: open  f: favorite  r: reload  ?: help  q: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderDetail renders one course with its modules, tasks, and exams
func (m Model) renderDetail() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.detailEntry.Title))
	b.WriteString("\n")
	if m.detailEntry.Description != "" {
		b.WriteString(m.styles.Subtitle.Render(m.detailEntry.Description))
		b.WriteString("\n")
	}

	if m.loading || m.detail == nil {
		b.WriteString(m.spin.View())
		b.WriteString(" Loading course contents...\n")
		return b.String()
	}

	b.WriteString(m.styles.Key.Render("Modules"))
	b.WriteString("\n")
	modules := m.detail.Modules()
	if len(modules) == 0 {
		b.WriteString(m.styles.Muted.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, module := range modules {
		b.WriteString("  " + module.Title + "\n")
		for _, r := range module.Resources {
			b.WriteString(m.styles.Muted.Render("    - "+r.Name) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Key.Render("Tasks"))
	b.WriteString("\n")
	tasks := m.detail.Tasks()
	if len(tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, task := range tasks {
		b.WriteString(fmt.Sprintf("  %s  %s\n", task.Title, m.styles.Muted.Render("due "+task.Deadline)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Key.Render("Exams"))
	b.WriteString("\n")
	exams := m.detail.Exams()
	if len(exams) == 0 {
		b.WriteString(m.styles.Muted.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, exam := range exams {
		line := fmt.Sprintf("  %s  %s", exam.Title, m.styles.Muted.Render("due "+exam.DueDate))
		if exam.Submission != nil {
			line += fmt.Sprintf("  score %.1f", exam.Submission.Score)
		}
		b.WriteString(line + "\n")
	}

	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.lastError))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("esc: back  q: back"))
	b.WriteString("\n")

	return b.String()
}

// renderHelp renders the keybinding reference
func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Help"))
	b.WriteString("\n")

	bindings := []struct{ key, desc string }{
		{"/", "focus the search bar (typing searches as you type)"},
		{"esc", "clear the search, or go back"},
		{"enter", "open the selected course"},
		{"up/down, k/j", "move the selection"},
		{"left/right, h/l", "previous / next page"},
		{"f", "toggle the selected course as favorite"},
		{"r", "reload the collection from the server"},
		{"q, ctrl+c", "quit"},
	}
	for _, binding := range bindings {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.Key.Render(fmt.Sprintf("%-16s", binding.key)),
			m.styles.KeyDesc.Render(binding.desc)))
	}

	b.WriteString(m.styles.Help.Render("Press any key to return."))
	b.WriteString("\n")

	return b.String()
}

func favoriteIDs(entries []courses.Entry) map[string]bool {
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		ids[e.ID] = true
	}
	return ids
}

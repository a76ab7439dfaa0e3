package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"habitmap/internal/models"
	"habitmap/internal/stats"
)

const (
	minPaneWidth     = 30
	defaultPaneWidth = 46
)

func truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, "…")
}

func (m DashboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\nPress Ctrl+C to quit.", m.err)
	}
	if len(m.workspaces) == 0 {
		return CurrentTheme.Base.Render("No workspaces found.\n\nPress W to create one, or Ctrl+C to quit.")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.renderGoalPane(), "  ", m.renderHabitPane())
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.modal.IsOpen() {
		b.WriteString("\n\n")
		b.WriteString(m.renderModal())
	}

	return CurrentTheme.Base.Render(b.String())
}

func (m DashboardModel) paneWidth() int {
	w := defaultPaneWidth
	if m.width > 0 {
		w = (m.width - 8) / 2
	}
	if w < minPaneWidth {
		w = minPaneWidth
	}
	return w
}

func (m DashboardModel) renderHeader() string {
	ws, _ := m.activeWorkspace()
	title := fmt.Sprintf("habitmap · %s", ws.Name)
	if len(m.workspaces) > 1 {
		title += fmt.Sprintf(" (%d/%d)", m.activeWorkspaceIdx+1, len(m.workspaces))
	}
	done := 0
	for _, g := range m.goals {
		if g.Status == string(models.GoalStatusDone) {
			done++
		}
	}
	subtitle := CurrentTheme.Dim.Render(FormatGoalCount(done, len(m.goals)))
	return CurrentTheme.Header.Render(title) + "\n" + subtitle
}

func (m DashboardModel) renderGoalPane() string {
	width := m.paneWidth()
	var lines []string
	lines = append(lines, m.paneTitle("Goals", m.view.focusedPane == paneGoals))

	if len(m.flat) == 0 {
		lines = append(lines, CurrentTheme.Dim.Render("  (a)dd your first goal"))
	}
	for i, g := range m.flat {
		lines = append(lines, m.renderGoalLine(i, g, width))
	}
	return m.paneFrame(m.view.focusedPane == paneGoals, width).Render(strings.Join(lines, "\n"))
}

func (m DashboardModel) renderGoalLine(idx int, g GoalView, width int) string {
	indent := strings.Repeat("  ", g.Level)
	marker := "  "
	if len(g.Subgoals) > 0 {
		if g.Expanded {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}
	label := g.Name
	if n := len(m.habits[g.ID]); n > 0 {
		label += CurrentTheme.Dim.Render(fmt.Sprintf(" [%d]", n))
	}

	style := CurrentTheme.Goal
	if g.Status == string(models.GoalStatusDone) {
		style = CurrentTheme.CompletedGoal
	}
	line := indent + marker + style.Render(truncate(label, width-len(indent)-4))
	if idx == m.view.focusedGoalIdx && m.view.focusedPane == paneGoals {
		return CurrentTheme.Focused.Render("> ") + line
	}
	return "  " + line
}

func (m DashboardModel) renderHabitPane() string {
	width := m.paneWidth()
	var lines []string
	lines = append(lines, m.paneTitle("Habits", m.view.focusedPane == paneHabits))

	g, ok := m.focusedGoal()
	if !ok {
		lines = append(lines, CurrentTheme.Dim.Render("  no goal selected"))
	} else {
		habits := m.habits[g.ID]
		if len(habits) == 0 {
			lines = append(lines, CurrentTheme.Dim.Render("  (a)dd a habit to "+truncate(g.Name, width-16)))
		}
		for i, h := range habits {
			lines = append(lines, m.renderHabitLine(i, h, width))
		}
		if h, ok := m.focusedHabit(); ok && h.CompletionTarget > 0 {
			lines = append(lines, "", m.progress.ViewAs(stats.TargetProgress(h)))
		}
	}
	return m.paneFrame(m.view.focusedPane == paneHabits, width).Render(strings.Join(lines, "\n"))
}

func (m DashboardModel) renderHabitLine(idx int, h models.Habit, width int) string {
	style := CurrentTheme.Habit
	switch {
	case h.TargetReached():
		style = CurrentTheme.HabitDone
	case h.Status == string(models.HabitStatusPaused):
		style = CurrentTheme.Dim
	case m.habitIsMain(h.ID):
		style = CurrentTheme.MainHabit
	case m.habitIsSub(h.ID):
		style = CurrentTheme.SubHabit
	}

	label := h.Name
	if p := FormatProgress(h.CompletionCount, h.CompletionTarget); p != "" {
		label += " " + p
	}
	if h.Status == string(models.HabitStatusPaused) {
		label += " (paused)"
	}

	line := style.Render(truncate(label, width-4))
	if idx == m.view.focusedHabitIdx && m.view.focusedPane == paneHabits {
		return CurrentTheme.Focused.Render("> ") + line
	}
	return "  " + line
}

func (m *DashboardModel) habitIsMain(id int64) bool {
	for _, r := range m.relations {
		if r.Relation == models.RelationMain && r.RelatedHabitID == id {
			return true
		}
		if r.Relation == models.RelationSub && r.HabitID == id {
			return true
		}
	}
	return false
}

func (m *DashboardModel) habitIsSub(id int64) bool {
	for _, r := range m.relations {
		if r.Relation == models.RelationMain && r.HabitID == id {
			return true
		}
		if r.Relation == models.RelationSub && r.RelatedHabitID == id {
			return true
		}
	}
	return false
}

func (m DashboardModel) paneTitle(name string, focused bool) string {
	if focused {
		return CurrentTheme.Focused.Render(name)
	}
	return CurrentTheme.Dim.Render(name)
}

func (m DashboardModel) paneFrame(focused bool, width int) lipgloss.Style {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width)
	if focused {
		return border.BorderForeground(CurrentTheme.Border)
	}
	return border.BorderForeground(lipgloss.Color("240"))
}

func (m DashboardModel) renderFooter() string {
	var help string
	if m.view.focusedPane == paneHabits {
		help = "j/k nav · a add · c complete · e edit · p pause · m main · n next · x delete · tab goals"
	} else {
		help = "j/k nav · a add · A subgoal · d done · e edit · z archive · x delete · tab habits"
	}
	help += " · w workspace · T theme · E export · q quit"

	footer := CurrentTheme.Dim.Render(help)
	if m.Message != "" {
		status := CurrentTheme.Highlight.Render(m.Message)
		if m.messageIsErr {
			status = CurrentTheme.Error.Render(m.Message)
		}
		footer = status + "\n" + footer
	}
	return footer
}

func (m DashboardModel) renderModal() string {
	switch state := m.modal.Current().(type) {
	case *GoalCreateState, *GoalEditState, *HabitCreateState, *HabitEditState, *WorkspaceCreateState:
		return CurrentTheme.Input.Render(m.input.textInput.View())
	case *HabitCompleteState:
		return CurrentTheme.Input.Render("Log completion\n" + m.input.noteInput.View())
	case *GoalDeleteState:
		return CurrentTheme.Input.Render("Delete goal and all of its habits? (y/n)")
	case *HabitDeleteState:
		return CurrentTheme.Input.Render("Delete habit and its history? (y/n)")
	case *RelationPickState:
		return m.renderPicker(fmt.Sprintf("Set %q relation (enter save, backspace remove)", state.Kind),
			relOptionLabels(state.Options), state.Cursor)
	case *ThemeState:
		return m.renderPicker("Theme", m.modal.themeNames, state.Cursor)
	case *ExportState:
		return m.renderPicker("Export", state.Options, state.Cursor)
	}
	return ""
}

func relOptionLabels(options []relOption) []string {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return labels
}

func (m DashboardModel) renderPicker(title string, options []string, cursor int) string {
	var b strings.Builder
	b.WriteString(CurrentTheme.Focused.Render(title))
	for i, opt := range options {
		b.WriteString("\n")
		if i == cursor {
			b.WriteString(CurrentTheme.Focused.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
	}
	return CurrentTheme.Input.Render(b.String())
}

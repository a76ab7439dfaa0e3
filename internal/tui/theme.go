package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name          string
	Base          lipgloss.Style
	Border        lipgloss.Color
	Header        lipgloss.Style
	Goal          lipgloss.Style
	CompletedGoal lipgloss.Style
	Habit         lipgloss.Style
	HabitDone     lipgloss.Style
	MainHabit     lipgloss.Style
	SubHabit      lipgloss.Style
	Streak        lipgloss.Style
	Input         lipgloss.Style
	Focused       lipgloss.Style
	Dim           lipgloss.Style
	Highlight     lipgloss.Style
	Error         lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:          "Default",
		Base:          lipgloss.NewStyle().Margin(1, 2),
		Border:        lipgloss.Color("63"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Align(lipgloss.Center),
		Goal:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CompletedGoal: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Habit:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		HabitDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		MainHabit:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		SubHabit:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Streak:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Input:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Width(50),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	},
	"dracula": {
		Name:          "Dracula",
		Base:          lipgloss.NewStyle().Margin(1, 2),
		Border:        lipgloss.Color("62"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true).Align(lipgloss.Center),
		Goal:          lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		CompletedGoal: lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Habit:         lipgloss.NewStyle().Foreground(lipgloss.Color("253")),
		HabitDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		MainHabit:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),
		SubHabit:      lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Streak:        lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		Input:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1).Width(50),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),
	},
	"light": {
		Name:          "Light",
		Base:          lipgloss.NewStyle().Margin(1, 2),
		Border:        lipgloss.Color("25"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true).Align(lipgloss.Center),
		Goal:          lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		CompletedGoal: lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Strikethrough(true),
		Habit:         lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		HabitDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		MainHabit:     lipgloss.NewStyle().Foreground(lipgloss.Color("26")).Bold(true),
		SubHabit:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Streak:        lipgloss.NewStyle().Foreground(lipgloss.Color("166")).Bold(true),
		Input:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("25")).Padding(0, 1).Width(50),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
	},
}

// CurrentTheme holds the currently active theme.
// We initialize it to default to avoid nil pointer dereferences.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

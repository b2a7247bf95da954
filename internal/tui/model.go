package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akarsch/netlens/internal/analyze"
	"github.com/akarsch/netlens/internal/collect"
	"github.com/akarsch/netlens/pkg/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")). // White
			Background(lipgloss.Color("#5f5fd7")). // Purple/Blue
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#585858")) // Dark Gray

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffdf87")) // Amber

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22aa22")) // Green

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5f5f")) // Soft red

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")) // Dimmed Gray
)

const refreshEvery = 5 * time.Second

type watchModel struct {
	collector *collect.Collector
	cfg       analyze.Config

	table    table.Model
	res      model.AnalysisResult
	warnings []string
	taken    time.Time
	err      error

	width    int
	quitting bool
}

func newWatchModel(c *collect.Collector, cfg analyze.Config) watchModel {
	columns := []table.Column{
		{Title: "State", Width: 14},
		{Title: "Count", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(lipgloss.Color("#5f5fd7")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#585858")).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#5f5fd7"))
	t.SetStyles(styles)

	return watchModel{collector: c, cfg: cfg, table: t}
}

// Run starts the live view and blocks until the user quits.
func Run(c *collect.Collector, cfg analyze.Config) error {
	p := tea.NewProgram(newWatchModel(c, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akarsch/netlens/internal/analyze"
	"github.com/akarsch/netlens/pkg/model"
)

type tickMsg time.Time

type snapshotMsg struct {
	res      model.AnalysisResult
	warnings []string
	taken    time.Time
	err      error
}

func waitTick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) refresh() tea.Cmd {
	collector, cfg := m.collector, m.cfg
	return func() tea.Msg {
		snap, err := collector.Collect(context.Background())
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{
			res:      analyze.Analyze(snap, cfg),
			warnings: snap.Warnings,
			taken:    snap.Taken,
		}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), waitTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.refresh(), waitTick())

	case snapshotMsg:
		m.err = msg.err
		if msg.err == nil {
			m.res = msg.res
			m.warnings = msg.warnings
			m.taken = msg.taken
			m.table.SetRows(stateRows(msg.res))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func stateRows(res model.AnalysisResult) []table.Row {
	states := make([]string, 0, len(res.StateCounts))
	for s := range res.StateCounts {
		states = append(states, s)
	}
	sort.Strings(states)

	rows := make([]table.Row, 0, len(states)+1)
	for _, s := range states {
		rows = append(rows, table.Row{s, strconv.Itoa(res.StateCounts[s])})
	}
	rows = append(rows, table.Row{"TOTAL", strconv.Itoa(res.TotalConnections)})
	return rows
}

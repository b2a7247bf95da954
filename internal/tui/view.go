package tui

import (
	"fmt"
	"strings"
)

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("netlens watch"))
	if !m.taken.IsZero() {
		b.WriteString(footerStyle.Render("  refreshed " + m.taken.Format("15:04:05")))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("collection failed: %v", m.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(tableBorderStyle.Render(m.table.View()))
	b.WriteString("\n\n")

	findings := 0
	if m.res.HighConnections {
		findings++
		b.WriteString(warnStyle.Render(fmt.Sprintf("HIGH CONNECTION COUNT: %d", m.res.TotalConnections)) + "\n")
	}
	if m.res.HighTimeWait {
		findings++
		b.WriteString(warnStyle.Render(fmt.Sprintf("HIGH TIME_WAIT: %d", m.res.TimeWaitCount)) + "\n")
	}
	if len(m.res.DuplicatePorts) > 0 {
		findings++
		b.WriteString(warnStyle.Render(fmt.Sprintf("duplicate listen ports: %v", m.res.DuplicatePorts)) + "\n")
	}
	if m.res.SuspiciousTotal > 0 {
		findings++
		b.WriteString(warnStyle.Render(fmt.Sprintf("unexpected listen ports: %v (%d total)", m.res.SuspiciousPorts, m.res.SuspiciousTotal)) + "\n")
	}
	if len(m.res.ExternalConns) > 0 {
		findings++
		b.WriteString(warnStyle.Render(fmt.Sprintf("external connections: %d", len(m.res.ExternalConns))) + "\n")
	}
	if findings == 0 && m.err == nil {
		b.WriteString(okStyle.Render("no anomalies") + "\n")
	}

	for _, w := range m.warnings {
		b.WriteString(footerStyle.Render(w) + "\n")
	}

	b.WriteString("\n" + footerStyle.Render("q: quit"))
	return b.String()
}

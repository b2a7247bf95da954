package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akarsch/netlens/pkg/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5f5fd7")) // Purple/Blue

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bcbcbc")) // Light Gray

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffdf87")) // Amber

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22aa22")) // Green

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")) // Dimmed Gray
)

type textRenderer struct {
	b     strings.Builder
	color bool
}

func (t *textRenderer) styled(s lipgloss.Style, text string) string {
	if t.color {
		return s.Render(text)
	}
	return text
}

func (t *textRenderer) section(name string) {
	fmt.Fprintf(&t.b, "\n%s\n", t.styled(sectionStyle, "--- "+name+" ---"))
}

// RenderText produces the sectioned human-readable report.
func RenderText(snap model.Snapshot, res model.AnalysisResult, advisories []model.Advisory, colorEnabled bool) string {
	t := &textRenderer{color: colorEnabled}

	fmt.Fprintf(&t.b, "%s\n", t.styled(titleStyle, "=== Network Diagnostic Report ==="))
	fmt.Fprintf(&t.b, "Taken: %s\n", snap.Taken.Format("2006-01-02 15:04:05"))

	t.section("Connection States")
	states := make([]string, 0, len(res.StateCounts))
	for s := range res.StateCounts {
		states = append(states, s)
	}
	sort.Strings(states)
	for _, s := range states {
		fmt.Fprintf(&t.b, "  %s: %d\n", s, res.StateCounts[s])
	}
	fmt.Fprintf(&t.b, "  Total: %d\n", res.TotalConnections)

	t.section("Listening Port Findings")
	if len(res.DuplicatePorts) == 0 && res.SuspiciousTotal == 0 {
		fmt.Fprintf(&t.b, "  %s\n", t.styled(okStyle, "No listening-port anomalies"))
	}
	if len(res.DuplicatePorts) > 0 {
		fmt.Fprintf(&t.b, "  %s %s\n",
			t.styled(warnStyle, "Duplicate listen ports:"), joinPorts(res.DuplicatePorts))
	}
	if res.SuspiciousTotal > 0 {
		line := fmt.Sprintf("  %s %s",
			t.styled(warnStyle, "Unexpected listen ports:"), joinPorts(res.SuspiciousPorts))
		if res.SuspiciousTotal > len(res.SuspiciousPorts) {
			line += fmt.Sprintf(" ... and %d more", res.SuspiciousTotal-len(res.SuspiciousPorts))
		}
		fmt.Fprintf(&t.b, "%s\n", line)
	}

	t.section("External Connections")
	if len(res.ExternalConns) == 0 {
		fmt.Fprintf(&t.b, "  %s\n", t.styled(okStyle, "None"))
	}
	for _, c := range res.ExternalConns {
		proc := c.Process
		if proc == "" {
			proc = "unknown"
		}
		fmt.Fprintf(&t.b, "  %s:%d <- :%d [%s] (%s)\n", c.RemoteAddr, c.RemotePort, c.LocalPort, c.State, proc)
	}

	if len(snap.Interfaces) > 0 {
		t.section("Interfaces")
		for _, i := range snap.Interfaces {
			fmt.Fprintf(&t.b, "  %-12s rx %d bytes / %d pkts / %d err / %d drop, tx %d bytes / %d pkts / %d err / %d drop\n",
				i.Name, i.RxBytes, i.RxPackets, i.RxErrors, i.RxDropped,
				i.TxBytes, i.TxPackets, i.TxErrors, i.TxDropped)
		}
	}

	if len(snap.Routes) > 0 {
		t.section("Routes")
		for _, r := range snap.Routes {
			gw := r.Gateway
			if gw == "" {
				gw = "direct"
			}
			fmt.Fprintf(&t.b, "  %-24s via %-16s dev %s\n", r.Destination, gw, r.Interface)
		}
	}

	if len(snap.Probes) > 0 {
		t.section("Probes")
		for _, p := range snap.Probes {
			switch {
			case p.Success && p.Kind == "icmp":
				fmt.Fprintf(&t.b, "  %s %s: %s in %s\n", p.Kind, p.Target, t.styled(okStyle, "reachable"), p.RTT)
			case p.Success:
				fmt.Fprintf(&t.b, "  %s %s: %s -> %s\n", p.Kind, p.Target, t.styled(okStyle, "resolved"), strings.Join(p.Addresses, ", "))
			default:
				fmt.Fprintf(&t.b, "  %s %s: %s\n", p.Kind, p.Target, t.styled(warnStyle, p.Err))
			}
		}
	}

	if len(res.ZombieProcesses) > 0 || len(res.HighFDProcesses) > 0 {
		t.section("Process Findings")
		for _, p := range res.ZombieProcesses {
			fmt.Fprintf(&t.b, "  %s %s (pid %d)\n", t.styled(warnStyle, "zombie:"), p.Command, p.PID)
		}
		for _, p := range res.HighFDProcesses {
			fmt.Fprintf(&t.b, "  %s %s (pid %d) holds %d descriptors\n", t.styled(warnStyle, "high fd count:"), p.Command, p.PID, p.FDCount)
		}
	}

	t.section("Summary")
	if res.HighConnections {
		fmt.Fprintf(&t.b, "  %s %d connections\n", t.styled(warnStyle, "HIGH CONNECTION COUNT:"), res.TotalConnections)
	}
	if res.HighTimeWait {
		fmt.Fprintf(&t.b, "  %s %d sockets\n", t.styled(warnStyle, "HIGH TIME_WAIT:"), res.TimeWaitCount)
	}
	if !res.HighConnections && !res.HighTimeWait && len(res.DuplicatePorts) == 0 &&
		res.SuspiciousTotal == 0 && len(res.ZombieProcesses) == 0 && len(res.HighFDProcesses) == 0 {
		fmt.Fprintf(&t.b, "  %s\n", t.styled(okStyle, "No anomalies detected"))
	}

	if len(advisories) > 0 {
		t.section("Recommendations")
		for _, a := range advisories {
			fmt.Fprintf(&t.b, "  %s\n", t.styled(warnStyle, a.Condition))
			for _, action := range a.Actions {
				fmt.Fprintf(&t.b, "    - %s\n", action)
			}
		}
	}

	if len(snap.Warnings) > 0 {
		t.section("Collection Warnings")
		for _, w := range snap.Warnings {
			fmt.Fprintf(&t.b, "  %s\n", t.styled(dimStyle, w))
		}
	}

	return t.b.String()
}

func joinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}

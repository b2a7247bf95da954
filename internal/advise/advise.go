package advise

import "github.com/akarsch/netlens/pkg/model"

type rule struct {
	applies   func(model.AnalysisResult) bool
	condition string
	actions   []string
}

// The advisory table is data, not logic: adding a condition means
// adding a row.
var rules = []rule{
	{
		applies:   func(r model.AnalysisResult) bool { return r.HighConnections },
		condition: "high connection count",
		actions: []string{
			"Check long-running services for connection leaks",
			"Review client keep-alive and pooling settings",
			"Raise descriptor limits only if the load is legitimate",
		},
	},
	{
		applies:   func(r model.AnalysisResult) bool { return r.HighTimeWait },
		condition: "TIME_WAIT churn",
		actions: []string{
			"Enable connection reuse (keep-alive) in high-churn clients",
			"Consider net.ipv4.tcp_tw_reuse on outbound-heavy hosts",
			"Servers that rebind quickly should set SO_REUSEADDR",
		},
	},
	{
		applies:   func(r model.AnalysisResult) bool { return len(r.DuplicatePorts) > 0 },
		condition: "duplicate listening ports",
		actions: []string{
			"Identify the owning processes and stop the unintended one",
			"If SO_REUSEPORT sharing is intended, rerun with --reuse-port-ok",
		},
	},
	{
		applies:   func(r model.AnalysisResult) bool { return r.SuspiciousTotal > 0 },
		condition: "unexpected listening ports",
		actions: []string{
			"Verify each unexpected listener is a known service",
			"Add expected ports to the allow-list (--allowed-ports)",
			"Stop or firewall listeners you cannot account for",
		},
	},
	{
		applies:   func(r model.AnalysisResult) bool { return len(r.ExternalConns) > 0 },
		condition: "connections to external hosts",
		actions: []string{
			"Confirm each remote endpoint is expected",
			"Cross-check destinations against egress policy",
		},
	},
	{
		applies:   func(r model.AnalysisResult) bool { return len(r.ZombieProcesses) > 0 },
		condition: "zombie processes",
		actions: []string{
			"Fix or restart the parent process; it is not reaping children",
		},
	},
	{
		applies:   func(r model.AnalysisResult) bool { return len(r.HighFDProcesses) > 0 },
		condition: "high per-process descriptor count",
		actions: []string{
			"Inspect the process for descriptor leaks",
			"Raise RLIMIT_NOFILE only after ruling out a leak",
		},
	},
}

// Recommend maps the result's flags through the advisory table.
func Recommend(res model.AnalysisResult) []model.Advisory {
	var advisories []model.Advisory
	for _, r := range rules {
		if r.applies(res) {
			advisories = append(advisories, model.Advisory{
				Condition: r.condition,
				Actions:   r.actions,
			})
		}
	}
	return advisories
}

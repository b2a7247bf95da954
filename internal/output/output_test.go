package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akarsch/netlens/pkg/model"
)

func sampleInputs() (model.Snapshot, model.AnalysisResult, []model.Advisory) {
	snap := model.Snapshot{
		Taken: time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC),
		Interfaces: []model.InterfaceStat{
			{Name: "eth0", RxBytes: 1024, RxPackets: 10, TxBytes: 2048, TxPackets: 20},
		},
		Routes: []model.RouteEntry{
			{Destination: "default", Gateway: "10.0.0.1", Interface: "eth0"},
			{Destination: "10.0.0.0/24", Interface: "eth0"},
		},
		Probes: []model.ProbeResult{
			{Target: "db.internal", Kind: "dns", Success: true, Addresses: []string{"10.0.0.9"}},
			{Target: "db.internal", Kind: "icmp", Err: "unreachable: timeout"},
		},
		Warnings: []string{"socket ownership incomplete: 3 of 120 fd directories denied"},
	}
	res := model.AnalysisResult{
		StateCounts:      map[string]int{model.StateListen: 2, model.StateTimeWait: 150, model.StateEstablished: 4},
		TotalConnections: 156,
		TimeWaitCount:    150,
		HighTimeWait:     true,
		DuplicatePorts:   []int{9000},
		SuspiciousPorts:  []int{8888, 9000},
		SuspiciousTotal:  5,
		ExternalConns: []model.ExternalConn{
			{RemoteAddr: "8.8.8.8", RemotePort: 443, LocalPort: 41000, State: model.StateEstablished, Process: "curl"},
		},
		ZombieProcesses: []model.ProcessStat{{PID: 99, Command: "ghost", Status: "zombie"}},
	}
	advisories := []model.Advisory{
		{Condition: "TIME_WAIT churn", Actions: []string{"Enable connection reuse (keep-alive) in high-churn clients"}},
	}
	return snap, res, advisories
}

func TestRenderJSONDeterministic(t *testing.T) {
	snap, res, advisories := sampleInputs()

	first, err := RenderJSON(snap, res, advisories)
	assert.NoError(t, err)
	second, err := RenderJSON(snap, res, advisories)
	assert.NoError(t, err)
	assert.Equal(t, first, second, "identical inputs must render byte-identically")
}

func TestRenderJSONFieldNames(t *testing.T) {
	snap, res, advisories := sampleInputs()

	out, err := RenderJSON(snap, res, advisories)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal([]byte(out), &decoded))
	for _, field := range []string{"Taken", "Analysis", "Advisories", "Interfaces", "Routes", "Probes", "Warnings"} {
		assert.Contains(t, decoded, field)
	}

	analysis := decoded["Analysis"].(map[string]any)
	assert.Equal(t, float64(156), analysis["TotalConnections"])
	assert.Equal(t, true, analysis["HighTimeWait"])
}

func TestRenderTextSections(t *testing.T) {
	snap, res, advisories := sampleInputs()

	out := RenderText(snap, res, advisories, false)

	for _, want := range []string{
		"=== Network Diagnostic Report ===",
		"--- Connection States ---",
		"TIME_WAIT: 150",
		"Total: 156",
		"Duplicate listen ports: 9000",
		"Unexpected listen ports: 8888, 9000 ... and 3 more",
		"8.8.8.8:443",
		"--- Interfaces ---",
		"--- Routes ---",
		"dev eth0",
		"unreachable: timeout",
		"zombie: ghost (pid 99)",
		"HIGH TIME_WAIT: 150",
		"TIME_WAIT churn",
		"--- Collection Warnings ---",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderTextNoColorHasNoEscapes(t *testing.T) {
	snap, res, advisories := sampleInputs()
	out := RenderText(snap, res, advisories, false)
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderTextCleanRun(t *testing.T) {
	snap := model.Snapshot{Taken: time.Now()}
	res := model.AnalysisResult{StateCounts: map[string]int{}}

	out := RenderText(snap, res, nil, false)
	assert.Contains(t, out, "No anomalies detected")
	assert.Contains(t, out, "No listening-port anomalies")
}

func TestPersistWritesTimestampedReport(t *testing.T) {
	dir := t.TempDir()
	when := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)

	path, err := Persist("report body", dir, "text", when)
	assert.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "network_diagnostic_20260825_143005.txt", filepath.Base(path))

	body, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "report body", string(body))
}

func TestPersistStructuredUsesJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path, err := Persist("{}", dir, "structured", time.Now())
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))
	assert.Regexp(t, regexp.MustCompile(`network_diagnostic_\d{8}_\d{6}\.json$`), path)
}

func TestPersistFailureReturnsError(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	assert.NoError(t, os.WriteFile(blocked, nil, 0o644)) // a file, not a dir

	_, err := Persist("x", filepath.Join(blocked, "sub"), "text", time.Now())
	assert.Error(t, err)
}

package output

import (
	"encoding/json"
	"time"

	"github.com/akarsch/netlens/pkg/model"
)

// Report is the structured rendering. Field names are part of the
// output contract; downstream tooling keys on them.
type Report struct {
	Taken      time.Time
	Analysis   model.AnalysisResult
	Advisories []model.Advisory
	Interfaces []model.InterfaceStat
	Routes     []model.RouteEntry
	Probes     []model.ProbeResult
	Warnings   []string
}

// RenderJSON emits the structured report. Rendering the same inputs
// twice yields byte-identical output.
func RenderJSON(snap model.Snapshot, res model.AnalysisResult, advisories []model.Advisory) (string, error) {
	report := Report{
		Taken:      snap.Taken,
		Analysis:   res,
		Advisories: advisories,
		Interfaces: snap.Interfaces,
		Routes:     snap.Routes,
		Probes:     snap.Probes,
		Warnings:   snap.Warnings,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

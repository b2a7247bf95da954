package collect

import (
	"github.com/shirou/gopsutil/v4/process"

	"github.com/akarsch/netlens/pkg/model"
)

// PsutilProcessSource reads the process table through gopsutil. Fields
// a pid refuses to expose are left zero; the pid still appears.
type PsutilProcessSource struct{}

func (PsutilProcessSource) Processes() ([]model.ProcessStat, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	stats := make([]model.ProcessStat, 0, len(procs))
	for _, p := range procs {
		ps := model.ProcessStat{PID: int(p.Pid)}
		if name, err := p.Name(); err == nil {
			ps.Command = name
		}
		if status, err := p.Status(); err == nil && len(status) > 0 {
			ps.Status = status[0]
		}
		if fds, err := p.NumFDs(); err == nil {
			ps.FDCount = int(fds)
		}
		stats = append(stats, ps)
	}
	return stats, nil
}

package analyze

import (
	"net"
	"sort"
	"strings"

	"github.com/akarsch/netlens/pkg/model"
)

// Analyze derives findings from one snapshot. It performs no I/O and
// its output does not depend on the order of the input records.
func Analyze(snap model.Snapshot, cfg Config) model.AnalysisResult {
	res := model.AnalysisResult{
		StateCounts:      make(map[string]int),
		TotalConnections: len(snap.Sockets),
	}

	for _, s := range snap.Sockets {
		res.StateCounts[s.State]++
	}
	res.TimeWaitCount = res.StateCounts[model.StateTimeWait]

	res.HighConnections = res.TotalConnections > cfg.MaxConnections
	res.HighTimeWait = res.TimeWaitCount > cfg.MaxTimeWait

	res.DuplicatePorts = duplicatePorts(snap.Sockets, cfg.ReusePortOK)
	res.SuspiciousPorts, res.SuspiciousTotal = suspiciousPorts(snap.Sockets, cfg)
	res.ExternalConns = externalConns(snap.Sockets, cfg.PrivateNets)

	for _, p := range snap.Processes {
		if isZombie(p.Status) {
			res.ZombieProcesses = append(res.ZombieProcesses, p)
		}
		if cfg.MaxFDPerProc > 0 && p.FDCount > cfg.MaxFDPerProc {
			res.HighFDProcesses = append(res.HighFDProcesses, p)
		}
	}
	sort.Slice(res.ZombieProcesses, func(i, j int) bool {
		return res.ZombieProcesses[i].PID < res.ZombieProcesses[j].PID
	})
	sort.Slice(res.HighFDProcesses, func(i, j int) bool {
		return res.HighFDProcesses[i].PID < res.HighFDProcesses[j].PID
	})

	return res
}

// duplicatePorts flags listen ports claimed by more than one process.
// With reusePortOK, several sockets on a port are tolerated while they
// all belong to one program; ownerless multiplicity is flagged either
// way, since sharing cannot be confirmed without an owner.
func duplicatePorts(sockets []model.SocketRecord, reusePortOK bool) []int {
	type owners struct {
		pids     map[int]struct{}
		commands map[string]struct{}
		records  int
	}
	byPort := make(map[int]*owners)

	for _, s := range sockets {
		if !s.Listening() {
			continue
		}
		o := byPort[s.LocalPort]
		if o == nil {
			o = &owners{pids: make(map[int]struct{}), commands: make(map[string]struct{})}
			byPort[s.LocalPort] = o
		}
		o.records++
		if s.PID > 0 {
			o.pids[s.PID] = struct{}{}
			o.commands[s.Process] = struct{}{}
		}
	}

	var dup []int
	for port, o := range byPort {
		conflict := false
		switch {
		case len(o.pids) == 0:
			conflict = o.records > 1
		case reusePortOK:
			conflict = len(o.commands) > 1
		default:
			conflict = len(o.pids) > 1
		}
		if conflict {
			dup = append(dup, port)
		}
	}
	sort.Ints(dup)
	return dup
}

func suspiciousPorts(sockets []model.SocketRecord, cfg Config) ([]int, int) {
	seen := make(map[int]struct{})
	for _, s := range sockets {
		if !s.Listening() {
			continue
		}
		if _, ok := cfg.AllowedPorts[s.LocalPort]; ok {
			continue
		}
		seen[s.LocalPort] = struct{}{}
	}

	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)

	total := len(ports)
	if cfg.DisplayLimit > 0 && total > cfg.DisplayLimit {
		ports = ports[:cfg.DisplayLimit]
	}
	return ports, total
}

func externalConns(sockets []model.SocketRecord, privateNets []*net.IPNet) []model.ExternalConn {
	var conns []model.ExternalConn
	for _, s := range sockets {
		if s.Listening() || s.RemotePort == 0 {
			continue
		}
		ip := net.ParseIP(s.RemoteAddr)
		if ip == nil || !isExternal(ip, privateNets) {
			continue
		}
		conns = append(conns, model.ExternalConn{
			RemoteAddr: s.RemoteAddr,
			RemotePort: s.RemotePort,
			LocalPort:  s.LocalPort,
			State:      s.State,
			Process:    s.Process,
		})
	}
	sort.Slice(conns, func(i, j int) bool {
		a, b := conns[i], conns[j]
		if a.RemoteAddr != b.RemoteAddr {
			return a.RemoteAddr < b.RemoteAddr
		}
		if a.RemotePort != b.RemotePort {
			return a.RemotePort < b.RemotePort
		}
		return a.LocalPort < b.LocalPort
	})
	return conns
}

func isExternal(ip net.IP, privateNets []*net.IPNet) bool {
	if ip.IsUnspecified() || ip.IsLoopback() || ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return false
	}
	for _, n := range privateNets {
		if n.Contains(ip) {
			return false
		}
	}
	return true
}

func isZombie(status string) bool {
	switch strings.ToUpper(status) {
	case "Z", "ZOMBIE":
		return true
	}
	return false
}

//go:build linux

package collect

// NewSystemCollector wires the native providers for this host.
func NewSystemCollector() *Collector {
	return &Collector{
		Sockets:    ProcSocketSource{Root: "/proc"},
		Owners:     ProcOwnerSource{Root: "/proc"},
		Processes:  PsutilProcessSource{},
		Interfaces: PsutilInterfaceSource{},
		Routes:     NetlinkRouteSource{},
	}
}

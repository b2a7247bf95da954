package model

import "time"

// InterfaceStat holds cumulative counters for one network interface.
type InterfaceStat struct {
	Name      string
	RxBytes   uint64
	RxPackets uint64
	RxErrors  uint64
	RxDropped uint64
	TxBytes   uint64
	TxPackets uint64
	TxErrors  uint64
	TxDropped uint64
}

// RouteEntry is one row of the kernel routing table.
type RouteEntry struct {
	Destination string // CIDR, or "default"
	Gateway     string // empty when directly connected
	Interface   string
}

// ProcessStat carries the process-table facts the analyzer cares about.
type ProcessStat struct {
	PID     int
	Command string
	Status  string // R, S, Z, ...
	FDCount int
}

// ProbeResult records the outcome of one reachability or DNS probe.
// A timed-out or failed probe is a finding, not an error.
type ProbeResult struct {
	Target    string
	Kind      string // icmp, dns
	Success   bool
	RTT       time.Duration
	Addresses []string
	Err       string
}

// Snapshot is one immutable collection pass. Sections a provider could
// not fill are empty, with an explanation appended to Warnings.
type Snapshot struct {
	Taken      time.Time
	Sockets    []SocketRecord
	Interfaces []InterfaceStat
	Routes     []RouteEntry
	Processes  []ProcessStat
	Probes     []ProbeResult
	Warnings   []string
}

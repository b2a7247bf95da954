package model

// ExternalConn is a socket whose remote end is neither loopback nor in
// a configured private range.
type ExternalConn struct {
	RemoteAddr string
	RemotePort int
	LocalPort  int
	State      string
	Process    string
}

// AnalysisResult is derived from exactly one Snapshot and one config.
// Identical inputs produce an identical result.
type AnalysisResult struct {
	StateCounts      map[string]int
	TotalConnections int

	DuplicatePorts  []int
	SuspiciousPorts []int // capped at the display limit, ascending
	SuspiciousTotal int   // uncapped count

	ExternalConns []ExternalConn

	ZombieProcesses []ProcessStat
	HighFDProcesses []ProcessStat

	HighConnections bool
	HighTimeWait    bool
	TimeWaitCount   int
}

// Advisory pairs a detected condition with suggested operator actions.
type Advisory struct {
	Condition string
	Actions   []string
}

package analyze

import "net"

// DefaultAllowedPorts is the stock allow-list of expected listeners.
var DefaultAllowedPorts = []int{
	22, 80, 443, 53, 25, 110, 143, 993, 995, 21, 23, 69, 123,
	161, 162, 389, 636, 1433, 3306, 5432, 6379, 11211, 27017,
}

const (
	DefaultMaxConnections = 1000
	DefaultMaxTimeWait    = 100
	DefaultMaxFDPerProc   = 1024
	DefaultDisplayLimit   = 10
)

// Config holds the analyzer thresholds and allow-lists. The zero value
// is not useful; start from DefaultConfig.
type Config struct {
	MaxConnections int
	MaxTimeWait    int
	MaxFDPerProc   int
	DisplayLimit   int

	// AllowedPorts are listeners that never count as suspicious.
	AllowedPorts map[int]struct{}

	// PrivateNets extends the built-in loopback/private/link-local
	// exemption for external-connection detection.
	PrivateNets []*net.IPNet

	// ReusePortOK tolerates several sockets sharing one listen port as
	// long as they belong to the same program, for SO_REUSEPORT setups.
	ReusePortOK bool
}

func DefaultConfig() Config {
	return Config{
		MaxConnections: DefaultMaxConnections,
		MaxTimeWait:    DefaultMaxTimeWait,
		MaxFDPerProc:   DefaultMaxFDPerProc,
		DisplayLimit:   DefaultDisplayLimit,
		AllowedPorts:   PortSet(DefaultAllowedPorts),
	}
}

// PortSet builds the allow-list set from a port list.
func PortSet(ports []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ports))
	for _, p := range ports {
		set[p] = struct{}{}
	}
	return set
}

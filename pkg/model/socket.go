package model

// Socket states as reported by the kernel socket tables.
const (
	StateEstablished = "ESTABLISHED"
	StateSynSent     = "SYN_SENT"
	StateSynRecv     = "SYN_RECV"
	StateFinWait1    = "FIN_WAIT1"
	StateFinWait2    = "FIN_WAIT2"
	StateTimeWait    = "TIME_WAIT"
	StateClose       = "CLOSE"
	StateCloseWait   = "CLOSE_WAIT"
	StateLastAck     = "LAST_ACK"
	StateListen      = "LISTEN"
	StateClosing     = "CLOSING"
	StateUnconn      = "UNCONN"
	StateUnknown     = "UNKNOWN"
)

// SocketRecord is one row of the socket table, taken at snapshot time.
// PID is 0 and Process empty when ownership could not be resolved.
type SocketRecord struct {
	Protocol   string // tcp, tcp6, udp, udp6
	LocalAddr  string
	LocalPort  int
	RemoteAddr string
	RemotePort int
	State      string
	Inode      string
	PID        int
	Process    string
}

// Listening reports whether the record represents a listening socket.
// UDP sockets never enter LISTEN; an unconnected UDP socket bound to a
// local port counts as listening.
func (s SocketRecord) Listening() bool {
	if s.State == StateListen {
		return true
	}
	if s.Protocol == "udp" || s.Protocol == "udp6" {
		return s.State == StateUnconn && s.LocalPort > 0
	}
	return false
}

package probe

import (
	"context"
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"

	"github.com/akarsch/netlens/pkg/model"
)

const protocolICMP = 1

// DefaultTimeout bounds every probe; a slow target becomes a negative
// finding, never a hung run.
const DefaultTimeout = 3 * time.Second

// Pinger sends a single ICMP echo over an unprivileged datagram socket.
type Pinger struct {
	Timeout time.Duration
}

func (p Pinger) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

// Ping probes target once. All failures, including timeout and the
// socket being unavailable to this user, come back as an unsuccessful
// result with Err set.
func (p Pinger) Ping(ctx context.Context, target string) model.ProbeResult {
	res := model.ProbeResult{Target: target, Kind: "icmp"}

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	ipAddrs, err := net.DefaultResolver.LookupIPAddr(ctx, target)
	if err != nil {
		res.Err = "unresolved: " + err.Error()
		return res
	}
	var dst net.IP
	for _, a := range ipAddrs {
		if v4 := a.IP.To4(); v4 != nil {
			dst = v4
			break
		}
	}
	if dst == nil {
		res.Err = "no IPv4 address"
		return res
	}

	conn, err := icmp.ListenPacket("udp4", "0.0.0.0")
	if err != nil {
		res.Err = "icmp socket: " + err.Error()
		return res
	}
	defer conn.Close()

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Body: &icmp.Echo{
			ID:   os.Getpid() & 0xffff,
			Seq:  1,
			Data: []byte("netlens"),
		},
	}
	wire, err := msg.Marshal(nil)
	if err != nil {
		res.Err = err.Error()
		return res
	}

	deadline := time.Now().Add(p.timeout())
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		res.Err = err.Error()
		return res
	}

	start := time.Now()
	if _, err := conn.WriteTo(wire, &net.UDPAddr{IP: dst}); err != nil {
		res.Err = "unreachable: " + err.Error()
		return res
	}

	buf := make([]byte, 1500)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			res.Err = "unreachable: " + err.Error()
			return res
		}
		reply, err := icmp.ParseMessage(protocolICMP, buf[:n])
		if err != nil {
			continue
		}
		if reply.Type == ipv4.ICMPTypeEchoReply {
			res.Success = true
			res.RTT = time.Since(start)
			res.Addresses = []string{dst.String()}
			return res
		}
	}
}

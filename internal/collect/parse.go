package collect

import (
	"bufio"
	"encoding/hex"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/akarsch/netlens/pkg/model"
)

var stateMap = map[string]string{
	"01": model.StateEstablished,
	"02": model.StateSynSent,
	"03": model.StateSynRecv,
	"04": model.StateFinWait1,
	"05": model.StateFinWait2,
	"06": model.StateTimeWait,
	"07": model.StateClose,
	"08": model.StateCloseWait,
	"09": model.StateLastAck,
	"0A": model.StateListen,
	"0B": model.StateClosing,
}

// parseSocketTable reads one /proc/net/{tcp,tcp6,udp,udp6} style table.
// Rows that do not parse are skipped rather than failing the table.
func parseSocketTable(r io.Reader, proto string) []model.SocketRecord {
	ipv6 := strings.HasSuffix(proto, "6")
	udp := strings.HasPrefix(proto, "udp")

	var records []model.SocketRecord

	scanner := bufio.NewScanner(r)
	scanner.Scan() // skip header

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}

		state, ok := stateMap[fields[3]]
		if !ok {
			state = model.StateUnknown
		}
		// The kernel keeps unconnected UDP sockets in CLOSE (07).
		if udp && state == model.StateClose {
			state = model.StateUnconn
		}

		localAddr, localPort := parseHexAddr(fields[1], ipv6)
		remoteAddr, remotePort := parseHexAddr(fields[2], ipv6)

		records = append(records, model.SocketRecord{
			Protocol:   proto,
			LocalAddr:  localAddr,
			LocalPort:  localPort,
			RemoteAddr: remoteAddr,
			RemotePort: remotePort,
			State:      state,
			Inode:      fields[9],
		})
	}

	return records
}

// parseHexAddr decodes the kernel's IP:port hex encoding.
func parseHexAddr(raw string, ipv6 bool) (string, int) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return "", 0
	}
	port, _ := strconv.ParseInt(parts[1], 16, 32)

	b, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", int(port)
	}

	if ipv6 {
		if len(b) != 16 {
			return "::", int(port)
		}
		// /proc/net/tcp6 stores IPv6 as 4 little-endian 32-bit groups.
		// Reverse bytes within each group.
		ip := make(net.IP, 16)
		for i := 0; i < 4; i++ {
			ip[i*4+0] = b[i*4+3]
			ip[i*4+1] = b[i*4+2]
			ip[i*4+2] = b[i*4+1]
			ip[i*4+3] = b[i*4+0]
		}
		return ip.String(), int(port)
	}

	if len(b) < 4 {
		return "", int(port)
	}
	ip := strconv.Itoa(int(b[3])) + "." +
		strconv.Itoa(int(b[2])) + "." +
		strconv.Itoa(int(b[1])) + "." +
		strconv.Itoa(int(b[0]))

	return ip, int(port)
}

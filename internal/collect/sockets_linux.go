//go:build linux

package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akarsch/netlens/pkg/model"
)

// ProcSocketSource reads the kernel socket tables under Root (normally
// /proc). Missing individual tables are tolerated; a host exposing none
// of them has no backend at all.
type ProcSocketSource struct {
	Root string
}

func (p ProcSocketSource) Sockets() ([]model.SocketRecord, error) {
	var records []model.SocketRecord
	opened := 0

	for _, proto := range []string{"tcp", "tcp6", "udp", "udp6"} {
		f, err := os.Open(filepath.Join(p.Root, "net", proto))
		if err != nil {
			continue
		}
		opened++
		records = append(records, parseSocketTable(f, proto)...)
		f.Close()
	}

	if opened == 0 {
		return nil, fmt.Errorf("%s/net: %w", p.Root, ErrUnavailable)
	}
	return records, nil
}

// ProcOwnerSource joins socket inodes to processes by scanning
// /proc/<pid>/fd. Pids whose fd directories are unreadable are skipped;
// if every pid is denied the result is a permission error with an
// empty map, and the snapshot proceeds without ownership.
type ProcOwnerSource struct {
	Root string
}

func (p ProcOwnerSource) Owners() (map[string]SocketOwner, error) {
	owners := make(map[string]SocketOwner)

	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return owners, fmt.Errorf("%s: %w", p.Root, ErrUnavailable)
	}

	scanned, denied := 0, 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}

		fdPath := filepath.Join(p.Root, e.Name(), "fd")
		fds, err := os.ReadDir(fdPath)
		if err != nil {
			if os.IsPermission(err) {
				denied++
			}
			continue
		}
		scanned++

		comm := readComm(filepath.Join(p.Root, e.Name(), "comm"))
		for _, fd := range fds {
			link, err := os.Readlink(filepath.Join(fdPath, fd.Name()))
			if err != nil {
				continue
			}
			if strings.HasPrefix(link, "socket:[") {
				inode := strings.TrimSuffix(strings.TrimPrefix(link, "socket:["), "]")
				owners[inode] = SocketOwner{PID: pid, Command: comm}
			}
		}
	}

	if denied > 0 && scanned == 0 {
		return owners, fmt.Errorf("all %d fd directories denied: %w", denied, ErrPermission)
	}
	if denied > 0 {
		return owners, fmt.Errorf("%d of %d fd directories denied: %w", denied, scanned+denied, ErrPermission)
	}
	return owners, nil
}

func readComm(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

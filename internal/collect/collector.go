package collect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akarsch/netlens/pkg/model"
)

// SocketOwner identifies the process holding a socket inode.
type SocketOwner struct {
	PID     int
	Command string
}

// Capability providers. Each is independently substitutable so the
// collector can be exercised against fakes.
type (
	SocketSource interface {
		Sockets() ([]model.SocketRecord, error)
	}
	OwnerSource interface {
		Owners() (map[string]SocketOwner, error)
	}
	ProcessSource interface {
		Processes() ([]model.ProcessStat, error)
	}
	InterfaceSource interface {
		Interfaces() ([]model.InterfaceStat, error)
	}
	RouteSource interface {
		Routes() ([]model.RouteEntry, error)
	}
)

// Collector assembles one immutable snapshot per Collect call. Only the
// socket source is load-bearing: every other provider degrades to an
// empty section plus a warning.
type Collector struct {
	Sockets    SocketSource
	Owners     OwnerSource
	Processes  ProcessSource
	Interfaces InterfaceSource
	Routes     RouteSource
}

func (c *Collector) Collect(ctx context.Context) (model.Snapshot, error) {
	snap := model.Snapshot{Taken: time.Now()}

	if c.Sockets == nil {
		return snap, ErrUnavailable
	}
	sockets, err := c.Sockets.Sockets()
	if err != nil {
		if errors.Is(err, ErrPermission) {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("socket table partially read: %v", err))
		} else {
			return snap, fmt.Errorf("socket table: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return snap, err
	}

	if c.Owners != nil {
		owners, err := c.Owners.Owners()
		if err != nil {
			if len(owners) > 0 {
				snap.Warnings = append(snap.Warnings, fmt.Sprintf("socket ownership incomplete: %v", err))
			} else {
				snap.Warnings = append(snap.Warnings, fmt.Sprintf("socket ownership unavailable: %v", err))
			}
		}
		for i := range sockets {
			if o, ok := owners[sockets[i].Inode]; ok {
				sockets[i].PID = o.PID
				sockets[i].Process = o.Command
			}
		}
	}
	snap.Sockets = sockets

	if c.Processes != nil {
		procs, err := c.Processes.Processes()
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("process table unavailable: %v", err))
		}
		snap.Processes = procs
	}

	if c.Interfaces != nil {
		ifaces, err := c.Interfaces.Interfaces()
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("interface counters unavailable: %v", err))
		}
		snap.Interfaces = ifaces
	}

	if c.Routes != nil {
		routes, err := c.Routes.Routes()
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("routing table unavailable: %v", err))
		}
		snap.Routes = routes
	}

	return snap, nil
}

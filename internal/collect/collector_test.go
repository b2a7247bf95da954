package collect

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akarsch/netlens/pkg/model"
)

type fakeSockets struct {
	records []model.SocketRecord
	err     error
}

func (f fakeSockets) Sockets() ([]model.SocketRecord, error) { return f.records, f.err }

type fakeOwners struct {
	owners map[string]SocketOwner
	err    error
}

func (f fakeOwners) Owners() (map[string]SocketOwner, error) { return f.owners, f.err }

type fakeInterfaces struct {
	stats []model.InterfaceStat
	err   error
}

func (f fakeInterfaces) Interfaces() ([]model.InterfaceStat, error) { return f.stats, f.err }

type fakeRoutes struct {
	routes []model.RouteEntry
	err    error
}

func (f fakeRoutes) Routes() ([]model.RouteEntry, error) { return f.routes, f.err }

type fakeProcesses struct {
	procs []model.ProcessStat
	err   error
}

func (f fakeProcesses) Processes() ([]model.ProcessStat, error) { return f.procs, f.err }

func TestCollectJoinsOwnership(t *testing.T) {
	c := &Collector{
		Sockets: fakeSockets{records: []model.SocketRecord{
			{Protocol: "tcp", LocalPort: 80, State: model.StateListen, Inode: "111"},
			{Protocol: "tcp", LocalPort: 41000, State: model.StateEstablished, Inode: "222"},
		}},
		Owners: fakeOwners{owners: map[string]SocketOwner{
			"111": {PID: 42, Command: "nginx"},
		}},
	}

	snap, err := c.Collect(context.Background())
	assert.NoError(t, err)
	assert.Len(t, snap.Sockets, 2)
	assert.Equal(t, 42, snap.Sockets[0].PID)
	assert.Equal(t, "nginx", snap.Sockets[0].Process)
	assert.Zero(t, snap.Sockets[1].PID, "unmatched inode stays unowned")
	assert.Empty(t, snap.Warnings)
}

func TestCollectNoBackendIsFatal(t *testing.T) {
	c := &Collector{Sockets: fakeSockets{err: fmt.Errorf("procfs: %w", ErrUnavailable)}}

	_, err := c.Collect(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = (&Collector{}).Collect(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable), "nil socket source means no backend")
}

func TestCollectOwnershipDeniedIsPartial(t *testing.T) {
	c := &Collector{
		Sockets: fakeSockets{records: []model.SocketRecord{
			{Protocol: "tcp", LocalPort: 8888, State: model.StateListen, Inode: "111"},
		}},
		Owners: fakeOwners{err: fmt.Errorf("fd scan: %w", ErrPermission)},
	}

	snap, err := c.Collect(context.Background())
	assert.NoError(t, err, "permission trouble degrades, it does not abort")
	assert.Len(t, snap.Sockets, 1)
	assert.Zero(t, snap.Sockets[0].PID)
	assert.Len(t, snap.Warnings, 1)
	assert.Contains(t, snap.Warnings[0], "ownership unavailable")
}

func TestCollectSecondarySectionsDegrade(t *testing.T) {
	c := &Collector{
		Sockets:    fakeSockets{},
		Interfaces: fakeInterfaces{err: errors.New("no counters")},
		Routes:     fakeRoutes{err: errors.New("netlink down")},
		Processes:  fakeProcesses{err: errors.New("ps denied")},
	}

	snap, err := c.Collect(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, snap.Interfaces)
	assert.Empty(t, snap.Routes)
	assert.Empty(t, snap.Processes)
	assert.Len(t, snap.Warnings, 3)
}

func TestCollectHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Collector{Sockets: fakeSockets{}}
	_, err := c.Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectFillsAllSections(t *testing.T) {
	c := &Collector{
		Sockets:    fakeSockets{records: []model.SocketRecord{{Protocol: "tcp", State: model.StateListen, LocalPort: 22, Inode: "1"}}},
		Owners:     fakeOwners{owners: map[string]SocketOwner{}},
		Interfaces: fakeInterfaces{stats: []model.InterfaceStat{{Name: "eth0", RxBytes: 10}}},
		Routes:     fakeRoutes{routes: []model.RouteEntry{{Destination: "default", Gateway: "10.0.0.1", Interface: "eth0"}}},
		Processes:  fakeProcesses{procs: []model.ProcessStat{{PID: 1, Command: "init"}}},
	}

	snap, err := c.Collect(context.Background())
	assert.NoError(t, err)
	assert.False(t, snap.Taken.IsZero())
	assert.Len(t, snap.Interfaces, 1)
	assert.Len(t, snap.Routes, 1)
	assert.Len(t, snap.Processes, 1)
}

package collect

import (
	gopsnet "github.com/shirou/gopsutil/v4/net"

	"github.com/akarsch/netlens/pkg/model"
)

// PsutilInterfaceSource reads per-NIC counters through gopsutil.
type PsutilInterfaceSource struct{}

func (PsutilInterfaceSource) Interfaces() ([]model.InterfaceStat, error) {
	counters, err := gopsnet.IOCounters(true)
	if err != nil {
		return nil, err
	}

	stats := make([]model.InterfaceStat, 0, len(counters))
	for _, c := range counters {
		stats = append(stats, model.InterfaceStat{
			Name:      c.Name,
			RxBytes:   c.BytesRecv,
			RxPackets: c.PacketsRecv,
			RxErrors:  c.Errin,
			RxDropped: c.Dropin,
			TxBytes:   c.BytesSent,
			TxPackets: c.PacketsSent,
			TxErrors:  c.Errout,
			TxDropped: c.Dropout,
		})
	}
	return stats, nil
}

//go:build linux

package collect

import (
	"github.com/vishvananda/netlink"

	"github.com/akarsch/netlens/pkg/model"
)

// NetlinkRouteSource reads the main routing table over netlink.
type NetlinkRouteSource struct{}

func (NetlinkRouteSource) Routes() ([]model.RouteEntry, error) {
	routes, err := netlink.RouteList(nil, netlink.FAMILY_ALL)
	if err != nil {
		return nil, err
	}

	entries := make([]model.RouteEntry, 0, len(routes))
	for _, r := range routes {
		entry := model.RouteEntry{Destination: "default"}
		if r.Dst != nil {
			entry.Destination = r.Dst.String()
		}
		if r.Gw != nil {
			entry.Gateway = r.Gw.String()
		}
		if link, err := netlink.LinkByIndex(r.LinkIndex); err == nil {
			entry.Interface = link.Attrs().Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

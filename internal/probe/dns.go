package probe

import (
	"context"
	"net"
	"sort"
	"time"

	"github.com/akarsch/netlens/pkg/model"
)

// Resolver runs a bounded forward lookup.
type Resolver struct {
	Timeout time.Duration
}

func (r Resolver) Lookup(ctx context.Context, target string) model.ProbeResult {
	res := model.ProbeResult{Target: target, Kind: "dns"}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupHost(ctx, target)
	if err != nil {
		res.Err = "unresolved: " + err.Error()
		return res
	}

	sort.Strings(addrs)
	res.Success = true
	res.Addresses = addrs
	return res
}

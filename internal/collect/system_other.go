//go:build !linux

package collect

// NewSystemCollector has no socket backend off Linux; Collect reports
// ErrUnavailable.
func NewSystemCollector() *Collector {
	return &Collector{}
}

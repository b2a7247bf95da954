package collect

import "errors"

var (
	// ErrUnavailable means no supported collection backend exists on this
	// host. The run cannot produce a report and must exit non-zero.
	ErrUnavailable = errors.New("no supported collection backend available")

	// ErrPermission means enumeration was partially or fully denied.
	// Collection continues with whatever was readable.
	ErrPermission = errors.New("insufficient privileges for enumeration")
)

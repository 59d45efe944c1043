package reactive

// ResourceState enumerates the phases of a long-running operation.
type ResourceState uint8

const (
	// Pending means the operation has not completed yet.
	Pending ResourceState = iota
	// Rejected means the operation failed.
	Rejected
	// Resolved means the operation completed with a value.
	Resolved
)

// String returns a human-readable name for the state.
func (s ResourceState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Rejected:
		return "Rejected"
	case Resolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// Resource is the tri-state result of a long-running operation.
// Rendering logic polls it like any other value; there is no blocking
// or completion callback. The zero value is Pending.
type Resource[D any] struct {
	state ResourceState
	err   error
	data  D
}

// PendingResource returns a resource still in flight.
func PendingResource[D any]() Resource[D] {
	return Resource[D]{}
}

// RejectedResource returns a failed resource.
func RejectedResource[D any](err error) Resource[D] {
	return Resource[D]{state: Rejected, err: err}
}

// ResolvedResource returns a completed resource.
func ResolvedResource[D any](data D) Resource[D] {
	return Resource[D]{state: Resolved, data: data}
}

// State reports which phase the resource is in.
func (r Resource[D]) State() ResourceState { return r.state }

// Pending reports whether the operation is still in flight.
func (r Resource[D]) Pending() bool { return r.state == Pending }

// Err returns the failure, or nil unless the resource is Rejected.
func (r Resource[D]) Err() error {
	if r.state != Rejected {
		return nil
	}
	return r.err
}

// Value returns the resolved data and whether the resource is Resolved.
func (r Resource[D]) Value() (D, bool) {
	if r.state != Resolved {
		var zero D
		return zero, false
	}
	return r.data, true
}

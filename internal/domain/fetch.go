package domain

// FetchStatus is the lifecycle tag of one identifier in the detail cache.
type FetchStatus int

const (
	StatusUnfetched FetchStatus = iota
	StatusPending
	StatusResolved
	StatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusUnfetched:
		return "unfetched"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchState is a snapshot of one identifier's cache entry.
// Record is set only when Resolved; Err only when Failed.
type FetchState struct {
	Status FetchStatus
	Record *Pokemon
	Err    error
}

// Unfetched returns the zero state
func Unfetched() FetchState { return FetchState{Status: StatusUnfetched} }

// Pending returns the in-flight state
func Pending() FetchState { return FetchState{Status: StatusPending} }

// Resolved returns a state holding the fetched record
func Resolved(p *Pokemon) FetchState { return FetchState{Status: StatusResolved, Record: p} }

// Failed returns a state holding the failure reason
func Failed(err error) FetchState { return FetchState{Status: StatusFailed, Err: err} }

// CanFetch reports whether ensure should start a fetch from this state
func (s FetchState) CanFetch() bool {
	return s.Status == StatusUnfetched || s.Status == StatusFailed
}

// Equal compares states by status, record identity and error identity.
func (s FetchState) Equal(o FetchState) bool {
	return s.Status == o.Status && s.Record == o.Record && s.Err == o.Err
}

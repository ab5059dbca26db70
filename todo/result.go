package todo

// Outcome describes what a mutation did.
type Outcome int

const (
	// Rejected means the mutation was refused and nothing changed.
	Rejected Outcome = iota

	// Applied means the collection changed and a write was scheduled.
	Applied

	// Unchanged means the mutation was valid but the todo already matched it.
	Unchanged
)

// String returns a lowercase name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result reports the outcome of a mutation.
//
// Todo holds the affected record after the mutation (for Remove, the record
// that was removed). Reason is set only when the mutation was rejected and
// wraps one of the package's sentinel errors.
type Result struct {
	Outcome Outcome
	Todo    Todo
	Reason  error
}

// OK returns true unless the mutation was rejected.
func (r Result) OK() bool {
	return r.Outcome != Rejected
}

// Err returns the rejection reason, or nil.
func (r Result) Err() error {
	if r.Outcome != Rejected {
		return nil
	}
	return r.Reason
}

func applied(t Todo) Result {
	return Result{Outcome: Applied, Todo: t.Clone()}
}

func unchanged(t Todo) Result {
	return Result{Outcome: Unchanged, Todo: t.Clone()}
}

func rejected(err error) Result {
	return Result{Outcome: Rejected, Reason: err}
}

package executor

// Status is where a node is in its visit.
type Status int

const (
	// Pending nodes have not been reached yet.
	Pending Status = iota
	// DependenciesRunning nodes are waiting on their dependency list.
	DependenciesRunning
	// Running nodes are executing their action.
	Running
	// Succeeded nodes finished their action without error.
	Succeeded
	// Failed nodes returned an error from their action.
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case DependenciesRunning:
		return "dependencies-running"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

package scene

// Status represents the lifecycle phase of a scene.
//
// The values form a total order that the manager relies on for range
// checks (for example "has started but not yet finished creating" is
// StatusStart..StatusCreating). Do not reorder.
type Status int

const (
	StatusPending Status = iota
	StatusInit
	StatusStart
	StatusLoading
	StatusCreating
	StatusRunning
	StatusPaused
	StatusSleeping
	StatusShutdown
	StatusDestroyed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInit:
		return "Init"
	case StatusStart:
		return "Start"
	case StatusLoading:
		return "Loading"
	case StatusCreating:
		return "Creating"
	case StatusRunning:
		return "Running"
	case StatusPaused:
		return "Paused"
	case StatusSleeping:
		return "Sleeping"
	case StatusShutdown:
		return "Shutdown"
	case StatusDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

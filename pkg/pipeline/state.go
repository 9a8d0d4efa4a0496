package pipeline

// State is the lifecycle position of a [Runner].
type State string

const (
	StateIdle       State = "idle"
	StateBuilding   State = "building"
	StateFinalizing State = "finalizing"
	StateDone       State = "done"
	StateTimedOut   State = "timed_out"
	StateFailed     State = "failed"
)

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	switch s {
	case StateDone, StateTimedOut, StateFailed:
		return true
	}
	return false
}

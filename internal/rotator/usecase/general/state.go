package general

// runState is the phase of one regeneration run.
//
// Transitions: stateInit -> stateResuming -> stateRunning, then either
// stateDone, or stateCheckpointing -> stateInterrupted. Interruption and
// unrecoverable page failure share the single stateCheckpointing path, so
// there is exactly one place a checkpoint gets written.
type runState int

const (
	stateInit runState = iota
	stateResuming
	stateRunning
	stateCheckpointing
	stateDone
	stateInterrupted
)

func (s runState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateResuming:
		return "resuming"
	case stateRunning:
		return "running"
	case stateCheckpointing:
		return "checkpointing"
	case stateDone:
		return "done"
	case stateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

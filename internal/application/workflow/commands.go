package workflow

import (
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// Command is the closed set of transitions the step controller accepts:
// Advance, Jump and Reset.
type Command interface {
	isCommand()
	Name() string
}

// Advance merges a stage's contribution and moves to the next stage
type Advance struct {
	ActionID     string
	Contribution entities.Contribution
}

// Jump sets the step index directly, optionally merging a contribution.
// It is issued by the resume adapter, the skip-qualifying shortcut and the
// finalizer (which jumps to FINALIZE, its own stage, to record the booking).
type Jump struct {
	ActionID     string
	Target       entities.Stage
	Contribution *entities.Contribution
}

// Reset discards the context and returns to IDENTITY
type Reset struct{}

func (Advance) isCommand() {}
func (Jump) isCommand()    {}
func (Reset) isCommand()   {}

func (Advance) Name() string { return "ADVANCE" }
func (Jump) Name() string    { return "JUMP" }
func (Reset) Name() string   { return "RESET" }

// SkipQualifying is the shortcut that bypasses identity capture
func SkipQualifying(actionID string) Jump {
	return Jump{ActionID: actionID, Target: entities.StageQualifying}
}

package bytecode

import (
	"errors"
	"fmt"
)

// ErrNoInput indicates a READ_BYTE instruction found the input stream
// exhausted or unreadable. End-of-stream and read faults are reported
// uniformly; the machine state is left untouched.
var ErrNoInput = errors.New("no input available")

// BoundsDirection says which end of the tape a pointer move ran past.
type BoundsDirection int

const (
	BoundBelow BoundsDirection = iota // below cell 0
	BoundAbove                        // past the last cell
)

// String returns a human-readable name for the direction.
func (d BoundsDirection) String() string {
	switch d {
	case BoundBelow:
		return "below"
	case BoundAbove:
		return "above"
	default:
		return fmt.Sprintf("BoundsDirection(%d)", int(d))
	}
}

// PointerOutOfBoundsError indicates a pointer move would have left the
// tape. The move is refused: the data pointer and tape are unchanged.
type PointerOutOfBoundsError struct {
	Direction BoundsDirection
	Position  int // instruction position of the offending move
}

func (e *PointerOutOfBoundsError) Error() string {
	if e.Direction == BoundBelow {
		return fmt.Sprintf("data pointer moved below cell 0 at instruction %d", e.Position)
	}
	return fmt.Sprintf("data pointer moved past the end of the tape at instruction %d", e.Position)
}

// UnmatchedLoopEndError indicates a ']' executed with no open '['.
type UnmatchedLoopEndError struct {
	Position int // position of the offending ']'
}

func (e *UnmatchedLoopEndError) Error() string {
	return fmt.Sprintf("unmatched ']' at instruction %d", e.Position)
}

// UnmatchedLoopBeginError indicates one or more '['s were still open when
// the program ended. Positions holds every loop entry left on the jump
// stack at termination; callers should treat it as a set.
type UnmatchedLoopBeginError struct {
	Positions []int
}

func (e *UnmatchedLoopBeginError) Error() string {
	return fmt.Sprintf("unmatched '[' at instructions %v", e.Positions)
}

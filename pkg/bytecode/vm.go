package bytecode

import (
	"bufio"
	"io"
)

// TapeSize is the number of cells on the tape. Conforming programs may
// assume exactly 30,000 zero-initialized cells.
const TapeSize = 30000

// Machine executes a compiled program against a fixed-size byte tape.
// It is single-threaded: one Machine has exactly one mutator and may not
// be shared across goroutines. Many independent machines can run in the
// same process.
type Machine struct {
	prog *Program

	tape [TapeSize]byte
	dp   int // data pointer into the tape
	ip   int // instruction pointer into the program

	// jumpStack records the positions of '[' instructions whose matching
	// ']' has not yet been reached on the current path of execution. The
	// same lexical '[' is pushed and popped once per loop iteration.
	jumpStack []int

	in  io.ByteReader
	out io.Writer
}

// NewMachine creates a machine for prog reading input bytes from in and
// writing output bytes to out. A nil in makes every READ_BYTE fail with
// ErrNoInput; a nil out discards output.
func NewMachine(prog *Program, in io.Reader, out io.Writer) *Machine {
	m := &Machine{prog: prog, out: out}
	if in != nil {
		if br, ok := in.(io.ByteReader); ok {
			m.in = br
		} else {
			m.in = bufio.NewReader(in)
		}
	}
	if out == nil {
		m.out = io.Discard
	}
	return m
}

// Pointer returns the current data pointer.
func (m *Machine) Pointer() int {
	return m.dp
}

// Cell returns the value of tape cell i.
func (m *Machine) Cell(i int) byte {
	return m.tape[i]
}

// TapeWindow returns a copy of n cells starting at cell start, clipped to
// the tape bounds.
func (m *Machine) TapeWindow(start, n int) []byte {
	if start < 0 {
		start = 0
	}
	if start > TapeSize {
		start = TapeSize
	}
	end := start + n
	if end > TapeSize {
		end = TapeSize
	}
	out := make([]byte, end-start)
	copy(out, m.tape[start:end])
	return out
}

// Program returns the program the machine is executing.
func (m *Machine) Program() *Program {
	return m.prog
}

// LoadProgram swaps in a new program and rewinds the cursor state while
// preserving the tape and data pointer. This is what keeps REPL sessions
// cumulative: each input line runs against the same tape.
func (m *Machine) LoadProgram(prog *Program) {
	m.prog = prog
	m.ip = 0
	m.jumpStack = m.jumpStack[:0]
}

// Reset zeroes the tape and rewinds all cursor state.
func (m *Machine) Reset() {
	m.tape = [TapeSize]byte{}
	m.dp = 0
	m.ip = 0
	m.jumpStack = m.jumpStack[:0]
}

// Step executes the instruction at the current instruction pointer and
// advances past it. A failed step leaves the tape, data pointer and jump
// stack exactly as they were.
func (m *Machine) Step() error {
	switch m.prog.At(m.ip) {
	case OpPointerInc:
		if m.dp >= TapeSize-1 {
			return &PointerOutOfBoundsError{Direction: BoundAbove, Position: m.ip}
		}
		m.dp++

	case OpPointerDec:
		if m.dp == 0 {
			return &PointerOutOfBoundsError{Direction: BoundBelow, Position: m.ip}
		}
		m.dp--

	case OpValueInc:
		m.tape[m.dp]++ // wraps at 255

	case OpValueDec:
		m.tape[m.dp]-- // wraps at 0

	case OpLoopBegin:
		m.jumpStack = append(m.jumpStack, m.ip)

	case OpLoopEnd:
		n := len(m.jumpStack)
		if n == 0 {
			return &UnmatchedLoopEndError{Position: m.ip}
		}
		entry := m.jumpStack[n-1]
		m.jumpStack = m.jumpStack[:n-1]
		if m.tape[m.dp] != 0 {
			// Jump back onto the '[' itself so it re-pushes its
			// position for the next iteration; the advance below
			// cancels the -1.
			m.ip = entry - 1
		}

	case OpReadByte:
		if m.in == nil {
			return ErrNoInput
		}
		b, err := m.in.ReadByte()
		if err != nil {
			return ErrNoInput
		}
		m.tape[m.dp] = b

	case OpWriteByte:
		// Write faults are outside the error model.
		m.out.Write([]byte{m.tape[m.dp]})

	case OpComment:
		// Inert.
	}

	m.ip++
	return nil
}

// Run drives the machine until the instruction pointer runs past the end
// of the program or a step fails. The first fault halts the run and is
// returned as-is. A run that reaches the end with loops still open fails
// with UnmatchedLoopBeginError carrying every open '[' position.
func (m *Machine) Run() error {
	for m.ip < m.prog.Len() {
		if err := m.Step(); err != nil {
			return err
		}
	}
	if len(m.jumpStack) != 0 {
		positions := make([]int, len(m.jumpStack))
		copy(positions, m.jumpStack)
		return &UnmatchedLoopBeginError{Positions: positions}
	}
	return nil
}

package bytecode

// Program is an immutable sequence of decoded instructions. One Program
// is built per source and shared read-only by the machine that runs it.
type Program struct {
	code []Instruction
}

// Compile decodes every byte of src, in order, into a Program. It cannot
// fail: unrecognized bytes become OpComment.
func Compile(src []byte) *Program {
	code := make([]Instruction, len(src))
	for i, b := range src {
		code[i] = Decode(b)
	}
	return &Program{code: code}
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.code)
}

// At returns the instruction at position i.
func (p *Program) At(i int) Instruction {
	return p.code[i]
}

// Instructions returns a copy of the instruction sequence.
func (p *Program) Instructions() []Instruction {
	out := make([]Instruction, len(p.code))
	copy(out, p.code)
	return out
}

// Encode renders the program back to source bytes. Comment instructions
// all encode to the same marker character, so the result is equivalent
// to, not identical with, the original source.
func (p *Program) Encode() []byte {
	out := make([]byte, len(p.code))
	for i, instr := range p.code {
		out[i] = instr.Encode()
	}
	return out
}

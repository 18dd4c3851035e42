package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the program.
func (p *Program) Disassemble() string {
	return p.DisassembleWithName("")
}

// DisassembleWithName returns a human-readable listing with a name
// header. Runs of consecutive comment bytes collapse to one line.
func (p *Program) DisassembleWithName(name string) string {
	var sb strings.Builder

	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; bfx bytecode v%d\n", WireVersion))
	sb.WriteString(fmt.Sprintf("; Instructions: %d\n\n", len(p.code)))

	for i := 0; i < len(p.code); {
		instr := p.code[i]
		if instr == OpComment {
			start := i
			for i < len(p.code) && p.code[i] == OpComment {
				i++
			}
			sb.WriteString(fmt.Sprintf("%04d  %-12s x%d\n", start, instr.String(), i-start))
			continue
		}
		sb.WriteString(fmt.Sprintf("%04d  %-12s '%c'\n", i, instr.String(), instr.Encode()))
		i++
	}

	return sb.String()
}

package bytecode

import "fmt"

// Instruction is a single decoded operation. Every source byte decodes to
// exactly one Instruction; unrecognized bytes decode to OpComment.
type Instruction byte

const (
	OpComment    Instruction = 0x00 // any non-command byte, inert
	OpPointerInc Instruction = 0x01 // '>' move data pointer right
	OpPointerDec Instruction = 0x02 // '<' move data pointer left
	OpValueInc   Instruction = 0x03 // '+' increment cell, wraps at 255
	OpValueDec   Instruction = 0x04 // '-' decrement cell, wraps at 0
	OpLoopBegin  Instruction = 0x05 // '[' push loop entry
	OpLoopEnd    Instruction = 0x06 // ']' pop loop entry, branch on cell
	OpReadByte   Instruction = 0x07 // ',' read one byte into cell
	OpWriteByte  Instruction = 0x08 // '.' write cell as one byte
)

// commentChar is the character OpComment encodes to. Any non-command byte
// would do; '#' is the conventional comment marker.
const commentChar = '#'

// InstructionInfo provides metadata about each instruction for
// disassembly and encoding.
type InstructionInfo struct {
	Name string // Human-readable mnemonic
	Char byte   // Source character the instruction encodes to
}

var instructionInfoTable = map[Instruction]InstructionInfo{
	OpComment:    {"COMMENT", commentChar},
	OpPointerInc: {"PTR_INC", '>'},
	OpPointerDec: {"PTR_DEC", '<'},
	OpValueInc:   {"VAL_INC", '+'},
	OpValueDec:   {"VAL_DEC", '-'},
	OpLoopBegin:  {"LOOP_BEGIN", '['},
	OpLoopEnd:    {"LOOP_END", ']'},
	OpReadByte:   {"READ_BYTE", ','},
	OpWriteByte:  {"WRITE_BYTE", '.'},
}

// GetInstructionInfo returns metadata for an instruction. Unknown values
// get a placeholder name and encode as a comment.
func GetInstructionInfo(i Instruction) InstructionInfo {
	if info, ok := instructionInfoTable[i]; ok {
		return info
	}
	return InstructionInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(i)), Char: commentChar}
}

// String returns the instruction's mnemonic.
func (i Instruction) String() string {
	return GetInstructionInfo(i).Name
}

// Decode maps one source byte to its instruction. It is a pure total
// function: every byte value decodes, and anything that is not one of the
// eight command characters decodes to OpComment.
func Decode(b byte) Instruction {
	switch b {
	case '>':
		return OpPointerInc
	case '<':
		return OpPointerDec
	case '+':
		return OpValueInc
	case '-':
		return OpValueDec
	case '[':
		return OpLoopBegin
	case ']':
		return OpLoopEnd
	case ',':
		return OpReadByte
	case '.':
		return OpWriteByte
	default:
		return OpComment
	}
}

// Encode returns the source character for the instruction. All comment
// bytes collapse to a single marker character, so Encode is not a strict
// inverse of Decode for unrecognized input; re-decoding the result always
// yields an equivalent instruction.
func (i Instruction) Encode() byte {
	return GetInstructionInfo(i).Char
}

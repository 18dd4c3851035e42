// Package bytecode implements the bfx instruction set and its execution
// engine: a Brainfuck interpreter operating on a fixed 30,000-cell byte
// tape.
//
// The package has two halves:
//
//   - Decoding: every byte of a source file maps to exactly one
//     Instruction. The eight command characters ('>', '<', '+', '-',
//     '[', ']', ',', '.') map to their respective operations; every other
//     byte decodes to OpComment and is inert at run time. Decoding is
//     total and never fails.
//
//   - Execution: a Machine owns the tape, the data pointer, the
//     instruction pointer and a jump stack recording the positions of
//     loop entries. Step executes one instruction; Run drives the machine
//     until the program ends or the first fault occurs.
//
// Cell arithmetic wraps modulo 256. Pointer arithmetic is bounds-checked
// and fails with PointerOutOfBoundsError instead of clamping or wrapping.
// Malformed loops are detected where execution encounters them: a ']'
// with no open '[' fails immediately, and '['s still open at end of
// program are reported together when the run finishes.
//
// Compiled programs can be serialized to a compact CBOR wire format
// (MarshalProgram/UnmarshalProgram) for .bfc files and the compile cache.
package bytecode

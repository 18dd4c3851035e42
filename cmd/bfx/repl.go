package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bfx-lang/bfx/pkg/bytecode"
)

// inputQueue feeds ',' instructions in the REPL. Input bytes are queued
// with the :in command; an empty queue reads as end-of-stream.
type inputQueue struct {
	buf []byte
}

func (q *inputQueue) Read(p []byte) (int, error) {
	if len(q.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(p, q.buf)
	q.buf = q.buf[n:]
	return n, nil
}

func (q *inputQueue) ReadByte() (byte, error) {
	if len(q.buf) == 0 {
		return 0, io.EOF
	}
	b := q.buf[0]
	q.buf = q.buf[1:]
	return b, nil
}

func (q *inputQueue) push(data []byte) {
	q.buf = append(q.buf, data...)
}

// runREPL runs an interactive session. Each line is compiled and run
// against a persistent tape, so state accumulates across lines.
func runREPL() {
	fmt.Println("bfx REPL (type 'exit' to quit, ':help' for commands)")
	fmt.Println()

	in := &inputQueue{}
	m := bytecode.NewMachine(bytecode.Compile(nil), in, os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if strings.HasPrefix(line, ":") {
			handleREPLCommand(m, in, line)
			continue
		}

		m.LoadProgram(bytecode.Compile([]byte(line)))
		if err := m.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println()
	}
}

func handleREPLCommand(m *bytecode.Machine, in *inputQueue, line string) {
	cmd, rest, _ := strings.Cut(line, " ")

	switch cmd {
	case ":help":
		fmt.Println("Commands:")
		fmt.Println("  :help       Show this help")
		fmt.Println("  :reset      Zero the tape and clear queued input")
		fmt.Println("  :dump       Show tape cells around the data pointer")
		fmt.Println("  :disasm     Disassemble the last program")
		fmt.Println("  :in TEXT    Queue TEXT as input for ',' instructions")
		fmt.Println("  exit        Quit")

	case ":reset":
		m.Reset()
		in.buf = nil
		fmt.Println("tape cleared")

	case ":dump":
		dumpTape(m)

	case ":disasm":
		fmt.Print(m.Program().DisassembleWithName("repl"))

	case ":in":
		in.push([]byte(rest))
		fmt.Printf("queued %d input bytes\n", len(rest))

	default:
		fmt.Printf("unknown command %s (try :help)\n", cmd)
	}
}

// dumpTape prints a 16-cell window around the data pointer, marking the
// pointer's cell.
func dumpTape(m *bytecode.Machine) {
	start := m.Pointer() - 8
	if start < 0 {
		start = 0
	}
	cells := m.TapeWindow(start, 16)

	for i, v := range cells {
		marker := " "
		if start+i == m.Pointer() {
			marker = "*"
		}
		fmt.Printf("%s cell %5d: %3d\n", marker, start+i, v)
	}
}

package bytecode

import (
	"strings"
	"testing"
)

func TestDisassembleListsInstructions(t *testing.T) {
	listing := Compile([]byte("+[-].")).Disassemble()

	for _, want := range []string{"VAL_INC", "LOOP_BEGIN", "VAL_DEC", "LOOP_END", "WRITE_BYTE"} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing missing %s:\n%s", want, listing)
		}
	}
	if !strings.Contains(listing, "Instructions: 5") {
		t.Errorf("listing missing instruction count:\n%s", listing)
	}
}

func TestDisassembleCollapsesCommentRuns(t *testing.T) {
	listing := Compile([]byte("read a char ,")).Disassemble()

	if got := strings.Count(listing, "COMMENT"); got != 1 {
		t.Errorf("listing has %d COMMENT lines, want 1:\n%s", got, listing)
	}
	if !strings.Contains(listing, "x12") {
		t.Errorf("comment run length missing from listing:\n%s", listing)
	}
}

func TestDisassembleWithName(t *testing.T) {
	listing := Compile([]byte("+")).DisassembleWithName("hello.bf")
	if !strings.Contains(listing, "; === hello.bf ===") {
		t.Errorf("listing missing name header:\n%s", listing)
	}
}

package bytecode

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarshalUnmarshalProgram(t *testing.T) {
	p := Compile([]byte("++[->+<]."))

	data, err := MarshalProgram(p)
	if err != nil {
		t.Fatalf("MarshalProgram failed: %v", err)
	}
	if !bytes.HasPrefix(data, WireMagic) {
		t.Errorf("serialized program missing magic prefix")
	}

	p2, err := UnmarshalProgram(data)
	if err != nil {
		t.Fatalf("UnmarshalProgram failed: %v", err)
	}
	if p2.Len() != p.Len() {
		t.Fatalf("round-tripped Len = %d, want %d", p2.Len(), p.Len())
	}
	for i := 0; i < p.Len(); i++ {
		if p2.At(i) != p.At(i) {
			t.Errorf("instruction %d = %v, want %v", i, p2.At(i), p.At(i))
		}
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	// The compile cache keys on content, so the same program must always
	// serialize to the same bytes.
	p := Compile([]byte("+[>,.<-]"))
	a, err := MarshalProgram(p)
	if err != nil {
		t.Fatalf("MarshalProgram failed: %v", err)
	}
	b, err := MarshalProgram(Compile([]byte("+[>,.<-]")))
	if err != nil {
		t.Fatalf("MarshalProgram failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical programs serialized to different bytes")
	}
}

func TestUnmarshalRejectsBadMagic(t *testing.T) {
	if _, err := UnmarshalProgram([]byte("not a bfc file")); err == nil {
		t.Error("expected error for missing magic")
	}
	if _, err := UnmarshalProgram(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestUnmarshalRejectsCorruptPayload(t *testing.T) {
	data := append(append([]byte{}, WireMagic...), 0xFF, 0x00, 0x01)
	if _, err := UnmarshalProgram(data); err == nil {
		t.Error("expected error for corrupt CBOR payload")
	}
}

func TestRunAfterWireRoundTrip(t *testing.T) {
	data, err := MarshalProgram(Compile([]byte("++++++++[>++++++++<-]>+.")))
	if err != nil {
		t.Fatalf("MarshalProgram failed: %v", err)
	}
	p, err := UnmarshalProgram(data)
	if err != nil {
		t.Fatalf("UnmarshalProgram failed: %v", err)
	}

	var out strings.Builder
	if err := NewMachine(p, nil, &out).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.String() != "A" {
		t.Errorf("output = %q, want %q", out.String(), "A")
	}
}

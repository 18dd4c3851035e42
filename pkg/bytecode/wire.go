package bytecode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// WireVersion is the current .bfc format version. Increment when making
// incompatible changes to the format.
const WireVersion uint16 = 1

// Magic bytes for .bfc files: "BFXC" (BFX Compiled).
var WireMagic = []byte{'B', 'F', 'X', 'C'}

// wireProgram is the CBOR shape of a serialized program.
type wireProgram struct {
	Version uint16        `cbor:"version"`
	Code    []Instruction `cbor:"code"`
}

// cborEncMode uses canonical options for deterministic encoding, so the
// same program always serializes to the same bytes (the compile cache
// keys on content).
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalProgram serializes a program to the .bfc wire format: the magic
// bytes followed by a CBOR payload.
func MarshalProgram(p *Program) ([]byte, error) {
	payload, err := cborEncMode.Marshal(wireProgram{
		Version: WireVersion,
		Code:    p.code,
	})
	if err != nil {
		return nil, fmt.Errorf("bytecode: marshal program: %w", err)
	}
	out := make([]byte, 0, len(WireMagic)+len(payload))
	out = append(out, WireMagic...)
	out = append(out, payload...)
	return out, nil
}

// UnmarshalProgram deserializes a program from the .bfc wire format.
func UnmarshalProgram(data []byte) (*Program, error) {
	if !bytes.HasPrefix(data, WireMagic) {
		return nil, errors.New("bytecode: not a .bfc file (bad magic)")
	}
	var w wireProgram
	if err := cbor.Unmarshal(data[len(WireMagic):], &w); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal program: %w", err)
	}
	if w.Version != WireVersion {
		return nil, fmt.Errorf("bytecode: unsupported format version %d (want %d)", w.Version, WireVersion)
	}
	return &Program{code: w.Code}, nil
}

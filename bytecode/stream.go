package bytecode

import (
	"encoding/binary"

	"github.com/hotswaplabs/redefine/op"
)

// Stream is a cursor over a method's instruction stream. Each call to Next
// decodes one instruction; the accessor methods then describe that
// instruction until the next call. Positions (bcis) are byte offsets from
// the start of the code array.
//
// Internal fast rewrites are transparently normalized, so Op always reports
// a standard class-file opcode. Accessors must not be retained across a
// Next call.
type Stream struct {
	code      []byte
	bci       int
	nextBCI   int
	current   op.Code
	wide      bool
	truncated bool
}

// NewStream returns a cursor positioned before the first instruction of m.
func NewStream(m *Method) *Stream {
	return &Stream{code: m.code}
}

// Next advances to the next instruction. It returns false when the stream
// is exhausted or when the remaining bytes cannot be decoded; the latter
// case is additionally reported by Truncated.
func (s *Stream) Next() bool {
	if s.truncated {
		return false
	}
	s.bci = s.nextBCI
	s.wide = false
	if s.bci >= len(s.code) {
		return false
	}
	raw := op.Code(s.code[s.bci])
	if raw == op.Wide {
		if s.bci+1 >= len(s.code) {
			s.truncated = true
			return false
		}
		s.wide = true
		raw = op.Code(s.code[s.bci+1])
		if !op.GetInfo(raw).Wideable {
			s.truncated = true
			return false
		}
	}
	if !op.IsDefined(raw) {
		s.truncated = true
		return false
	}
	s.current = op.Java(raw)
	length := s.length(raw)
	if length <= 0 || s.bci+length > len(s.code) {
		s.truncated = true
		return false
	}
	s.nextBCI = s.bci + length
	return true
}

// length computes the encoded length of the instruction at the current bci,
// or -1 if the operands needed to compute it are missing.
func (s *Stream) length(raw op.Code) int {
	if s.wide {
		if raw == op.Iinc {
			return 6 // wide + iinc + u2 index + s2 const
		}
		return 4 // wide + opcode + u2 index
	}
	switch raw {
	case op.Tableswitch:
		base := s.alignedBase()
		if base+12 > len(s.code) {
			return -1
		}
		lo := int(int32(binary.BigEndian.Uint32(s.code[base+4:])))
		hi := int(int32(binary.BigEndian.Uint32(s.code[base+8:])))
		if hi < lo {
			return -1
		}
		return base + 12 + (hi-lo+1)*4 - s.bci
	case op.Lookupswitch:
		base := s.alignedBase()
		if base+8 > len(s.code) {
			return -1
		}
		npairs := int(int32(binary.BigEndian.Uint32(s.code[base+4:])))
		if npairs < 0 {
			return -1
		}
		return base + 8 + npairs*8 - s.bci
	default:
		return op.GetInfo(raw).Length
	}
}

// alignedBase returns the absolute offset of the first 4-byte aligned
// operand of a switch instruction. Padding is relative to the start of the
// code array, per the class-file format.
func (s *Stream) alignedBase() int {
	return (s.bci + 4) &^ 3
}

// Op returns the (normalized) opcode of the current instruction.
func (s *Stream) Op() op.Code { return s.current }

// BCI returns the byte offset of the current instruction.
func (s *Stream) BCI() int { return s.bci }

// NextBCI returns the byte offset immediately following the current
// instruction.
func (s *Stream) NextBCI() int { return s.nextBCI }

// IsWide reports whether the current instruction carries the wide prefix.
func (s *Stream) IsWide() bool { return s.wide }

// Truncated reports whether the walk stopped because the remaining bytes
// could not be decoded. That is a precondition violation by the producer of
// the stream, not a comparison outcome.
func (s *Stream) Truncated() bool { return s.truncated }

// Bytes returns the raw encoding of the current instruction, opcode and
// padding included. The slice aliases the code array and is valid only
// until the next call to Next.
func (s *Stream) Bytes() []byte { return s.code[s.bci:s.nextBCI] }

// ByteAt returns the raw byte at the given offset from the instruction
// start (offset 0 is the opcode, or the wide prefix for wide instructions).
func (s *Stream) ByteAt(off int) byte { return s.code[s.bci+off] }

// U2At returns the big-endian uint16 at the given offset from the
// instruction start.
func (s *Stream) U2At(off int) uint16 {
	return binary.BigEndian.Uint16(s.code[s.bci+off:])
}

// S2At returns the big-endian int16 at the given offset from the
// instruction start.
func (s *Stream) S2At(off int) int16 { return int16(s.U2At(off)) }

// U4At returns the big-endian uint32 at the given offset from the
// instruction start.
func (s *Stream) U4At(off int) uint32 {
	return binary.BigEndian.Uint32(s.code[s.bci+off:])
}

// S4At returns the big-endian int32 at the given offset from the
// instruction start.
func (s *Stream) S4At(off int) int32 { return int32(s.U4At(off)) }

// Index returns the local-variable slot index of the current instruction,
// honoring the wide prefix.
func (s *Stream) Index() int {
	if s.wide {
		return int(s.U2At(2))
	}
	return int(s.ByteAt(1))
}

// SwitchBase returns the offset from the instruction start to the first
// 4-byte aligned operand (the default target) of a tableswitch or
// lookupswitch.
func (s *Stream) SwitchBase() int {
	return s.alignedBase() - s.bci
}

package bytecode

import (
	"testing"

	"github.com/hotswaplabs/redefine/op"
	"github.com/stretchr/testify/require"
)

func methodFor(code []byte) *Method {
	return NewMethod(MethodParams{Code: code, MaxStack: 4, MaxLocals: 4})
}

func TestStreamSimpleWalk(t *testing.T) {
	code := []byte{
		byte(op.Iconst0),      // 0
		byte(op.Istore1),      // 1
		byte(op.Bipush), 0x2a, // 2
		byte(op.Iload1),  // 4
		byte(op.Ireturn), // 5
	}
	s := NewStream(methodFor(code))

	want := []struct {
		op   op.Code
		bci  int
		next int
	}{
		{op.Iconst0, 0, 1},
		{op.Istore1, 1, 2},
		{op.Bipush, 2, 4},
		{op.Iload1, 4, 5},
		{op.Ireturn, 5, 6},
	}
	for _, w := range want {
		require.True(t, s.Next())
		require.Equal(t, w.op, s.Op())
		require.Equal(t, w.bci, s.BCI())
		require.Equal(t, w.next, s.NextBCI())
		require.False(t, s.IsWide())
	}
	require.False(t, s.Next())
	require.False(t, s.Truncated())
}

func TestStreamWide(t *testing.T) {
	code := []byte{
		byte(op.Wide), byte(op.Iload), 0x01, 0x00, // 0: wide iload 256
		byte(op.Wide), byte(op.Iinc), 0x00, 0x05, 0x00, 0x0a, // 4: wide iinc 5 by 10
		byte(op.Return), // 10
	}
	s := NewStream(methodFor(code))

	require.True(t, s.Next())
	require.Equal(t, op.Iload, s.Op())
	require.True(t, s.IsWide())
	require.Equal(t, 256, s.Index())
	require.Equal(t, 4, s.NextBCI())

	require.True(t, s.Next())
	require.Equal(t, op.Iinc, s.Op())
	require.True(t, s.IsWide())
	require.Equal(t, 5, s.Index())
	require.Equal(t, uint32(0x0005000a), s.U4At(2))
	require.Equal(t, 10, s.NextBCI())

	require.True(t, s.Next())
	require.Equal(t, op.Return, s.Op())
	require.False(t, s.IsWide())
	require.False(t, s.Next())
}

func TestStreamFastNormalization(t *testing.T) {
	code := []byte{
		byte(op.FastAload0),                 // 0
		byte(op.FastIgetfield), 0x00, 0x02, // 1
		byte(op.Areturn), // 4
	}
	s := NewStream(methodFor(code))

	require.True(t, s.Next())
	require.Equal(t, op.Aload0, s.Op())
	require.True(t, s.Next())
	require.Equal(t, op.Getfield, s.Op())
	require.Equal(t, uint16(2), s.U2At(1))
	require.True(t, s.Next())
	require.Equal(t, op.Areturn, s.Op())
	require.False(t, s.Next())
}

func TestStreamTableswitchAlignment(t *testing.T) {
	// tableswitch at bci 1: operands start at 2, first aligned field at 4,
	// so two padding bytes. lo=1 hi=2 gives two entries.
	code := []byte{
		byte(op.Iconst0),           // 0
		byte(op.Tableswitch),       // 1
		0xee, 0xff,                 // padding
		0x00, 0x00, 0x00, 0x14, // default +20
		0x00, 0x00, 0x00, 0x01, // lo
		0x00, 0x00, 0x00, 0x02, // hi
		0x00, 0x00, 0x00, 0x10, // entry 1
		0x00, 0x00, 0x00, 0x12, // entry 2
		byte(op.Return), // 24
	}
	s := NewStream(methodFor(code))

	require.True(t, s.Next())
	require.Equal(t, op.Iconst0, s.Op())

	require.True(t, s.Next())
	require.Equal(t, op.Tableswitch, s.Op())
	require.Equal(t, 1, s.BCI())
	require.Equal(t, 3, s.SwitchBase())
	require.Equal(t, int32(20), s.S4At(s.SwitchBase()))
	require.Equal(t, int32(1), s.S4At(s.SwitchBase()+4))
	require.Equal(t, int32(2), s.S4At(s.SwitchBase()+8))
	require.Equal(t, 24, s.NextBCI())
	require.Len(t, s.Bytes(), 23)

	require.True(t, s.Next())
	require.Equal(t, op.Return, s.Op())
	require.False(t, s.Next())
}

func TestStreamLookupswitch(t *testing.T) {
	// lookupswitch at bci 0: first aligned field at 4, three padding bytes.
	code := []byte{
		byte(op.Lookupswitch), // 0
		0x00, 0x00, 0x00,      // padding
		0x00, 0x00, 0x00, 0x1c, // default
		0x00, 0x00, 0x00, 0x02, // npairs
		0x00, 0x00, 0x00, 0x05, // match 5
		0x00, 0x00, 0x00, 0x14, // offset
		0x00, 0x00, 0x00, 0x09, // match 9
		0x00, 0x00, 0x00, 0x18, // offset
		byte(op.Return), // 28
	}
	s := NewStream(methodFor(code))

	require.True(t, s.Next())
	require.Equal(t, op.Lookupswitch, s.Op())
	require.Equal(t, 4, s.SwitchBase())
	require.Equal(t, int32(2), s.S4At(s.SwitchBase()+4))
	require.Equal(t, int32(5), s.S4At(s.SwitchBase()+8))
	require.Equal(t, 28, s.NextBCI())

	require.True(t, s.Next())
	require.Equal(t, op.Return, s.Op())
}

func TestStreamTruncated(t *testing.T) {
	tests := []struct {
		name string
		code []byte
	}{
		{"cut operand", []byte{byte(op.Bipush)}},
		{"cut wide", []byte{byte(op.Iconst0), byte(op.Wide)}},
		{"wide non-wideable", []byte{byte(op.Wide), byte(op.Goto), 0, 0}},
		{"unassigned opcode", []byte{0xba, 0x00}},
		{"cut switch header", []byte{byte(op.Tableswitch), 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream(methodFor(tt.code))
			for s.Next() {
			}
			require.True(t, s.Truncated())
			require.False(t, s.Next())
		})
	}
}

func TestMethodImmutability(t *testing.T) {
	code := []byte{byte(op.Iconst0), byte(op.Ireturn)}
	m := NewMethod(MethodParams{Code: code, MaxStack: 1, MaxLocals: 1, ParamSlots: 1})
	code[0] = byte(op.Iconst5)

	s := NewStream(m)
	require.True(t, s.Next())
	require.Equal(t, op.Iconst0, s.Op())
	require.Equal(t, 2, m.CodeSize())
	require.Equal(t, 1, m.MaxStack())
	require.Equal(t, 1, m.MaxLocals())
	require.Equal(t, 1, m.ParamSlots())
}

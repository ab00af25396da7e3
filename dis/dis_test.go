package dis

import (
	"testing"

	"github.com/hotswaplabs/redefine/bytecode"
	"github.com/hotswaplabs/redefine/cpool"
	"github.com/hotswaplabs/redefine/op"
	"github.com/stretchr/testify/require"
)

func TestDisassemble(t *testing.T) {
	pool := cpool.New()
	strIdx := pool.AddString("hello")
	methodIdx := pool.AddMethodRef("com/example/Widget", "refresh", "()V")

	m := bytecode.NewMethod(bytecode.MethodParams{
		Code: []byte{
			byte(op.Aload0),                              // 0
			byte(op.Ldc), byte(strIdx),                   // 1
			byte(op.Invokevirtual), 0x00, byte(methodIdx), // 3
			byte(op.Bipush), 0x0a,                        // 6
			byte(op.Goto), 0x00, 0x03,                    // 8: -> 11
			byte(op.Return),                              // 11
		},
		MaxStack:  2,
		MaxLocals: 1,
		Pool:      pool,
	})

	instructions, err := Disassemble(m)
	require.NoError(t, err)
	require.Len(t, instructions, 6)

	require.Equal(t, Instruction{Offset: 0, Mnemonic: "aload_0"}, instructions[0])
	require.Equal(t, 1, instructions[1].Offset)
	require.Equal(t, "ldc", instructions[1].Mnemonic)
	require.Equal(t, `#1 // string "hello"`, instructions[1].Operands)
	require.Equal(t, "#2 // com/example/Widget.refresh:()V", instructions[2].Operands)
	require.Equal(t, "10", instructions[3].Operands)
	require.Equal(t, "-> 11", instructions[4].Operands)
}

func TestDisassembleWide(t *testing.T) {
	m := bytecode.NewMethod(bytecode.MethodParams{
		Code: []byte{
			byte(op.Wide), byte(op.Iinc), 0x01, 0x00, 0xff, 0xfb, // 0: wide iinc 256 by -5
			byte(op.Return), // 6
		},
		MaxStack:  1,
		MaxLocals: 300,
	})
	instructions, err := Disassemble(m)
	require.NoError(t, err)
	require.Len(t, instructions, 2)
	require.True(t, instructions[0].Wide)
	require.Equal(t, "iinc", instructions[0].Mnemonic)
	require.Equal(t, "256 -5", instructions[0].Operands)
}

func TestDisassembleTruncated(t *testing.T) {
	m := bytecode.NewMethod(bytecode.MethodParams{
		Code:     []byte{byte(op.Nop), byte(op.Bipush)},
		MaxStack: 1,
	})
	_, err := Disassemble(m)
	require.Error(t, err)
	require.Contains(t, err.Error(), "offset 1")
}

func TestSprint(t *testing.T) {
	m := bytecode.NewMethod(bytecode.MethodParams{
		Code:     []byte{byte(op.Iconst0), byte(op.Ireturn)},
		MaxStack: 1,
	})
	instructions, err := Disassemble(m)
	require.NoError(t, err)
	out := Sprint(instructions)
	require.Contains(t, out, "iconst_0")
	require.Contains(t, out, "ireturn")
}

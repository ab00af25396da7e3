// Package op defines the JVM opcode set used by the redefine bytecode
// cursor and method comparator.
package op

import "fmt"

// Code is a single-byte opcode from a method's encoded instruction stream.
type Code byte

const (
	Nop        Code = 0x00
	AconstNull Code = 0x01
	IconstM1   Code = 0x02
	Iconst0    Code = 0x03
	Iconst1    Code = 0x04
	Iconst2    Code = 0x05
	Iconst3    Code = 0x06
	Iconst4    Code = 0x07
	Iconst5    Code = 0x08
	Lconst0    Code = 0x09
	Lconst1    Code = 0x0a
	Fconst0    Code = 0x0b
	Fconst1    Code = 0x0c
	Fconst2    Code = 0x0d
	Dconst0    Code = 0x0e
	Dconst1    Code = 0x0f

	Bipush Code = 0x10
	Sipush Code = 0x11
	Ldc    Code = 0x12
	LdcW   Code = 0x13
	Ldc2W  Code = 0x14

	Iload Code = 0x15
	Lload Code = 0x16
	Fload Code = 0x17
	Dload Code = 0x18
	Aload Code = 0x19

	Iload0 Code = 0x1a
	Iload1 Code = 0x1b
	Iload2 Code = 0x1c
	Iload3 Code = 0x1d
	Lload0 Code = 0x1e
	Lload1 Code = 0x1f
	Lload2 Code = 0x20
	Lload3 Code = 0x21
	Fload0 Code = 0x22
	Fload1 Code = 0x23
	Fload2 Code = 0x24
	Fload3 Code = 0x25
	Dload0 Code = 0x26
	Dload1 Code = 0x27
	Dload2 Code = 0x28
	Dload3 Code = 0x29
	Aload0 Code = 0x2a
	Aload1 Code = 0x2b
	Aload2 Code = 0x2c
	Aload3 Code = 0x2d

	Iaload Code = 0x2e
	Laload Code = 0x2f
	Faload Code = 0x30
	Daload Code = 0x31
	Aaload Code = 0x32
	Baload Code = 0x33
	Caload Code = 0x34
	Saload Code = 0x35

	Istore Code = 0x36
	Lstore Code = 0x37
	Fstore Code = 0x38
	Dstore Code = 0x39
	Astore Code = 0x3a

	Istore0 Code = 0x3b
	Istore1 Code = 0x3c
	Istore2 Code = 0x3d
	Istore3 Code = 0x3e
	Lstore0 Code = 0x3f
	Lstore1 Code = 0x40
	Lstore2 Code = 0x41
	Lstore3 Code = 0x42
	Fstore0 Code = 0x43
	Fstore1 Code = 0x44
	Fstore2 Code = 0x45
	Fstore3 Code = 0x46
	Dstore0 Code = 0x47
	Dstore1 Code = 0x48
	Dstore2 Code = 0x49
	Dstore3 Code = 0x4a
	Astore0 Code = 0x4b
	Astore1 Code = 0x4c
	Astore2 Code = 0x4d
	Astore3 Code = 0x4e

	Iastore Code = 0x4f
	Lastore Code = 0x50
	Fastore Code = 0x51
	Dastore Code = 0x52
	Aastore Code = 0x53
	Bastore Code = 0x54
	Castore Code = 0x55
	Sastore Code = 0x56

	Pop    Code = 0x57
	Pop2   Code = 0x58
	Dup    Code = 0x59
	DupX1  Code = 0x5a
	DupX2  Code = 0x5b
	Dup2   Code = 0x5c
	Dup2X1 Code = 0x5d
	Dup2X2 Code = 0x5e
	Swap   Code = 0x5f

	Iadd Code = 0x60
	Ladd Code = 0x61
	Fadd Code = 0x62
	Dadd Code = 0x63
	Isub Code = 0x64
	Lsub Code = 0x65
	Fsub Code = 0x66
	Dsub Code = 0x67
	Imul Code = 0x68
	Lmul Code = 0x69
	Fmul Code = 0x6a
	Dmul Code = 0x6b
	Idiv Code = 0x6c
	Ldiv Code = 0x6d
	Fdiv Code = 0x6e
	Ddiv Code = 0x6f
	Irem Code = 0x70
	Lrem Code = 0x71
	Frem Code = 0x72
	Drem Code = 0x73
	Ineg Code = 0x74
	Lneg Code = 0x75
	Fneg Code = 0x76
	Dneg Code = 0x77

	Ishl  Code = 0x78
	Lshl  Code = 0x79
	Ishr  Code = 0x7a
	Lshr  Code = 0x7b
	Iushr Code = 0x7c
	Lushr Code = 0x7d
	Iand  Code = 0x7e
	Land  Code = 0x7f
	Ior   Code = 0x80
	Lor   Code = 0x81
	Ixor  Code = 0x82
	Lxor  Code = 0x83

	Iinc Code = 0x84

	I2l Code = 0x85
	I2f Code = 0x86
	I2d Code = 0x87
	L2i Code = 0x88
	L2f Code = 0x89
	L2d Code = 0x8a
	F2i Code = 0x8b
	F2l Code = 0x8c
	F2d Code = 0x8d
	D2i Code = 0x8e
	D2l Code = 0x8f
	D2f Code = 0x90
	I2b Code = 0x91
	I2c Code = 0x92
	I2s Code = 0x93

	Lcmp  Code = 0x94
	Fcmpl Code = 0x95
	Fcmpg Code = 0x96
	Dcmpl Code = 0x97
	Dcmpg Code = 0x98

	Ifeq     Code = 0x99
	Ifne     Code = 0x9a
	Iflt     Code = 0x9b
	Ifge     Code = 0x9c
	Ifgt     Code = 0x9d
	Ifle     Code = 0x9e
	IfIcmpeq Code = 0x9f
	IfIcmpne Code = 0xa0
	IfIcmplt Code = 0xa1
	IfIcmpge Code = 0xa2
	IfIcmpgt Code = 0xa3
	IfIcmple Code = 0xa4
	IfAcmpeq Code = 0xa5
	IfAcmpne Code = 0xa6

	Goto Code = 0xa7
	Jsr  Code = 0xa8
	Ret  Code = 0xa9

	Tableswitch  Code = 0xaa
	Lookupswitch Code = 0xab

	Ireturn Code = 0xac
	Lreturn Code = 0xad
	Freturn Code = 0xae
	Dreturn Code = 0xaf
	Areturn Code = 0xb0
	Return  Code = 0xb1

	Getstatic Code = 0xb2
	Putstatic Code = 0xb3
	Getfield  Code = 0xb4
	Putfield  Code = 0xb5

	Invokevirtual   Code = 0xb6
	Invokespecial   Code = 0xb7
	Invokestatic    Code = 0xb8
	Invokeinterface Code = 0xb9

	// 0xba is unassigned in the class-file versions this engine targets.

	New            Code = 0xbb
	Newarray       Code = 0xbc
	Anewarray      Code = 0xbd
	Arraylength    Code = 0xbe
	Athrow         Code = 0xbf
	Checkcast      Code = 0xc0
	Instanceof     Code = 0xc1
	Monitorenter   Code = 0xc2
	Monitorexit    Code = 0xc3
	Wide           Code = 0xc4
	Multianewarray Code = 0xc5
	Ifnull         Code = 0xc6
	Ifnonnull      Code = 0xc7
	GotoW          Code = 0xc8
	JsrW           Code = 0xc9

	// Breakpoint replaces the original opcode while a debugger breakpoint is
	// set. Redefinition runs with breakpoints cleared, so the cursor reports
	// it verbatim rather than resolving the shadowed opcode.
	Breakpoint Code = 0xca

	// Internal "fast" rewrites installed by the interpreter's rewriter.
	// These never appear in class files; the cursor normalizes each one back
	// to its standard form via Java().
	FastAgetfield Code = 0xcb
	FastBgetfield Code = 0xcc
	FastCgetfield Code = 0xcd
	FastDgetfield Code = 0xce
	FastFgetfield Code = 0xcf
	FastIgetfield Code = 0xd0
	FastLgetfield Code = 0xd1
	FastSgetfield Code = 0xd2
	FastAputfield Code = 0xd3
	FastBputfield Code = 0xd4
	FastCputfield Code = 0xd5
	FastDputfield Code = 0xd6
	FastFputfield Code = 0xd7
	FastIputfield Code = 0xd8
	FastLputfield Code = 0xd9
	FastSputfield Code = 0xda
	FastAload0    Code = 0xdb
	FastIload     Code = 0xdc
)

// Variable marks opcodes whose encoded length depends on their position or
// operands (wide prefix, switch padding and table sizes).
const Variable = 0

// Info describes the encoding of one opcode.
type Info struct {
	Code     Code
	Mnemonic string
	// Length is the total encoded length in bytes, including the opcode
	// itself, or Variable for wide/tableswitch/lookupswitch.
	Length int
	// Wideable is true for opcodes that accept the wide prefix.
	Wideable bool
}

var infos [256]Info

func init() {
	type opInfo struct {
		op   Code
		name string
		len  int
	}
	ops := []opInfo{
		{Nop, "nop", 1},
		{AconstNull, "aconst_null", 1},
		{IconstM1, "iconst_m1", 1},
		{Iconst0, "iconst_0", 1},
		{Iconst1, "iconst_1", 1},
		{Iconst2, "iconst_2", 1},
		{Iconst3, "iconst_3", 1},
		{Iconst4, "iconst_4", 1},
		{Iconst5, "iconst_5", 1},
		{Lconst0, "lconst_0", 1},
		{Lconst1, "lconst_1", 1},
		{Fconst0, "fconst_0", 1},
		{Fconst1, "fconst_1", 1},
		{Fconst2, "fconst_2", 1},
		{Dconst0, "dconst_0", 1},
		{Dconst1, "dconst_1", 1},
		{Bipush, "bipush", 2},
		{Sipush, "sipush", 3},
		{Ldc, "ldc", 2},
		{LdcW, "ldc_w", 3},
		{Ldc2W, "ldc2_w", 3},
		{Iload, "iload", 2},
		{Lload, "lload", 2},
		{Fload, "fload", 2},
		{Dload, "dload", 2},
		{Aload, "aload", 2},
		{Iload0, "iload_0", 1},
		{Iload1, "iload_1", 1},
		{Iload2, "iload_2", 1},
		{Iload3, "iload_3", 1},
		{Lload0, "lload_0", 1},
		{Lload1, "lload_1", 1},
		{Lload2, "lload_2", 1},
		{Lload3, "lload_3", 1},
		{Fload0, "fload_0", 1},
		{Fload1, "fload_1", 1},
		{Fload2, "fload_2", 1},
		{Fload3, "fload_3", 1},
		{Dload0, "dload_0", 1},
		{Dload1, "dload_1", 1},
		{Dload2, "dload_2", 1},
		{Dload3, "dload_3", 1},
		{Aload0, "aload_0", 1},
		{Aload1, "aload_1", 1},
		{Aload2, "aload_2", 1},
		{Aload3, "aload_3", 1},
		{Iaload, "iaload", 1},
		{Laload, "laload", 1},
		{Faload, "faload", 1},
		{Daload, "daload", 1},
		{Aaload, "aaload", 1},
		{Baload, "baload", 1},
		{Caload, "caload", 1},
		{Saload, "saload", 1},
		{Istore, "istore", 2},
		{Lstore, "lstore", 2},
		{Fstore, "fstore", 2},
		{Dstore, "dstore", 2},
		{Astore, "astore", 2},
		{Istore0, "istore_0", 1},
		{Istore1, "istore_1", 1},
		{Istore2, "istore_2", 1},
		{Istore3, "istore_3", 1},
		{Lstore0, "lstore_0", 1},
		{Lstore1, "lstore_1", 1},
		{Lstore2, "lstore_2", 1},
		{Lstore3, "lstore_3", 1},
		{Fstore0, "fstore_0", 1},
		{Fstore1, "fstore_1", 1},
		{Fstore2, "fstore_2", 1},
		{Fstore3, "fstore_3", 1},
		{Dstore0, "dstore_0", 1},
		{Dstore1, "dstore_1", 1},
		{Dstore2, "dstore_2", 1},
		{Dstore3, "dstore_3", 1},
		{Astore0, "astore_0", 1},
		{Astore1, "astore_1", 1},
		{Astore2, "astore_2", 1},
		{Astore3, "astore_3", 1},
		{Iastore, "iastore", 1},
		{Lastore, "lastore", 1},
		{Fastore, "fastore", 1},
		{Dastore, "dastore", 1},
		{Aastore, "aastore", 1},
		{Bastore, "bastore", 1},
		{Castore, "castore", 1},
		{Sastore, "sastore", 1},
		{Pop, "pop", 1},
		{Pop2, "pop2", 1},
		{Dup, "dup", 1},
		{DupX1, "dup_x1", 1},
		{DupX2, "dup_x2", 1},
		{Dup2, "dup2", 1},
		{Dup2X1, "dup2_x1", 1},
		{Dup2X2, "dup2_x2", 1},
		{Swap, "swap", 1},
		{Iadd, "iadd", 1},
		{Ladd, "ladd", 1},
		{Fadd, "fadd", 1},
		{Dadd, "dadd", 1},
		{Isub, "isub", 1},
		{Lsub, "lsub", 1},
		{Fsub, "fsub", 1},
		{Dsub, "dsub", 1},
		{Imul, "imul", 1},
		{Lmul, "lmul", 1},
		{Fmul, "fmul", 1},
		{Dmul, "dmul", 1},
		{Idiv, "idiv", 1},
		{Ldiv, "ldiv", 1},
		{Fdiv, "fdiv", 1},
		{Ddiv, "ddiv", 1},
		{Irem, "irem", 1},
		{Lrem, "lrem", 1},
		{Frem, "frem", 1},
		{Drem, "drem", 1},
		{Ineg, "ineg", 1},
		{Lneg, "lneg", 1},
		{Fneg, "fneg", 1},
		{Dneg, "dneg", 1},
		{Ishl, "ishl", 1},
		{Lshl, "lshl", 1},
		{Ishr, "ishr", 1},
		{Lshr, "lshr", 1},
		{Iushr, "iushr", 1},
		{Lushr, "lushr", 1},
		{Iand, "iand", 1},
		{Land, "land", 1},
		{Ior, "ior", 1},
		{Lor, "lor", 1},
		{Ixor, "ixor", 1},
		{Lxor, "lxor", 1},
		{Iinc, "iinc", 3},
		{I2l, "i2l", 1},
		{I2f, "i2f", 1},
		{I2d, "i2d", 1},
		{L2i, "l2i", 1},
		{L2f, "l2f", 1},
		{L2d, "l2d", 1},
		{F2i, "f2i", 1},
		{F2l, "f2l", 1},
		{F2d, "f2d", 1},
		{D2i, "d2i", 1},
		{D2l, "d2l", 1},
		{D2f, "d2f", 1},
		{I2b, "i2b", 1},
		{I2c, "i2c", 1},
		{I2s, "i2s", 1},
		{Lcmp, "lcmp", 1},
		{Fcmpl, "fcmpl", 1},
		{Fcmpg, "fcmpg", 1},
		{Dcmpl, "dcmpl", 1},
		{Dcmpg, "dcmpg", 1},
		{Ifeq, "ifeq", 3},
		{Ifne, "ifne", 3},
		{Iflt, "iflt", 3},
		{Ifge, "ifge", 3},
		{Ifgt, "ifgt", 3},
		{Ifle, "ifle", 3},
		{IfIcmpeq, "if_icmpeq", 3},
		{IfIcmpne, "if_icmpne", 3},
		{IfIcmplt, "if_icmplt", 3},
		{IfIcmpge, "if_icmpge", 3},
		{IfIcmpgt, "if_icmpgt", 3},
		{IfIcmple, "if_icmple", 3},
		{IfAcmpeq, "if_acmpeq", 3},
		{IfAcmpne, "if_acmpne", 3},
		{Goto, "goto", 3},
		{Jsr, "jsr", 3},
		{Ret, "ret", 2},
		{Tableswitch, "tableswitch", Variable},
		{Lookupswitch, "lookupswitch", Variable},
		{Ireturn, "ireturn", 1},
		{Lreturn, "lreturn", 1},
		{Freturn, "freturn", 1},
		{Dreturn, "dreturn", 1},
		{Areturn, "areturn", 1},
		{Return, "return", 1},
		{Getstatic, "getstatic", 3},
		{Putstatic, "putstatic", 3},
		{Getfield, "getfield", 3},
		{Putfield, "putfield", 3},
		{Invokevirtual, "invokevirtual", 3},
		{Invokespecial, "invokespecial", 3},
		{Invokestatic, "invokestatic", 3},
		{Invokeinterface, "invokeinterface", 5},
		{New, "new", 3},
		{Newarray, "newarray", 2},
		{Anewarray, "anewarray", 3},
		{Arraylength, "arraylength", 1},
		{Athrow, "athrow", 1},
		{Checkcast, "checkcast", 3},
		{Instanceof, "instanceof", 3},
		{Monitorenter, "monitorenter", 1},
		{Monitorexit, "monitorexit", 1},
		{Wide, "wide", Variable},
		{Multianewarray, "multianewarray", 4},
		{Ifnull, "ifnull", 3},
		{Ifnonnull, "ifnonnull", 3},
		{GotoW, "goto_w", 5},
		{JsrW, "jsr_w", 5},
		{Breakpoint, "breakpoint", 1},
		{FastAgetfield, "fast_agetfield", 3},
		{FastBgetfield, "fast_bgetfield", 3},
		{FastCgetfield, "fast_cgetfield", 3},
		{FastDgetfield, "fast_dgetfield", 3},
		{FastFgetfield, "fast_fgetfield", 3},
		{FastIgetfield, "fast_igetfield", 3},
		{FastLgetfield, "fast_lgetfield", 3},
		{FastSgetfield, "fast_sgetfield", 3},
		{FastAputfield, "fast_aputfield", 3},
		{FastBputfield, "fast_bputfield", 3},
		{FastCputfield, "fast_cputfield", 3},
		{FastDputfield, "fast_dputfield", 3},
		{FastFputfield, "fast_fputfield", 3},
		{FastIputfield, "fast_iputfield", 3},
		{FastLputfield, "fast_lputfield", 3},
		{FastSputfield, "fast_sputfield", 3},
		{FastAload0, "fast_aload_0", 1},
		{FastIload, "fast_iload", 2},
	}
	for _, o := range ops {
		infos[o.op] = Info{Code: o.op, Mnemonic: o.name, Length: o.len}
	}
	for _, w := range []Code{Iload, Lload, Fload, Dload, Aload, Istore,
		Lstore, Fstore, Dstore, Astore, Ret, Iinc} {
		infos[w].Wideable = true
	}
}

// fastToJava maps each internal rewrite back to the class-file opcode it
// stands for.
var fastToJava = map[Code]Code{
	FastAgetfield: Getfield,
	FastBgetfield: Getfield,
	FastCgetfield: Getfield,
	FastDgetfield: Getfield,
	FastFgetfield: Getfield,
	FastIgetfield: Getfield,
	FastLgetfield: Getfield,
	FastSgetfield: Getfield,
	FastAputfield: Putfield,
	FastBputfield: Putfield,
	FastCputfield: Putfield,
	FastDputfield: Putfield,
	FastFputfield: Putfield,
	FastIputfield: Putfield,
	FastLputfield: Putfield,
	FastSputfield: Putfield,
	FastAload0:    Aload0,
	FastIload:     Iload,
}

// GetInfo returns encoding information for the given opcode. The zero Info
// (empty mnemonic) is returned for unassigned byte values.
func GetInfo(c Code) Info {
	return infos[c]
}

// Java returns the standard class-file opcode for c, resolving internal fast
// rewrites. Standard opcodes map to themselves.
func Java(c Code) Code {
	if std, ok := fastToJava[c]; ok {
		return std
	}
	return c
}

// IsDefined reports whether the byte value is an assigned opcode.
func IsDefined(c Code) bool {
	return infos[c].Mnemonic != ""
}

// String returns the opcode mnemonic, or a hex form for unassigned values.
func (c Code) String() string {
	if in := infos[c]; in.Mnemonic != "" {
		return in.Mnemonic
	}
	return fmt.Sprintf("0x%02x", byte(c))
}

// Package dis disassembles encoded method bodies for diagnostics output.
package dis

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hotswaplabs/redefine/bytecode"
	"github.com/hotswaplabs/redefine/cpool"
	"github.com/hotswaplabs/redefine/op"
)

// Instruction is one decoded instruction in printable form.
type Instruction struct {
	Offset   int
	Mnemonic string
	Operands string
	Wide     bool
}

// Disassemble decodes the whole instruction stream of m. It returns an
// error if the stream cannot be fully decoded.
func Disassemble(m *bytecode.Method) ([]Instruction, error) {
	var out []Instruction
	s := bytecode.NewStream(m)
	for s.Next() {
		out = append(out, Instruction{
			Offset:   s.BCI(),
			Mnemonic: s.Op().String(),
			Operands: operands(s, m.Pool()),
			Wide:     s.IsWide(),
		})
	}
	if s.Truncated() {
		return nil, fmt.Errorf("undecodable instruction stream at offset %d", s.BCI())
	}
	return out, nil
}

func operands(s *bytecode.Stream, pool *cpool.Pool) string {
	switch s.Op() {
	case op.Bipush:
		return fmt.Sprintf("%d", int8(s.ByteAt(1)))
	case op.Sipush:
		return fmt.Sprintf("%d", s.S2At(1))
	case op.Ldc:
		return poolRef(pool, int(s.ByteAt(1)))
	case op.LdcW, op.Ldc2W:
		return poolRef(pool, int(s.U2At(1)))
	case op.Iload, op.Lload, op.Fload, op.Dload, op.Aload,
		op.Istore, op.Lstore, op.Fstore, op.Dstore, op.Astore, op.Ret:
		return fmt.Sprintf("%d", s.Index())
	case op.Iinc:
		if s.IsWide() {
			return fmt.Sprintf("%d %d", s.U2At(2), s.S2At(4))
		}
		return fmt.Sprintf("%d %d", s.ByteAt(1), int8(s.ByteAt(2)))
	case op.Goto, op.Jsr,
		op.Ifeq, op.Ifne, op.Iflt, op.Ifge, op.Ifgt, op.Ifle,
		op.IfIcmpeq, op.IfIcmpne, op.IfIcmplt, op.IfIcmpge, op.IfIcmpgt, op.IfIcmple,
		op.IfAcmpeq, op.IfAcmpne, op.Ifnull, op.Ifnonnull:
		return fmt.Sprintf("-> %d", s.BCI()+int(s.S2At(1)))
	case op.GotoW, op.JsrW:
		return fmt.Sprintf("-> %d", s.BCI()+int(s.S4At(1)))
	case op.Getstatic, op.Putstatic, op.Getfield, op.Putfield,
		op.Invokevirtual, op.Invokespecial, op.Invokestatic, op.Invokeinterface:
		return poolRef(pool, int(s.U2At(1)))
	case op.New, op.Anewarray, op.Checkcast, op.Instanceof:
		return poolRef(pool, int(s.U2At(1)))
	case op.Multianewarray:
		return fmt.Sprintf("%s dim %d", poolRef(pool, int(s.U2At(1))), s.ByteAt(3))
	case op.Newarray:
		return fmt.Sprintf("%d", s.ByteAt(1))
	case op.Tableswitch:
		base := s.SwitchBase()
		lo := s.S4At(base + 4)
		hi := s.S4At(base + 8)
		return fmt.Sprintf("[%d..%d] default -> %d", lo, hi, s.BCI()+int(s.S4At(base)))
	case op.Lookupswitch:
		base := s.SwitchBase()
		npairs := s.S4At(base + 4)
		return fmt.Sprintf("%d pairs, default -> %d", npairs, s.BCI()+int(s.S4At(base)))
	default:
		return ""
	}
}

// poolRef renders a pool index together with a short summary of the entry.
func poolRef(pool *cpool.Pool, idx int) string {
	ref := fmt.Sprintf("#%d", idx)
	if pool == nil {
		return ref
	}
	tag := pool.TagAt(idx)
	switch {
	case tag.IsInt():
		return fmt.Sprintf("%s // int %d", ref, pool.IntAt(idx))
	case tag.IsFloat():
		return fmt.Sprintf("%s // float %g", ref, pool.FloatAt(idx))
	case tag.IsLong():
		return fmt.Sprintf("%s // long %d", ref, pool.LongAt(idx))
	case tag.IsDouble():
		return fmt.Sprintf("%s // double %g", ref, pool.DoubleAt(idx))
	case tag.IsStringKind():
		return fmt.Sprintf("%s // string %q", ref, pool.StringAt(idx))
	case tag.IsClassKind():
		return fmt.Sprintf("%s // class %s", ref, pool.ClassNameAt(idx))
	case tag.IsMemberRef():
		return fmt.Sprintf("%s // %s.%s:%s", ref,
			pool.RefClassAt(idx), pool.RefNameAt(idx), pool.RefTypeAt(idx))
	default:
		return ref
	}
}

// Print writes the instructions to w in a tabular form.
func Print(instructions []Instruction, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, in := range instructions {
		mnemonic := in.Mnemonic
		if in.Wide {
			mnemonic = "wide " + mnemonic
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", in.Offset, mnemonic, in.Operands)
	}
	tw.Flush()
}

// Sprint renders the instructions to a string.
func Sprint(instructions []Instruction) string {
	var b strings.Builder
	Print(instructions, &b)
	return b.String()
}

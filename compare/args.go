package compare

import (
	"bytes"

	"github.com/hotswaplabs/redefine/op"
)

// argsSame compares the operands of the current instruction pair. The two
// cursors are positioned on instructions with the same (normalized) opcode.
// Branch arms either accept, reject, or — for same-direction forward
// branches in switchable mode — record a deferred jump pair.
func (c *Comparator) argsSame(code op.Code) bool {
	switch code {
	case op.New, op.Anewarray, op.Multianewarray, op.Checkcast, op.Instanceof:
		cpiOld := int(c.sOld.U2At(1))
		cpiNew := int(c.sNew.U2At(1))
		if c.cpOld.ClassNameAt(cpiOld) != c.cpNew.ClassNameAt(cpiNew) {
			return false
		}
		if code == op.Multianewarray && c.sOld.ByteAt(3) != c.sNew.ByteAt(3) {
			return false
		}
		return true

	case op.Getstatic, op.Putstatic, op.Getfield, op.Putfield,
		op.Invokevirtual, op.Invokespecial, op.Invokestatic, op.Invokeinterface:
		// Raw pool indexes are never compared: the owning class, member
		// name, and descriptor must agree through the resolvers. The count
		// and zero bytes of invokeinterface are derivable from the
		// descriptor, so they carry no extra information.
		cpiOld := int(c.sOld.U2At(1))
		cpiNew := int(c.sNew.U2At(1))
		return c.cpOld.RefClassAt(cpiOld) == c.cpNew.RefClassAt(cpiNew) &&
			c.cpOld.RefNameAt(cpiOld) == c.cpNew.RefNameAt(cpiNew) &&
			c.cpOld.RefTypeAt(cpiOld) == c.cpNew.RefTypeAt(cpiNew)

	case op.Ldc, op.LdcW:
		var cpiOld, cpiNew int
		if code == op.Ldc {
			cpiOld = int(c.sOld.ByteAt(1))
			cpiNew = int(c.sNew.ByteAt(1))
		} else {
			cpiOld = int(c.sOld.U2At(1))
			cpiNew = int(c.sNew.U2At(1))
		}
		return c.literalSame(cpiOld, cpiNew)

	case op.Ldc2W:
		cpiOld := int(c.sOld.U2At(1))
		cpiNew := int(c.sNew.U2At(1))
		tagOld := c.cpOld.TagAt(cpiOld)
		tagNew := c.cpNew.TagAt(cpiNew)
		if tagOld != tagNew {
			return false
		}
		if tagOld.IsLong() {
			return c.cpOld.LongAt(cpiOld) == c.cpNew.LongAt(cpiNew)
		}
		return c.cpOld.DoubleAt(cpiOld) == c.cpNew.DoubleAt(cpiNew)

	case op.Bipush:
		return c.sOld.ByteAt(1) == c.sNew.ByteAt(1)

	case op.Sipush:
		return c.sOld.U2At(1) == c.sNew.U2At(1)

	case op.Aload, op.Astore, op.Dload, op.Dstore, op.Fload, op.Fstore,
		op.Iload, op.Istore, op.Lload, op.Lstore, op.Ret:
		if c.sOld.IsWide() != c.sNew.IsWide() {
			return false
		}
		return c.sOld.Index() == c.sNew.Index()

	case op.Goto, op.Jsr,
		op.IfAcmpeq, op.IfAcmpne,
		op.IfIcmpeq, op.IfIcmpne, op.IfIcmplt, op.IfIcmpge, op.IfIcmpgt, op.IfIcmple,
		op.Ifeq, op.Ifne, op.Iflt, op.Ifge, op.Ifgt, op.Ifle,
		op.Ifnull, op.Ifnonnull:
		return c.branchSame(int(c.sOld.S2At(1)), int(c.sNew.S2At(1)))

	case op.GotoW, op.JsrW:
		return c.branchSame(int(c.sOld.S4At(1)), int(c.sNew.S4At(1)))

	case op.Iinc:
		if c.sOld.IsWide() != c.sNew.IsWide() {
			return false
		}
		if !c.sOld.IsWide() {
			// Index byte and increment byte together.
			return c.sOld.U2At(1) == c.sNew.U2At(1)
		}
		// Wide form: the 32-bit immediate (u2 index + s2 increment).
		return c.sOld.U4At(2) == c.sNew.U4At(2)

	case op.Tableswitch, op.Lookupswitch:
		return c.switchSame(code)
	}

	// All remaining opcodes have no operands worth comparing; opcode
	// equality alone suffices.
	return true
}

// literalSame applies the tag-aware rules for single-width literal loads.
// Numeric tags compare by value with no tolerance; string and class tags
// may differ in resolution state as long as the content or identity agrees.
func (c *Comparator) literalSame(cpiOld, cpiNew int) bool {
	tagOld := c.cpOld.TagAt(cpiOld)
	tagNew := c.cpNew.TagAt(cpiNew)
	switch {
	case tagOld.IsInt() || tagOld.IsFloat():
		if tagOld != tagNew {
			return false
		}
		if tagOld.IsInt() {
			return c.cpOld.IntAt(cpiOld) == c.cpNew.IntAt(cpiNew)
		}
		return c.cpOld.FloatAt(cpiOld) == c.cpNew.FloatAt(cpiNew)
	case tagOld.IsStringKind():
		if !tagNew.IsStringKind() {
			return false
		}
		return c.cpOld.StringAt(cpiOld) == c.cpNew.StringAt(cpiNew)
	case tagOld.IsClassKind():
		if !tagNew.IsClassKind() {
			return false
		}
		return c.cpOld.ClassNameAt(cpiOld) == c.cpNew.ClassNameAt(cpiNew)
	default:
		return false
	}
}

// branchSame handles relative branches. Outside switchable mode the raw
// offsets must be identical. In switchable mode backward destinations are
// already mapped and validated immediately; forward destinations are
// deferred to the post-walk pass; a branch may not change direction.
func (c *Comparator) branchSame(ofsOld, ofsNew int) bool {
	if !c.switchable {
		return ofsOld == ofsNew
	}
	oldDest := c.sOld.BCI() + ofsOld
	newDest := c.sNew.BCI() + ofsNew
	switch {
	case ofsOld < 0 && ofsNew < 0:
		return c.bciMap.SameLocation(oldDest, newDest)
	case ofsOld > 0 && ofsNew > 0:
		c.fwdJumps = append(c.fwdJumps, jumpPair{oldDest: oldDest, newDest: newDest})
		return true
	default:
		return false
	}
}

// switchSame handles the multi-way dispatch instructions. Outside
// switchable mode a whole-instruction byte comparison (padding included) is
// exact: any difference implies a real change. In switchable mode the
// padding may legitimately differ, so the aligned fields are parsed and
// every target — default and entries, regardless of sign — is deferred,
// since table destinations are not linearly ordered relative to the site.
func (c *Comparator) switchSame(code op.Code) bool {
	if !c.switchable {
		return bytes.Equal(c.sOld.Bytes(), c.sNew.Bytes())
	}

	baseOld := c.sOld.SwitchBase()
	baseNew := c.sNew.SwitchBase()
	c.deferJump(int(c.sOld.S4At(baseOld)), int(c.sNew.S4At(baseNew)))

	if code == op.Lookupswitch {
		npairsOld := int(c.sOld.S4At(baseOld + 4))
		npairsNew := int(c.sNew.S4At(baseNew + 4))
		if npairsOld != npairsNew {
			return false
		}
		for i := 0; i < npairsOld; i++ {
			matchOld := c.sOld.S4At(baseOld + (2+2*i)*4)
			matchNew := c.sNew.S4At(baseNew + (2+2*i)*4)
			if matchOld != matchNew {
				return false
			}
			c.deferJump(
				int(c.sOld.S4At(baseOld+(2+2*i+1)*4)),
				int(c.sNew.S4At(baseNew+(2+2*i+1)*4)))
		}
		return true
	}

	loOld := c.sOld.S4At(baseOld + 4)
	loNew := c.sNew.S4At(baseNew + 4)
	if loOld != loNew {
		return false
	}
	hiOld := c.sOld.S4At(baseOld + 8)
	hiNew := c.sNew.S4At(baseNew + 8)
	if hiOld != hiNew {
		return false
	}
	for i := 0; i < int(hiOld-loOld)+1; i++ {
		c.deferJump(
			int(c.sOld.S4At(baseOld+(3+i)*4)),
			int(c.sNew.S4At(baseNew+(3+i)*4)))
	}
	return true
}

func (c *Comparator) deferJump(ofsOld, ofsNew int) {
	c.fwdJumps = append(c.fwdJumps, jumpPair{
		oldDest: c.sOld.BCI() + ofsOld,
		newDest: c.sNew.BCI() + ofsNew,
	})
}

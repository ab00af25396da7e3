// Package compare decides whether two versions of a method body are
// equivalent for the purposes of class redefinition.
//
// Two notions of equivalence are provided. MethodsEMCP is the strict one:
// the methods must be interchangeable at execution time, differing at most
// in how their constant pools are laid out. MethodsSwitchable is the weaker
// one: the new body may contain inserted fragments of new-only code, and
// the comparison additionally produces the old-to-new bci map that lets the
// runtime translate live execution state.
package compare

import (
	"github.com/rs/zerolog"

	"github.com/hotswaplabs/redefine/bcimap"
	"github.com/hotswaplabs/redefine/bytecode"
	"github.com/hotswaplabs/redefine/cpool"
)

// ShapeDiagnosis classifies the result of the frame-shape precheck.
type ShapeDiagnosis int

const (
	ShapeCompatible     ShapeDiagnosis = 0
	ShapeStackMismatch  ShapeDiagnosis = 1
	ShapeLocalsMismatch ShapeDiagnosis = 2
	ShapeParamsMismatch ShapeDiagnosis = 3
)

// String returns a short description of the diagnosis.
func (d ShapeDiagnosis) String() string {
	switch d {
	case ShapeCompatible:
		return "compatible"
	case ShapeStackMismatch:
		return "max_stack mismatch"
	case ShapeLocalsMismatch:
		return "max_locals mismatch"
	case ShapeParamsMismatch:
		return "parameter slot mismatch"
	default:
		return "unknown"
	}
}

// CheckShape compares the frame shapes of the two methods. Any non-zero
// diagnosis fails both comparison modes.
func CheckShape(oldM, newM *bytecode.Method) ShapeDiagnosis {
	switch {
	case oldM.MaxStack() != newM.MaxStack():
		return ShapeStackMismatch
	case oldM.MaxLocals() != newM.MaxLocals():
		return ShapeLocalsMismatch
	case oldM.ParamSlots() != newM.ParamSlots():
		return ShapeParamsMismatch
	default:
		return ShapeCompatible
	}
}

type jumpPair struct {
	oldDest int
	newDest int
}

// Comparator holds the context of one comparison run: the two cursors, the
// two constant pools, the mode, and the bookkeeping the switchable walk
// accumulates. A Comparator must not be shared across concurrent runs; each
// run costs one allocation and the zero-configured New is cheap.
type Comparator struct {
	log zerolog.Logger

	sOld, sNew *bytecode.Stream
	cpOld      *cpool.Pool
	cpNew      *cpool.Pool
	switchable bool
	bciMap     *bcimap.Map
	fwdJumps   []jumpPair
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithLogger supplies a diagnostics sink. The comparator emits the shape
// diagnosis and forward-jump verification failures at debug level; logging
// never affects the comparison outcome. By default nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Comparator) {
		c.log = log
	}
}

// New returns a Comparator ready for one or more (sequential) comparison
// runs.
func New(opts ...Option) *Comparator {
	c := &Comparator{log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Comparator) begin(oldM, newM *bytecode.Method, switchable bool, m *bcimap.Map) {
	c.sOld = bytecode.NewStream(oldM)
	c.sNew = bytecode.NewStream(newM)
	c.cpOld = oldM.Pool()
	c.cpNew = newM.Pool()
	c.switchable = switchable
	c.bciMap = m
	c.fwdJumps = c.fwdJumps[:0]
}

// MethodsEMCP reports whether the two method bodies are equivalent modulo
// constant pool: same length, same frame shape, and an opcode-for-opcode,
// argument-for-argument identical instruction walk.
func (c *Comparator) MethodsEMCP(oldM, newM *bytecode.Method) bool {
	if oldM.CodeSize() != newM.CodeSize() {
		return false
	}
	if d := CheckShape(oldM, newM); d != ShapeCompatible {
		c.log.Debug().
			Int("diagnosis", int(d)).
			Str("reason", d.String()).
			Msg("methods non-comparable")
		return false
	}

	c.begin(oldM, newM, false, nil)
	for c.sOld.Next() {
		if !c.sNew.Next() || c.sOld.Op() != c.sNew.Op() {
			return false
		}
		if !c.argsSame(c.sOld.Op()) {
			return false
		}
	}
	return true
}

// MethodsSwitchable reports whether the new method body is the old one with
// zero or more fragments of new-only code spliced in, with all control-flow
// destinations structurally consistent after remapping. The caller-supplied
// map is populated with the discovered fragments as a byproduct and is only
// meaningful when the result is true.
func (c *Comparator) MethodsSwitchable(oldM, newM *bytecode.Method, m *bcimap.Map) bool {
	if oldM.CodeSize() > newM.CodeSize() {
		// Something was deleted in the new method relative to the old one.
		return false
	}
	if d := CheckShape(oldM, newM); d != ShapeCompatible {
		c.log.Debug().
			Int("diagnosis", int(d)).
			Str("reason", d.String()).
			Msg("methods non-comparable")
		return false
	}

	c.begin(oldM, newM, true, m)
	for c.sOld.Next() {
		if !c.sNew.Next() {
			return false
		}
		if c.sOld.Op() == c.sNew.Op() && c.argsSame(c.sOld.Op()) {
			continue
		}
		// Divergence: scan forward in new code only, looking for the point
		// where the unconsumed old instruction resumes.
		oldBCI := c.sOld.BCI()
		newStart := c.sNew.BCI()
		found := false
		for c.sNew.Next() {
			if c.sNew.Op() == c.sOld.Op() && c.argsSame(c.sOld.Op()) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
		m.RecordFragment(oldBCI, newStart, c.sNew.BCI())
	}

	// Forward destinations could not be checked during the walk because
	// they may land beyond fragments that had not been discovered yet. The
	// map is complete now, so validate them all.
	for _, j := range c.fwdJumps {
		if !m.SameLocation(j.oldDest, j.newDest) {
			c.log.Debug().
				Int("old_dest", j.oldDest).
				Int("calc_new_dest", m.NewBCIForOld(j.oldDest)).
				Int("act_new_dest", j.newDest).
				Msg("forward jump mismatch")
			return false
		}
	}
	return true
}

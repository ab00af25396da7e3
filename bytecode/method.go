// Package bytecode provides read-only views over encoded JVM method bodies
// and a cursor for walking their variable-length instruction streams.
package bytecode

import "github.com/hotswaplabs/redefine/cpool"

// Method is an immutable view of one encoded method body. It is safe for
// concurrent use; comparison runs never mutate it.
type Method struct {
	code       []byte
	maxStack   int
	maxLocals  int
	paramSlots int
	pool       *cpool.Pool
}

// MethodParams contains parameters for creating a Method.
type MethodParams struct {
	Code       []byte
	MaxStack   int
	MaxLocals  int
	ParamSlots int
	Pool       *cpool.Pool
}

// NewMethod creates a Method from the given parameters. The code slice is
// copied so later mutation by the caller cannot affect the view.
func NewMethod(params MethodParams) *Method {
	code := make([]byte, len(params.Code))
	copy(code, params.Code)
	return &Method{
		code:       code,
		maxStack:   params.MaxStack,
		maxLocals:  params.MaxLocals,
		paramSlots: params.ParamSlots,
		pool:       params.Pool,
	}
}

// CodeSize returns the length of the encoded instruction stream in bytes.
func (m *Method) CodeSize() int { return len(m.code) }

// MaxStack returns the method's declared operand stack depth.
func (m *Method) MaxStack() int { return m.maxStack }

// MaxLocals returns the method's declared local variable slot count.
func (m *Method) MaxLocals() int { return m.maxLocals }

// ParamSlots returns the number of local slots occupied by parameters.
func (m *Method) ParamSlots() int { return m.paramSlots }

// Pool returns the method's own constant pool.
func (m *Method) Pool() *cpool.Pool { return m.pool }

// Package redefine decides whether two versions of a method body are
// equivalent for the purposes of class redefinition. It is the entry point
// for callers that don't need the finer-grained control of the compare
// package.
package redefine

import (
	"github.com/rs/zerolog"

	"github.com/hotswaplabs/redefine/bcimap"
	"github.com/hotswaplabs/redefine/bytecode"
	"github.com/hotswaplabs/redefine/compare"
)

// Option configures a comparison.
type Option func(*options)

type options struct {
	compareOpts []compare.Option
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithLogger supplies a diagnostics sink for the comparison. Logging never
// affects the outcome.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.compareOpts = append(o.compareOpts, compare.WithLogger(log))
	}
}

// MethodsEMCP reports whether the two method bodies are equivalent modulo
// constant pool: interchangeable at execution time, differing at most in
// how their constant pools are laid out.
func MethodsEMCP(oldM, newM *bytecode.Method, opts ...Option) bool {
	o := collectOptions(opts...)
	return compare.New(o.compareOpts...).MethodsEMCP(oldM, newM)
}

// MethodsSwitchable reports whether the new method body is the old one with
// zero or more fragments of new-only code spliced in. On success the
// returned map translates old bcis into new ones; the runtime uses it to
// carry live execution state across the redefinition.
func MethodsSwitchable(oldM, newM *bytecode.Method, opts ...Option) (*bcimap.Map, bool) {
	o := collectOptions(opts...)
	m := bcimap.New()
	if !compare.New(o.compareOpts...).MethodsSwitchable(oldM, newM, m) {
		return nil, false
	}
	return m, true
}

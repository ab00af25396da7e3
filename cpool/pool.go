// Package cpool models the per-method constant pool and answers the
// identity and value queries the comparator needs, without ever triggering
// class resolution.
package cpool

import "math"

// Tag identifies the kind of a constant pool entry. Values below 100 match
// the class-file format; the Unresolved variants are runtime-internal states
// for entries whose referent has not been resolved yet.
type Tag byte

const (
	TagInvalid            Tag = 0
	TagUtf8               Tag = 1
	TagInt                Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldRef           Tag = 9
	TagMethodRef          Tag = 10
	TagInterfaceMethodRef Tag = 11
	TagNameAndType        Tag = 12

	TagUnresolvedClass  Tag = 100
	TagUnresolvedString Tag = 101
)

// IsInt reports whether the tag is an int constant.
func (t Tag) IsInt() bool { return t == TagInt }

// IsFloat reports whether the tag is a float constant.
func (t Tag) IsFloat() bool { return t == TagFloat }

// IsLong reports whether the tag is a long constant.
func (t Tag) IsLong() bool { return t == TagLong }

// IsDouble reports whether the tag is a double constant.
func (t Tag) IsDouble() bool { return t == TagDouble }

// IsString reports whether the tag is a resolved string constant.
func (t Tag) IsString() bool { return t == TagString }

// IsUnresolvedString reports whether the tag is an unresolved string.
func (t Tag) IsUnresolvedString() bool { return t == TagUnresolvedString }

// IsStringKind reports whether the tag is a string in either resolution
// state.
func (t Tag) IsStringKind() bool { return t == TagString || t == TagUnresolvedString }

// IsClass reports whether the tag is a resolved class constant.
func (t Tag) IsClass() bool { return t == TagClass }

// IsUnresolvedClass reports whether the tag is an unresolved class.
func (t Tag) IsUnresolvedClass() bool { return t == TagUnresolvedClass }

// IsClassKind reports whether the tag is a class in either resolution state.
func (t Tag) IsClassKind() bool { return t == TagClass || t == TagUnresolvedClass }

// IsMemberRef reports whether the tag is a field, method, or interface
// method reference.
func (t Tag) IsMemberRef() bool {
	return t == TagFieldRef || t == TagMethodRef || t == TagInterfaceMethodRef
}

type entry struct {
	tag Tag
	// bits holds the raw value for numeric tags (float/double stored as
	// IEEE bits so NaN payloads survive round trips).
	bits uint64
	// str holds the text of utf8/string entries and the name of class
	// entries.
	str string
	// member reference triple
	refClass string
	refName  string
	refType  string
}

// Pool is an indexed table of constants, 1-based like the class-file
// format. Long and double entries occupy two consecutive slots. A Pool is
// built once and read-only afterwards.
type Pool struct {
	entries []entry
}

// New returns an empty pool. Index 0 is reserved and never valid.
func New() *Pool {
	return &Pool{entries: []entry{{tag: TagInvalid}}}
}

func (p *Pool) add(e entry) int {
	idx := len(p.entries)
	p.entries = append(p.entries, e)
	return idx
}

// AddInt appends an int constant and returns its index.
func (p *Pool) AddInt(v int32) int {
	return p.add(entry{tag: TagInt, bits: uint64(uint32(v))})
}

// AddFloat appends a float constant and returns its index.
func (p *Pool) AddFloat(v float32) int {
	return p.add(entry{tag: TagFloat, bits: uint64(math.Float32bits(v))})
}

// AddLong appends a long constant and returns its index. The following
// slot is consumed as well, per the class-file format.
func (p *Pool) AddLong(v int64) int {
	idx := p.add(entry{tag: TagLong, bits: uint64(v)})
	p.add(entry{tag: TagInvalid})
	return idx
}

// AddDouble appends a double constant and returns its index. The following
// slot is consumed as well.
func (p *Pool) AddDouble(v float64) int {
	idx := p.add(entry{tag: TagDouble, bits: math.Float64bits(v)})
	p.add(entry{tag: TagInvalid})
	return idx
}

// AddUtf8 appends a utf8 constant and returns its index.
func (p *Pool) AddUtf8(s string) int {
	return p.add(entry{tag: TagUtf8, str: s})
}

// AddString appends a resolved string constant and returns its index.
func (p *Pool) AddString(s string) int {
	return p.add(entry{tag: TagString, str: s})
}

// AddUnresolvedString appends an unresolved string constant and returns its
// index.
func (p *Pool) AddUnresolvedString(s string) int {
	return p.add(entry{tag: TagUnresolvedString, str: s})
}

// AddClass appends a resolved class constant and returns its index. The
// name is the internal form, e.g. "java/lang/String".
func (p *Pool) AddClass(name string) int {
	return p.add(entry{tag: TagClass, str: name})
}

// AddUnresolvedClass appends an unresolved class constant and returns its
// index.
func (p *Pool) AddUnresolvedClass(name string) int {
	return p.add(entry{tag: TagUnresolvedClass, str: name})
}

// AddFieldRef appends a field reference and returns its index.
func (p *Pool) AddFieldRef(class, name, descriptor string) int {
	return p.add(entry{tag: TagFieldRef, refClass: class, refName: name, refType: descriptor})
}

// AddMethodRef appends a method reference and returns its index.
func (p *Pool) AddMethodRef(class, name, descriptor string) int {
	return p.add(entry{tag: TagMethodRef, refClass: class, refName: name, refType: descriptor})
}

// AddInterfaceMethodRef appends an interface method reference and returns
// its index.
func (p *Pool) AddInterfaceMethodRef(class, name, descriptor string) int {
	return p.add(entry{tag: TagInterfaceMethodRef, refClass: class, refName: name, refType: descriptor})
}

// Size returns the number of slots, the reserved slot 0 included.
func (p *Pool) Size() int { return len(p.entries) }

func (p *Pool) at(i int) entry {
	if i <= 0 || i >= len(p.entries) {
		return entry{tag: TagInvalid}
	}
	return p.entries[i]
}

// TagAt returns the tag of the entry at index i, or TagInvalid for indexes
// outside the pool (including the second slot of long/double entries).
func (p *Pool) TagAt(i int) Tag { return p.at(i).tag }

// IntAt returns the int value at index i.
func (p *Pool) IntAt(i int) int32 { return int32(uint32(p.at(i).bits)) }

// FloatAt returns the float value at index i.
func (p *Pool) FloatAt(i int) float32 { return math.Float32frombits(uint32(p.at(i).bits)) }

// LongAt returns the long value at index i.
func (p *Pool) LongAt(i int) int64 { return int64(p.at(i).bits) }

// DoubleAt returns the double value at index i.
func (p *Pool) DoubleAt(i int) float64 { return math.Float64frombits(p.at(i).bits) }

// StringAt returns the text of the string entry at index i, in either
// resolution state, without resolving it.
func (p *Pool) StringAt(i int) string { return p.at(i).str }

// ClassNameAt returns the internal class name of the class entry at index
// i, in either resolution state, without resolving it.
func (p *Pool) ClassNameAt(i int) string { return p.at(i).str }

// RefClassAt returns the owning class name of the member reference at
// index i.
func (p *Pool) RefClassAt(i int) string { return p.at(i).refClass }

// RefNameAt returns the member name of the member reference at index i.
func (p *Pool) RefNameAt(i int) string { return p.at(i).refName }

// RefTypeAt returns the descriptor of the member reference at index i.
func (p *Pool) RefTypeAt(i int) string { return p.at(i).refType }

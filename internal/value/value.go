// Package value defines the decoded representation of target objects.
package value

// Handle references an object in the target address space. Container
// elements stay handles until the renderer descends into them; handles are
// never cached across print calls since the target may resume execution in
// between.
type Handle struct {
	Addr uint64
}

// Entry is one key/value pair of a decoded dict.
type Entry struct {
	Key Handle
	Val Handle
}

// Value is one decoded object variant. Every readable object decodes to
// exactly one variant; unreadable memory degrades to Unreadable instead of
// failing the decode.
type Value interface {
	variant()
}

// String is a decoded string object. The bytes may contain embedded NULs;
// the explicit length from the object header wins over any terminator.
type String struct {
	Bytes []byte
}

// Integer is a bounded signed integer, tagged with the bit width it was
// read at.
type Integer struct {
	Val  int64
	Bits int
}

// Wide is a signed 64-bit integer, independent of the target's word size.
type Wide struct {
	Val int64
}

// Double is an IEEE-754 binary64 value.
type Double struct {
	Val float64
}

// Bool is a boolean object. The target stores it as a native integer where
// any nonzero payload is true.
type Bool struct {
	Val bool
}

// ByteArray is a decoded byte array object.
type ByteArray struct {
	Bytes []byte
}

// List is an ordered sequence of element handles in array order.
type List struct {
	Count int
	Elems []Handle
}

// Dict holds the entries collected from the hash table walk in bucket and
// chain order. Count is the element count reported by the table header;
// CountMismatch is set when the walk collected a different number of
// entries.
type Dict struct {
	Count         int
	Entries       []Entry
	CountMismatch bool
}

// Unknown is produced for unregistered type records and objects without a
// usable representation. Header holds the raw header bytes for diagnosis.
type Unknown struct {
	TypeName string
	Header   []byte
	Note     string
}

// Cycle marks an address that was already visited within one print call.
type Cycle struct {
	Addr uint64
}

// Unreadable marks a node whose memory the target could not serve. It is
// contained at that node, siblings are unaffected.
type Unreadable struct {
	Addr uint64
	Err  error
}

func (String) variant()     {}
func (Integer) variant()    {}
func (Wide) variant()       {}
func (Double) variant()     {}
func (Bool) variant()       {}
func (ByteArray) variant()  {}
func (List) variant()       {}
func (Dict) variant()       {}
func (Unknown) variant()    {}
func (Cycle) variant()      {}
func (Unreadable) variant() {}

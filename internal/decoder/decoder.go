// Package decoder reads universal object headers from the target address
// space and produces decoded values.
package decoder

import (
	"github.com/eullerborges/tcl-pretty-printers/internal/layout"
	"github.com/eullerborges/tcl-pretty-printers/internal/memory"
	"github.com/eullerborges/tcl-pretty-printers/internal/registry"
	"github.com/eullerborges/tcl-pretty-printers/internal/value"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	// maxStringLen bounds cached string and byte array reads against
	// corrupted length fields.
	maxStringLen = 1 << 24
	// maxElements bounds container walks against corrupted count fields.
	maxElements = 1 << 16
	// maxBuckets bounds the dict bucket array read.
	maxBuckets = 1 << 20
)

// Session decodes objects for one print invocation. It owns the visited
// address set used for cycle detection and is discarded after the
// invocation completes.
type Session struct {
	lay     layout.Layout
	reader  memory.Reader
	reg     *registry.Registry
	logger  *log.Logger
	obj     objLayout
	visited set.Set[uint64]
}

// NewSession creates a decode session for one print invocation.
func NewSession(logger *log.Logger, lay layout.Layout, reader memory.Reader,
	reg *registry.Registry) *Session {
	return &Session{
		lay:     lay,
		reader:  reader,
		reg:     reg,
		logger:  logger,
		obj:     objLayoutFor(lay),
		visited: set.New[uint64](),
	}
}

// Resolve decodes the object at addr. The first sighting of an address
// decodes it; every later sighting within the same session returns a cycle
// sentinel so recursion over self-referential containers terminates.
func (s *Session) Resolve(addr uint64) value.Value {
	if s.visited.Contains(addr) {
		return value.Cycle{Addr: addr}
	}
	s.visited.Add(addr)
	return s.decode(addr)
}

// Recognizable reports whether addr holds a plausible universal object
// header: the header is readable and its type tag is either nil or points
// at a type record with a readable name.
func (s *Session) Recognizable(addr uint64) bool {
	hdr, err := s.reader.ReadAt(addr, s.obj.size)
	if err != nil {
		return false
	}
	typeAddr := s.lay.Pointer(hdr[s.obj.typePtr:])
	if typeAddr == 0 {
		return true
	}
	desc, err := s.reg.Resolve(typeAddr)
	return err == nil || desc.Name != ""
}

// decode reads the universal header at addr and dispatches on its type tag.
func (s *Session) decode(addr uint64) value.Value {
	hdr, err := s.reader.ReadAt(addr, s.obj.size)
	if err != nil {
		return value.Unreadable{Addr: addr, Err: err}
	}

	typeAddr := s.lay.Pointer(hdr[s.obj.typePtr:])
	if typeAddr == 0 {
		// Objects without an internal representation are plain strings.
		return s.stringOrUnknown(hdr, "")
	}

	desc, err := s.reg.Resolve(typeAddr)
	if err != nil {
		s.logger.Debug("unresolved object type",
			log.Hex("object", addr),
			log.Hex("type_record", typeAddr),
			log.String("name", desc.Name))
		return s.stringOrUnknown(hdr, desc.Name)
	}

	intRep := hdr[s.obj.intRep:]
	switch desc.Kind {
	case registry.KindString:
		return s.stringOrUnknown(hdr, desc.Name)
	case registry.KindInt:
		return value.Integer{Val: s.lay.Int(intRep), Bits: s.lay.IntWidth * 8}
	case registry.KindWide:
		return value.Wide{Val: s.lay.Wide(intRep)}
	case registry.KindDouble:
		return value.Double{Val: s.lay.Double(intRep)}
	case registry.KindBool:
		return value.Bool{Val: s.lay.Int(intRep) != 0}
	case registry.KindByteArray:
		return s.decodeByteArray(hdr)
	case registry.KindList:
		return s.decodeList(hdr)
	case registry.KindDict:
		return s.decodeDict(hdr)
	default:
		return s.stringOrUnknown(hdr, desc.Name)
	}
}

// stringOrUnknown returns the cached string representation when the header
// references a valid one and degrades to the unknown variant otherwise.
// There is no implicit stringification of payload bytes.
func (s *Session) stringOrUnknown(hdr []byte, typeName string) value.Value {
	if v, ok := s.readCachedString(hdr); ok {
		return v
	}
	return value.Unknown{
		TypeName: typeName,
		Header:   hdr,
		Note:     "no readable string representation",
	}
}

// readCachedString reads the cached string referenced by the header. The
// explicit length field wins over any NUL terminator, so embedded zero
// bytes survive.
func (s *Session) readCachedString(hdr []byte) (value.String, bool) {
	bytesPtr := s.lay.Pointer(hdr[s.obj.bytes:])
	n := s.lay.Int(hdr[s.obj.length:])
	if bytesPtr == 0 || n < 0 || n > maxStringLen {
		return value.String{}, false
	}
	buf, err := s.reader.ReadAt(bytesPtr, int(n))
	if err != nil {
		return value.String{}, false
	}
	return value.String{Bytes: buf}, true
}

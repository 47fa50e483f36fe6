// Package registry maps target type records to decode strategies.
package registry

import (
	"errors"
	"fmt"

	"github.com/eullerborges/tcl-pretty-printers/internal/layout"
	"github.com/eullerborges/tcl-pretty-printers/internal/memory"
)

// ErrUnknownType reports a type record without a registered decode
// strategy. Callers route it to the unknown variant; it is never fatal.
var ErrUnknownType = errors.New("unknown object type")

// Kind selects the decode strategy for a type record.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindWide
	KindDouble
	KindBool
	KindByteArray
	KindList
	KindDict
)

// Descriptor describes how to decode objects of one target type.
type Descriptor struct {
	// TypeAddr is the address of the target's type record. The address is
	// the identity of the type: two records sharing a display name in
	// corrupted memory stay distinct.
	TypeAddr uint64
	Name     string
	Kind     Kind
	// FixedSize is set when the payload is fully contained in the object
	// header union and needs no secondary reads.
	FixedSize bool
}

// maxTypeNameLen bounds the name read from a type record so a corrupted
// name pointer cannot trigger an unbounded read.
const maxTypeNameLen = 64

var kindsByName = map[string]Kind{
	"string":        KindString,
	"int":           KindInt,
	"wideInt":       KindWide,
	"double":        KindDouble,
	"boolean":       KindBool,
	"booleanString": KindBool,
	"bytearray":     KindByteArray,
	"list":          KindList,
	"dict":          KindDict,
}

// Registry resolves target type records to descriptors. Resolved records
// are cached by address for the lifetime of the debugging session.
type Registry struct {
	lay    layout.Layout
	reader memory.Reader
	byAddr map[uint64]Descriptor
}

// New creates a registry reading type records through the given oracle.
func New(lay layout.Layout, reader memory.Reader) *Registry {
	return &Registry{
		lay:    lay,
		reader: reader,
		byAddr: make(map[uint64]Descriptor),
	}
}

// Resolve returns the descriptor for the type record at typeAddr. On
// ErrUnknownType the returned descriptor still carries the observed name
// when one could be read.
func (r *Registry) Resolve(typeAddr uint64) (Descriptor, error) {
	if desc, ok := r.byAddr[typeAddr]; ok {
		return desc, nil
	}

	name, err := r.typeName(typeAddr)
	if err != nil {
		return Descriptor{TypeAddr: typeAddr},
			fmt.Errorf("reading type record at 0x%x: %w", typeAddr, ErrUnknownType)
	}

	kind, ok := kindsByName[name]
	if !ok {
		return Descriptor{TypeAddr: typeAddr, Name: name},
			fmt.Errorf("%q: %w", name, ErrUnknownType)
	}

	desc := Descriptor{
		TypeAddr:  typeAddr,
		Name:      name,
		Kind:      kind,
		FixedSize: kind == KindInt || kind == KindWide || kind == KindDouble || kind == KindBool,
	}
	r.byAddr[typeAddr] = desc
	return desc, nil
}

// typeName reads the display name of a type record. The record's first
// field is a pointer to its NUL-terminated name.
func (r *Registry) typeName(typeAddr uint64) (string, error) {
	namePtr, err := memory.Pointer(r.reader, r.lay, typeAddr)
	if err != nil {
		return "", err
	}
	if namePtr == 0 {
		return "", fmt.Errorf("type record at 0x%x has a nil name pointer", typeAddr)
	}
	return memory.CString(r.reader, namePtr, maxTypeNameLen)
}

package decoder

import (
	"math"
	"testing"

	"github.com/eullerborges/tcl-pretty-printers/internal/layout"
	"github.com/eullerborges/tcl-pretty-printers/internal/memory"
	"github.com/eullerborges/tcl-pretty-printers/internal/registry"
	"github.com/retroenv/retrogolib/log"
)

// targetBuilder assembles synthetic object images in a memory snapshot,
// mimicking the target runtime's in-memory structures for one layout.
type targetBuilder struct {
	lay   layout.Layout
	snap  *memory.Snapshot
	next  uint64
	types map[string]uint64
}

func newTarget(lay layout.Layout) *targetBuilder {
	return &targetBuilder{
		lay:   lay,
		snap:  memory.NewSnapshot(),
		next:  0x10000,
		types: make(map[string]uint64),
	}
}

func (b *targetBuilder) session(t *testing.T) *Session {
	t.Helper()
	return NewSession(log.NewTestLogger(t), b.lay, b.snap, registry.New(b.lay, b.snap))
}

// alloc maps data at the next free address and returns that address. The
// slice stays shared so tests can patch it after allocation.
func (b *targetBuilder) alloc(data []byte) uint64 {
	addr := b.next
	b.snap.Map(addr, data)
	b.next = (addr + uint64(len(data)) + 0x40) &^ 0xf
	return addr
}

func (b *targetBuilder) putPointer(buf []byte, off int, v uint64) {
	if b.lay.PointerWidth == 4 {
		b.lay.ByteOrder.PutUint32(buf[off:], uint32(v))
		return
	}
	b.lay.ByteOrder.PutUint64(buf[off:], v)
}

func (b *targetBuilder) putInt(buf []byte, off int, v int64) {
	if b.lay.IntWidth == 4 {
		b.lay.ByteOrder.PutUint32(buf[off:], uint32(v))
		return
	}
	b.lay.ByteOrder.PutUint64(buf[off:], uint64(v))
}

func (b *targetBuilder) putWide(buf []byte, off int, v int64) {
	b.lay.ByteOrder.PutUint64(buf[off:], uint64(v))
}

// typeRecord maps a type record with the given name, one record per name.
func (b *targetBuilder) typeRecord(name string) uint64 {
	if addr, ok := b.types[name]; ok {
		return addr
	}
	nameAddr := b.alloc(append([]byte(name), 0))
	rec := make([]byte, 4*b.lay.PointerWidth)
	b.putPointer(rec, 0, nameAddr)
	addr := b.alloc(rec)
	b.types[name] = addr
	return addr
}

func (b *targetBuilder) intRep() []byte {
	size := 2 * b.lay.PointerWidth
	if size < layout.WideWidth {
		size = layout.WideWidth
	}
	return make([]byte, size)
}

// object maps a universal header with the given type record and intrep.
func (b *targetBuilder) object(typeAddr uint64, intRep []byte) uint64 {
	ol := objLayoutFor(b.lay)
	hdr := make([]byte, ol.size)
	b.putInt(hdr, 0, 1) // refCount
	b.putPointer(hdr, ol.typePtr, typeAddr)
	copy(hdr[ol.intRep:], intRep)
	return b.alloc(hdr)
}

func (b *targetBuilder) intObject(v int64) uint64 {
	rep := b.intRep()
	b.putInt(rep, 0, v)
	return b.object(b.typeRecord("int"), rep)
}

func (b *targetBuilder) wideObject(v int64) uint64 {
	rep := b.intRep()
	b.putWide(rep, 0, v)
	return b.object(b.typeRecord("wideInt"), rep)
}

func (b *targetBuilder) doubleObject(v float64) uint64 {
	rep := b.intRep()
	b.putWide(rep, 0, int64(math.Float64bits(v)))
	return b.object(b.typeRecord("double"), rep)
}

func (b *targetBuilder) boolObject(payload int64) uint64 {
	rep := b.intRep()
	b.putInt(rep, 0, payload)
	return b.object(b.typeRecord("boolean"), rep)
}

// stringObject maps an untyped object carrying only a cached string.
func (b *targetBuilder) stringObject(s []byte) uint64 {
	bytesAddr := b.alloc(append(append([]byte{}, s...), 0))
	ol := objLayoutFor(b.lay)
	hdr := make([]byte, ol.size)
	b.putInt(hdr, 0, 1)
	b.putPointer(hdr, ol.bytes, bytesAddr)
	b.putInt(hdr, ol.length, int64(len(s)))
	return b.alloc(hdr)
}

// taggedObject maps an object with a custom type name, optionally carrying
// a cached string representation.
func (b *targetBuilder) taggedObject(name string, cached []byte) uint64 {
	ol := objLayoutFor(b.lay)
	hdr := make([]byte, ol.size)
	b.putInt(hdr, 0, 1)
	b.putPointer(hdr, ol.typePtr, b.typeRecord(name))
	if cached != nil {
		bytesAddr := b.alloc(append(append([]byte{}, cached...), 0))
		b.putPointer(hdr, ol.bytes, bytesAddr)
		b.putInt(hdr, ol.length, int64(len(cached)))
	}
	return b.alloc(hdr)
}

func (b *targetBuilder) byteArrayObject(data []byte) uint64 {
	iw := b.lay.IntWidth
	buf := make([]byte, 2*iw+len(data))
	b.putInt(buf, 0, int64(len(data)))
	b.putInt(buf, iw, int64(len(data)))
	copy(buf[2*iw:], data)
	ptr := b.alloc(buf)

	rep := b.intRep()
	b.putPointer(rep, 0, ptr)
	return b.object(b.typeRecord("bytearray"), rep)
}

// listObject maps a list object. The returned slice is the list struct so
// tests can patch element slots after the object address is known.
func (b *targetBuilder) listObject(elems ...uint64) (uint64, []byte) {
	iw := b.lay.IntWidth
	pw := b.lay.PointerWidth
	buf := make([]byte, 4*iw+len(elems)*pw)
	b.putInt(buf, 2*iw, int64(len(elems)))
	for i, e := range elems {
		b.putPointer(buf, 4*iw+i*pw, e)
	}
	ptr := b.alloc(buf)

	rep := b.intRep()
	b.putPointer(rep, 0, ptr)
	return b.object(b.typeRecord("list"), rep), buf
}

// entry maps one hash entry. The returned slice allows patching the next
// pointer for chain corruption tests.
func (b *targetBuilder) entry(next, key, val uint64) (uint64, []byte) {
	pw := b.lay.PointerWidth
	rec := make([]byte, 5*pw)
	b.putPointer(rec, 0, next)
	b.putPointer(rec, 3*pw, val)
	b.putPointer(rec, 4*pw, key)
	return b.alloc(rec), rec
}

// dictFromBuckets maps a dict object with the given chain heads and a
// reported entry count.
func (b *targetBuilder) dictFromBuckets(reported int64, bucketHeads ...uint64) uint64 {
	pw := b.lay.PointerWidth
	iw := b.lay.IntWidth

	bucketPtrs := make([]byte, len(bucketHeads)*pw)
	for i, head := range bucketHeads {
		b.putPointer(bucketPtrs, i*pw, head)
	}
	bucketsAddr := b.alloc(bucketPtrs)

	table := make([]byte, 5*pw+2*iw)
	b.putPointer(table, 0, bucketsAddr)
	b.putInt(table, 5*pw, int64(len(bucketHeads)))
	b.putInt(table, 5*pw+iw, reported)
	tableAddr := b.alloc(table)

	rep := b.intRep()
	b.putPointer(rep, 0, tableAddr)
	return b.object(b.typeRecord("dict"), rep)
}

type kv struct {
	key uint64
	val uint64
}

// dictObject maps a dict with entries distributed over the given buckets
// in chain order.
func (b *targetBuilder) dictObject(reported int64, buckets ...[]kv) uint64 {
	heads := make([]uint64, len(buckets))
	for i, chain := range buckets {
		var next uint64
		for j := len(chain) - 1; j >= 0; j-- {
			next, _ = b.entry(next, chain[j].key, chain[j].val)
		}
		heads[i] = next
	}
	return b.dictFromBuckets(reported, heads...)
}

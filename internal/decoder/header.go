package decoder

import "github.com/eullerborges/tcl-pretty-printers/internal/layout"

// objLayout holds the field offsets of the universal object header for one
// target layout. The header is: refCount (native int), bytes (pointer to the
// cached string), length (native int), typePtr (pointer to the type record)
// and the internal representation union. The union holds two pointer words
// and is at least 8 bytes wide since the wide and double members occupy
// 8 bytes on every target.
type objLayout struct {
	bytes   int
	length  int
	typePtr int
	intRep  int
	size    int
}

func objLayoutFor(lay layout.Layout) objLayout {
	var ol objLayout

	off := lay.IntWidth // refCount
	off = lay.Align(off, lay.PointerWidth)
	ol.bytes = off
	off += lay.PointerWidth
	ol.length = off
	off += lay.IntWidth
	off = lay.Align(off, lay.PointerWidth)
	ol.typePtr = off
	off += lay.PointerWidth
	off = lay.Align(off, layout.WideWidth)
	ol.intRep = off

	unionSize := 2 * lay.PointerWidth
	if unionSize < layout.WideWidth {
		unionSize = layout.WideWidth
	}
	ol.size = off + unionSize
	return ol
}

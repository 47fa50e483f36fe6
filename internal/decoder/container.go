package decoder

import (
	"fmt"

	"github.com/eullerborges/tcl-pretty-printers/internal/memory"
	"github.com/eullerborges/tcl-pretty-printers/internal/value"
	"github.com/retroenv/retrogolib/set"
)

// decodeByteArray reads the byte array intrep: two native ints (used,
// allocated) followed by the bytes.
func (s *Session) decodeByteArray(hdr []byte) value.Value {
	ptr := s.lay.Pointer(hdr[s.obj.intRep:])
	if ptr == 0 {
		return value.Unknown{TypeName: "bytearray", Header: hdr,
			Note: "nil byte array representation"}
	}

	used, err := memory.Int(s.reader, s.lay, ptr)
	if err != nil {
		return value.Unreadable{Addr: ptr, Err: err}
	}
	if used < 0 || used > maxStringLen {
		return value.Unknown{TypeName: "bytearray", Header: hdr,
			Note: fmt.Sprintf("implausible byte array size %d", used)}
	}

	buf, err := s.reader.ReadAt(ptr+uint64(2*s.lay.IntWidth), int(used))
	if err != nil {
		return value.Unreadable{Addr: ptr, Err: err}
	}
	return value.ByteArray{Bytes: buf}
}

// decodeList reads the list intrep: four native ints (refCount,
// maxElemCount, elemCount, canonicalFlag) with the element pointer array
// inline after them. Exactly elemCount handles are collected in array
// order; the elements decode lazily when the renderer descends into them.
func (s *Session) decodeList(hdr []byte) value.Value {
	ptr := s.lay.Pointer(hdr[s.obj.intRep:])
	if ptr == 0 {
		return value.Unknown{TypeName: "list", Header: hdr,
			Note: "nil list representation"}
	}

	count, err := memory.Int(s.reader, s.lay, ptr+uint64(2*s.lay.IntWidth))
	if err != nil {
		return value.Unreadable{Addr: ptr, Err: err}
	}
	if count < 0 || count > maxElements {
		return value.Unknown{TypeName: "list", Header: hdr,
			Note: fmt.Sprintf("implausible element count %d", count)}
	}

	list := value.List{Count: int(count)}
	if count == 0 {
		return list
	}

	arr, err := s.reader.ReadAt(ptr+uint64(4*s.lay.IntWidth), int(count)*s.lay.PointerWidth)
	if err != nil {
		return value.Unreadable{Addr: ptr, Err: err}
	}
	list.Elems = make([]value.Handle, count)
	for i := range list.Elems {
		list.Elems[i] = value.Handle{Addr: s.lay.Pointer(arr[i*s.lay.PointerWidth:])}
	}
	return list
}

// decodeDict reads the dict intrep, which starts with the target's hash
// table: the bucket array pointer, four static buckets, then the bucket and
// entry counts. Each entry is five pointer words {next, table, hash,
// clientData, key} where clientData holds the value object and key the key
// object. Every bucket and every chain link is walked; the reported entry
// count is cross-checked against the entries actually collected and a
// mismatch only sets the discrepancy flag, it never blocks the decode.
func (s *Session) decodeDict(hdr []byte) value.Value {
	ptr := s.lay.Pointer(hdr[s.obj.intRep:])
	if ptr == 0 {
		return value.Unknown{TypeName: "dict", Header: hdr,
			Note: "nil dict representation"}
	}

	pw := uint64(s.lay.PointerWidth)
	bucketsPtr, err := memory.Pointer(s.reader, s.lay, ptr)
	if err != nil {
		return value.Unreadable{Addr: ptr, Err: err}
	}
	countsOff := ptr + 5*pw // bucket array pointer plus four static buckets
	numBuckets, err := memory.Int(s.reader, s.lay, countsOff)
	if err != nil {
		return value.Unreadable{Addr: countsOff, Err: err}
	}
	numEntries, err := memory.Int(s.reader, s.lay, countsOff+uint64(s.lay.IntWidth))
	if err != nil {
		return value.Unreadable{Addr: countsOff, Err: err}
	}

	dict := value.Dict{Count: int(numEntries)}
	if bucketsPtr == 0 || numBuckets <= 0 || numBuckets > maxBuckets {
		dict.CountMismatch = dict.Count != 0
		return dict
	}

	// Guards chains that loop due to corrupted next pointers.
	seen := set.New[uint64]()

	for b := int64(0); b < numBuckets; b++ {
		head, err := memory.Pointer(s.reader, s.lay, bucketsPtr+uint64(b)*pw)
		if err != nil {
			// Later buckets may still be readable.
			dict.CountMismatch = true
			continue
		}
		for entry := head; entry != 0; {
			if seen.Contains(entry) || len(dict.Entries) >= maxElements {
				dict.CountMismatch = true
				break
			}
			seen.Add(entry)

			fields, err := s.reader.ReadAt(entry, 5*s.lay.PointerWidth)
			if err != nil {
				dict.CountMismatch = true
				break
			}
			dict.Entries = append(dict.Entries, value.Entry{
				Key: value.Handle{Addr: s.lay.Pointer(fields[4*s.lay.PointerWidth:])},
				Val: value.Handle{Addr: s.lay.Pointer(fields[3*s.lay.PointerWidth:])},
			})
			entry = s.lay.Pointer(fields)
		}
	}

	if len(dict.Entries) != dict.Count {
		dict.CountMismatch = true
	}
	return dict
}

// Package memory provides read access to the address space of the target
// process.
package memory

import (
	"errors"

	"github.com/eullerborges/tcl-pretty-printers/internal/layout"
)

// ErrUnreadable reports an address range the target cannot serve.
var ErrUnreadable = errors.New("unreadable memory")

// Reader reads raw bytes from the target address space. Reads are never
// retried; a stale or unmapped address does not become valid by retrying.
type Reader interface {
	// ReadAt reads n bytes starting at addr.
	ReadAt(addr uint64, n int) ([]byte, error)
}

// Pointer reads a target pointer at addr.
func Pointer(r Reader, lay layout.Layout, addr uint64) (uint64, error) {
	buf, err := r.ReadAt(addr, lay.PointerWidth)
	if err != nil {
		return 0, err
	}
	return lay.Pointer(buf), nil
}

// Int reads a signed native integer at addr.
func Int(r Reader, lay layout.Layout, addr uint64) (int64, error) {
	buf, err := r.ReadAt(addr, lay.IntWidth)
	if err != nil {
		return 0, err
	}
	return lay.Int(buf), nil
}

// CString reads a NUL-terminated string at addr, up to max bytes. The
// terminator is not included in the result; a string that fills max bytes
// without a terminator is returned truncated.
func CString(r Reader, addr uint64, max int) (string, error) {
	buf := make([]byte, 0, 16)
	for len(buf) < max {
		b, err := r.ReadAt(addr+uint64(len(buf)), 1)
		if err != nil {
			return "", err
		}
		if b[0] == 0 {
			break
		}
		buf = append(buf, b[0])
	}
	return string(buf), nil
}

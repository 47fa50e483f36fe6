// Package layout describes the architecture of the target process.
package layout

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
)

// WideWidth is the size of a wide integer payload, fixed at 8 bytes on all
// target platforms.
const WideWidth = 8

// Layout describes pointer width, native integer width, long width and byte
// order of the target process. It is resolved once per debugging session and
// passed into every decoder; no other package hardcodes a width.
type Layout struct {
	PointerWidth int
	IntWidth     int
	LongWidth    int
	ByteOrder    binary.ByteOrder
}

// Presets for the supported target architectures.
var (
	AMD64 = Layout{PointerWidth: 8, IntWidth: 4, LongWidth: 8, ByteOrder: binary.LittleEndian}
	I386  = Layout{PointerWidth: 4, IntWidth: 4, LongWidth: 4, ByteOrder: binary.LittleEndian}
	ARM64 = Layout{PointerWidth: 8, IntWidth: 4, LongWidth: 8, ByteOrder: binary.LittleEndian}
	ARM   = Layout{PointerWidth: 4, IntWidth: 4, LongWidth: 4, ByteOrder: binary.LittleEndian}
	PPC64 = Layout{PointerWidth: 8, IntWidth: 4, LongWidth: 8, ByteOrder: binary.BigEndian}
)

// FromArch returns the layout for a named target architecture.
func FromArch(name string) (Layout, error) {
	switch name {
	case "amd64", "x86_64":
		return AMD64, nil
	case "386", "i386":
		return I386, nil
	case "arm64", "aarch64":
		return ARM64, nil
	case "arm":
		return ARM, nil
	case "ppc64":
		return PPC64, nil
	default:
		return Layout{}, fmt.Errorf("unsupported architecture: %s", name)
	}
}

// Host returns the layout of the machine the debugger runs on.
func Host() Layout {
	l, err := FromArch(runtime.GOARCH)
	if err != nil {
		return AMD64
	}
	return l
}

// Align rounds offset up to the next multiple of align.
func (l Layout) Align(offset, align int) int {
	return (offset + align - 1) &^ (align - 1)
}

// Pointer decodes a target pointer from the start of buf.
func (l Layout) Pointer(buf []byte) uint64 {
	if l.PointerWidth == 4 {
		return uint64(l.ByteOrder.Uint32(buf))
	}
	return l.ByteOrder.Uint64(buf)
}

// Int decodes a signed native integer from the start of buf.
func (l Layout) Int(buf []byte) int64 {
	return l.signed(buf, l.IntWidth)
}

// Long decodes a signed long from the start of buf. Longs widen to the
// pointer width on LP64 targets. No registered object kind decodes at long
// width today; integer payloads read at the native int width and wide
// payloads at WideWidth. The method is kept so a long-backed kind only
// needs a new registry entry.
func (l Layout) Long(buf []byte) int64 {
	return l.signed(buf, l.LongWidth)
}

// Wide decodes a signed 64-bit integer from the start of buf, independent
// of the target's word size.
func (l Layout) Wide(buf []byte) int64 {
	return int64(l.ByteOrder.Uint64(buf))
}

// Double decodes an IEEE-754 binary64 value from the start of buf.
func (l Layout) Double(buf []byte) float64 {
	return math.Float64frombits(l.ByteOrder.Uint64(buf))
}

func (l Layout) signed(buf []byte, width int) int64 {
	if width == 4 {
		return int64(int32(l.ByteOrder.Uint32(buf)))
	}
	return int64(l.ByteOrder.Uint64(buf))
}

package memory

import (
	"errors"
	"testing"

	"github.com/eullerborges/tcl-pretty-printers/internal/layout"
	"github.com/retroenv/retrogolib/assert"
)

func TestSnapshotReadAt(t *testing.T) {
	snap := NewSnapshot()
	snap.Map(0x1000, []byte{1, 2, 3, 4})
	snap.Map(0x2000, []byte{5, 6})

	t.Run("read inside a region", func(t *testing.T) {
		buf, err := snap.ReadAt(0x1001, 2)
		assert.NoError(t, err)
		assert.Equal(t, []byte{2, 3}, buf)
	})

	t.Run("unmapped address", func(t *testing.T) {
		_, err := snap.ReadAt(0x3000, 1)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})

	t.Run("read crossing the region end", func(t *testing.T) {
		_, err := snap.ReadAt(0x1002, 8)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})

	t.Run("address near the top of the address space", func(t *testing.T) {
		// addr+n wraps around zero here; the read must fail instead of
		// passing the bounds check and panicking.
		_, err := snap.ReadAt(0xfffffffffffffff8, 16)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})

	t.Run("size overflowing the region fails", func(t *testing.T) {
		_, err := snap.ReadAt(0x1000, 1<<40)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})

	t.Run("returned buffer is a copy", func(t *testing.T) {
		buf, err := snap.ReadAt(0x2000, 2)
		assert.NoError(t, err)
		buf[0] = 99

		again, err := snap.ReadAt(0x2000, 2)
		assert.NoError(t, err)
		assert.Equal(t, []byte{5, 6}, again)
	})
}

func TestPointer(t *testing.T) {
	snap := NewSnapshot()
	snap.Map(0x1000, []byte{0x78, 0x56, 0x34, 0x12, 0, 0, 0, 0})

	t.Run("32 bit", func(t *testing.T) {
		p, err := Pointer(snap, layout.I386, 0x1000)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0x12345678), p)
	})

	t.Run("64 bit", func(t *testing.T) {
		p, err := Pointer(snap, layout.AMD64, 0x1000)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0x12345678), p)
	})

	t.Run("unreadable", func(t *testing.T) {
		_, err := Pointer(snap, layout.AMD64, 0x9000)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})
}

func TestInt(t *testing.T) {
	snap := NewSnapshot()
	snap.Map(0x1000, []byte{0xff, 0xff, 0xff, 0xff})

	v, err := Int(snap, layout.AMD64, 0x1000)
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), v)

	big := NewSnapshot()
	big.Map(0x1000, []byte{0x00, 0x00, 0x00, 0x2a})
	v, err = Int(big, layout.PPC64, 0x1000)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestCString(t *testing.T) {
	snap := NewSnapshot()
	snap.Map(0x1000, []byte("list\x00garbage"))
	snap.Map(0x2000, []byte("unterminated"))

	t.Run("terminated", func(t *testing.T) {
		s, err := CString(snap, 0x1000, 64)
		assert.NoError(t, err)
		assert.Equal(t, "list", s)
	})

	t.Run("truncated at max", func(t *testing.T) {
		s, err := CString(snap, 0x1000, 2)
		assert.NoError(t, err)
		assert.Equal(t, "li", s)
	})

	t.Run("running off the region fails", func(t *testing.T) {
		_, err := CString(snap, 0x2000, 64)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})
}

//go:build linux

package memory

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ProcessReader reads the address space of a live process using
// process_vm_readv. The host debugger keeps the process stopped for the
// duration of a print call, so reads see a frozen target.
type ProcessReader struct {
	pid int
}

// AttachProcess returns a reader for the given process id.
func AttachProcess(pid int) *ProcessReader {
	return &ProcessReader{pid: pid}
}

// ReadAt implements Reader.
func (p *ProcessReader) ReadAt(addr uint64, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	local := []unix.Iovec{{Base: &buf[0], Len: uint64(n)}}
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: n}}

	count, err := unix.ProcessVMReadv(p.pid, local, remote, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: pid %d at 0x%x: %v", ErrUnreadable, p.pid, addr, err)
	}
	if count != n {
		return nil, fmt.Errorf("%w: pid %d at 0x%x: short read %d of %d bytes",
			ErrUnreadable, p.pid, addr, count, n)
	}
	return buf, nil
}

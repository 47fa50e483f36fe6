//go:build !linux

package memory

import "fmt"

// ProcessReader reads the address space of a live process. Live process
// reads are only implemented on Linux.
type ProcessReader struct {
	pid int
}

// AttachProcess returns a reader for the given process id.
func AttachProcess(pid int) *ProcessReader {
	return &ProcessReader{pid: pid}
}

// ReadAt implements Reader.
func (p *ProcessReader) ReadAt(addr uint64, n int) ([]byte, error) {
	return nil, fmt.Errorf("%w: live process reads are only supported on linux", ErrUnreadable)
}

// Package printer binds the decode and render pipeline to the debugger
// host's pretty print contract.
//
// The print strategy is eager: Print returns fully rendered, self-contained
// text. Hosts that prefer to recurse into children themselves can use
// DisplayHint and Children instead; both paths share the same decode core
// and honor the same ordering and cycle rules.
package printer

import (
	"fmt"

	"github.com/eullerborges/tcl-pretty-printers/internal/decoder"
	"github.com/eullerborges/tcl-pretty-printers/internal/layout"
	"github.com/eullerborges/tcl-pretty-printers/internal/memory"
	"github.com/eullerborges/tcl-pretty-printers/internal/registry"
	"github.com/eullerborges/tcl-pretty-printers/internal/render"
	"github.com/eullerborges/tcl-pretty-printers/internal/value"
	"github.com/retroenv/retrogolib/log"
)

// Options are the two host toggles read once per print call.
type Options struct {
	PrettyPrint bool
	ArrayPrint  bool
}

// Display hints understood by hosts that recurse into children themselves.
const (
	HintString = "string"
	HintArray  = "array"
	HintMap    = "map"
)

// Child is one enumerated container element for host-side recursion.
type Child struct {
	Name string
	Addr uint64
}

// Registration binds a resolved target layout and memory oracle to the
// print handler. It is constructed explicitly by the host hook point; there
// is no package level registry.
type Registration struct {
	logger *log.Logger
	lay    layout.Layout
	reader memory.Reader
	reg    *registry.Registry
}

// Register installs the printers for a debugging session with the given
// target layout and memory oracle.
func Register(logger *log.Logger, lay layout.Layout, reader memory.Reader) *Registration {
	return &Registration{
		logger: logger,
		lay:    lay,
		reader: reader,
		reg:    registry.New(lay, reader),
	}
}

// Recognize reports whether the header at addr looks like a universal
// object this printer handles.
func (r *Registration) Recognize(addr uint64) bool {
	return r.session().Recognizable(addr)
}

// Print decodes the object at addr and returns its fully rendered text.
// Errors inside the object tree degrade to inline markers; the only failing
// case is an entry address whose header cannot be read at all.
func (r *Registration) Print(addr uint64, opts Options) (string, error) {
	sess := r.session()
	v := sess.Resolve(addr)
	if u, ok := v.(value.Unreadable); ok && u.Addr == addr {
		return "", fmt.Errorf("object at 0x%x: %w", addr, u.Err)
	}

	ctx := render.Context{
		PrettyPrint: opts.PrettyPrint,
		ArrayPrint:  opts.ArrayPrint,
	}
	return render.New(sess).Render(v, ctx), nil
}

// DisplayHint classifies the object at addr for hosts that pick their own
// child rendering: "string", "array" or "map"; empty for scalars and
// degraded nodes.
func (r *Registration) DisplayHint(addr uint64) string {
	switch r.session().Resolve(addr).(type) {
	case value.String:
		return HintString
	case value.List:
		return HintArray
	case value.Dict:
		return HintMap
	default:
		return ""
	}
}

// Children enumerates the direct children of a container object as
// (name, address) pairs for hosts that recurse themselves. List elements
// are named "elem N" in array order; dict entries yield alternating "key"
// and "value" pairs in bucket and chain order.
func (r *Registration) Children(addr uint64) ([]Child, error) {
	switch v := r.session().Resolve(addr).(type) {
	case value.List:
		children := make([]Child, len(v.Elems))
		for i, h := range v.Elems {
			children[i] = Child{Name: fmt.Sprintf("elem %d", i), Addr: h.Addr}
		}
		return children, nil
	case value.Dict:
		children := make([]Child, 0, 2*len(v.Entries))
		for _, e := range v.Entries {
			children = append(children,
				Child{Name: "key", Addr: e.Key.Addr},
				Child{Name: "value", Addr: e.Val.Addr})
		}
		return children, nil
	case value.Unreadable:
		return nil, fmt.Errorf("object at 0x%x: %w", addr, v.Err)
	default:
		return nil, nil
	}
}

// session creates a fresh decode session. Each host call gets its own
// visited set; no decoded state is cached across invocations.
func (r *Registration) session() *decoder.Session {
	return decoder.NewSession(r.logger, r.lay, r.reader, r.reg)
}

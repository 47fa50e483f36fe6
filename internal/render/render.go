// Package render formats decoded values as text.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eullerborges/tcl-pretty-printers/internal/value"
)

// indentStep is the number of spaces added per nesting level.
const indentStep = 2

// maxDepth is a hard ceiling on render recursion. It is a second line of
// defense behind the decoder's visited set: a corrupted, non-cyclic chain
// of containers terminates here instead of exhausting the stack.
const maxDepth = 64

// Context controls the formatting of one print call. IndentLevel grows by
// exactly one per container descent; the other fields never change
// mid-render.
type Context struct {
	PrettyPrint bool
	ArrayPrint  bool
	IndentLevel int
}

// Resolver decodes the object behind a container element handle.
type Resolver interface {
	Resolve(addr uint64) value.Value
}

// Renderer turns decoded values into text, resolving container children
// through the decode session that produced them.
type Renderer struct {
	resolver Resolver
}

// New creates a renderer on top of the given resolver.
func New(resolver Resolver) *Renderer {
	return &Renderer{resolver: resolver}
}

// Render formats a decoded value under the given context.
func (r *Renderer) Render(v value.Value, ctx Context) string {
	switch v := v.(type) {
	case value.String:
		return strconv.Quote(string(v.Bytes))
	case value.Integer:
		return strconv.FormatInt(v.Val, 10)
	case value.Wide:
		return strconv.FormatInt(v.Val, 10)
	case value.Double:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case value.Bool:
		// Booleans print numerically, matching the target convention.
		if v.Val {
			return "1"
		}
		return "0"
	case value.ByteArray:
		return renderBytes(v.Bytes)
	case value.List:
		return r.renderList(v, ctx)
	case value.Dict:
		return r.renderDict(v, ctx)
	case value.Unknown:
		return renderUnknown(v)
	case value.Cycle:
		return fmt.Sprintf("<cycle to 0x%x>", v.Addr)
	case value.Unreadable:
		return "<error: unreadable memory>"
	default:
		return fmt.Sprintf("<unsupported value %T>", v)
	}
}

// child resolves and renders one container element one level deeper.
func (r *Renderer) child(h value.Handle, ctx Context) string {
	ctx.IndentLevel++
	if ctx.IndentLevel > maxDepth {
		return "<max nesting depth exceeded>"
	}
	return r.Render(r.resolver.Resolve(h.Addr), ctx)
}

func (r *Renderer) renderList(v value.List, ctx Context) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tcl List of length %d = ", v.Count)
	if len(v.Elems) == 0 {
		sb.WriteString("{}")
		return sb.String()
	}

	items := make([]string, len(v.Elems))
	for i, h := range v.Elems {
		item := r.child(h, ctx)
		if ctx.ArrayPrint {
			item = fmt.Sprintf("elem %d = %s", i, item)
		}
		items[i] = item
	}
	writeBody(&sb, items, ctx)
	return sb.String()
}

func (r *Renderer) renderDict(v value.Dict, ctx Context) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tcl Dict with %d elements = ", v.Count)
	if len(v.Entries) == 0 {
		sb.WriteString("{}")
	} else {
		items := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			// Keys render on a single line regardless of nesting so the
			// [key] = value shape stays readable.
			keyCtx := ctx
			keyCtx.PrettyPrint = false
			items[i] = fmt.Sprintf("[%s] = %s", r.child(e.Key, keyCtx), r.child(e.Val, ctx))
		}
		writeBody(&sb, items, ctx)
	}
	if v.CountMismatch {
		fmt.Fprintf(&sb, " <element count mismatch: header reports %d, walked %d>",
			v.Count, len(v.Entries))
	}
	return sb.String()
}

// writeBody writes the container elements: one indented line per element in
// pretty mode, a single comma separated line otherwise.
func writeBody(sb *strings.Builder, items []string, ctx Context) {
	if !ctx.PrettyPrint {
		sb.WriteString("{")
		sb.WriteString(strings.Join(items, ", "))
		sb.WriteString("}")
		return
	}

	inner := strings.Repeat(" ", (ctx.IndentLevel+1)*indentStep)
	sb.WriteString("{\n")
	for _, item := range items {
		sb.WriteString(inner)
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(" ", ctx.IndentLevel*indentStep))
	sb.WriteString("}")
}

func renderBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}
	sb.WriteByte(']')
	return sb.String()
}

func renderUnknown(v value.Unknown) string {
	name := v.TypeName
	if name == "" {
		name = "untyped"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<unknown type %q", name)
	if v.Note != "" {
		fmt.Fprintf(&sb, ", %s", v.Note)
	}
	fmt.Fprintf(&sb, ": % x>", v.Header)
	return sb.String()
}

package pretty

// Doc layout for the IR printers.
// A Doc is built from text, soft line breaks, indentation and groups. A group
// is printed on one line when it fits in the remaining width, otherwise each
// of its line breaks becomes a newline at the current nesting level.

import (
	"strings"
)

// Doc is a layout document
type Doc interface {
	isDoc()
}

type text string

type line struct{}

type nest struct {
	indent int
	doc    Doc
}

type group struct {
	doc Doc
}

type concat []Doc

func (text) isDoc()   {}
func (line) isDoc()   {}
func (nest) isDoc()   {}
func (group) isDoc()  {}
func (concat) isDoc() {}

// DefaultWidth is the line width used by String methods
const DefaultWidth = 100

// Text returns a document holding literal text
func Text(s string) Doc {
	return text(s)
}

// Line returns a break that renders as a space when its group is flat
func Line() Doc {
	return line{}
}

// Nest indents every line break inside d by indent columns
func Nest(indent int, d Doc) Doc {
	return nest{indent: indent, doc: d}
}

// Group lets d be laid out flat when it fits
func Group(d Doc) Doc {
	return group{doc: d}
}

// Concat places documents one after another
func Concat(docs ...Doc) Doc {
	return concat(docs)
}

// Join intersperses sep between docs
func Join(docs []Doc, sep Doc) Doc {
	out := make(concat, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

// Form renders the parenthesized prefix form (head arg1 arg2 ...)
func Form(head Doc, args ...Doc) Doc {
	if len(args) == 0 {
		return Concat(Text("("), head, Text(")"))
	}

	return Group(Concat(
		Text("("),
		head,
		Text(" "),
		Nest(2, Join(args, Line())),
		Text(")"),
	))
}

// Keyword is Form with a textual head
func Keyword(head string, args ...Doc) Doc {
	return Form(Text(head), args...)
}

type cmd struct {
	indent int
	flat   bool
	doc    Doc
}

// Render lays d out within width columns
func Render(d Doc, width int) string {
	var b strings.Builder

	col := 0
	stack := []cmd{{doc: d}}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch x := c.doc.(type) {
		case text:
			b.WriteString(string(x))
			col += len(x)
		case concat:
			for i := len(x) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: x[i]})
			}
		case nest:
			stack = append(stack, cmd{indent: c.indent + x.indent, flat: c.flat, doc: x.doc})
		case line:
			if c.flat {
				b.WriteByte(' ')
				col++
				continue
			}

			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", c.indent))
			col = c.indent
		case group:
			flat := c.flat || fits(width-col, stack, cmd{indent: c.indent, flat: true, doc: x.doc})
			stack = append(stack, cmd{indent: c.indent, flat: flat, doc: x.doc})
		}
	}

	return b.String()
}

// fits reports whether next, followed by the pending rest up to its first
// newline, fits in w columns.
func fits(w int, rest []cmd, next cmd) bool {
	pending := make([]cmd, len(rest), len(rest)+8)
	copy(pending, rest)
	pending = append(pending, next)

	for len(pending) > 0 {
		if w < 0 {
			return false
		}

		c := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		switch x := c.doc.(type) {
		case text:
			w -= len(x)
		case concat:
			for i := len(x) - 1; i >= 0; i-- {
				pending = append(pending, cmd{indent: c.indent, flat: c.flat, doc: x[i]})
			}
		case nest:
			pending = append(pending, cmd{indent: c.indent + x.indent, flat: c.flat, doc: x.doc})
		case line:
			if !c.flat {
				return true
			}
			w--
		case group:
			pending = append(pending, cmd{indent: c.indent, flat: c.flat, doc: x.doc})
		}
	}

	return w >= 0
}

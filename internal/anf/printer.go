package anf

import (
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
)

func trivDoc(t shared.Triv) pretty.Doc {
	if t == nil {
		return pretty.Text("<nil>")
	}
	return t.Doc()
}

func exprDoc(e Expr) pretty.Doc {
	if e == nil {
		return pretty.Text("<nil>")
	}
	return e.Doc()
}

func (c *Call) Doc() pretty.Doc {
	args := make([]pretty.Doc, 0, len(c.Args))
	for _, arg := range c.Args {
		args = append(args, trivDoc(arg))
	}
	return pretty.Form(trivDoc(c.Subject), args...)
}

func (s *Seq) Doc() pretty.Doc {
	docs := make([]pretty.Doc, 0, len(s.Stmts)+1)
	for _, stmt := range s.Stmts {
		if stmt == nil {
			docs = append(docs, pretty.Text("<nil>"))
			continue
		}
		docs = append(docs, stmt.Doc())
	}
	docs = append(docs, exprDoc(s.Body))
	return pretty.Keyword("begin", docs...)
}

func (b *Binop) Doc() pretty.Doc {
	return pretty.Keyword(b.Op.String(), trivDoc(b.Lhs), trivDoc(b.Rhs))
}

func (i *If) Doc() pretty.Doc {
	return pretty.Keyword("if", trivDoc(i.Test), exprDoc(i.Conseq), exprDoc(i.Alt))
}

func (a *Atom) Doc() pretty.Doc { return trivDoc(a.Triv) }
func (s *Exp) Doc() pretty.Doc  { return exprDoc(s.Expr) }

func (s *Let) Doc() pretty.Doc {
	return pretty.Keyword("set!", pretty.Text(s.Name), exprDoc(s.Expr))
}

func (c *Call) String() string  { return pretty.Render(c.Doc(), pretty.DefaultWidth) }
func (s *Seq) String() string   { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (b *Binop) String() string { return pretty.Render(b.Doc(), pretty.DefaultWidth) }
func (i *If) String() string    { return pretty.Render(i.Doc(), pretty.DefaultWidth) }
func (a *Atom) String() string  { return pretty.Render(a.Doc(), pretty.DefaultWidth) }
func (s *Exp) String() string   { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *Let) String() string   { return pretty.Render(s.Doc(), pretty.DefaultWidth) }

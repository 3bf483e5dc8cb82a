package surface

import (
	"nanopass/internal/pretty"
)

func exprDoc(e Expr) pretty.Doc {
	if e == nil {
		return pretty.Text("<nil>")
	}
	return e.Doc()
}

func (c *Call) Doc() pretty.Doc {
	args := make([]pretty.Doc, 0, len(c.Args))
	for _, arg := range c.Args {
		args = append(args, exprDoc(arg))
	}
	return pretty.Form(exprDoc(c.Subject), args...)
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
	return pretty.Keyword(b.Op.String(), exprDoc(b.Lhs), exprDoc(b.Rhs))
}

func (i *If) Doc() pretty.Doc {
	return pretty.Keyword("if", exprDoc(i.Test), exprDoc(i.Conseq), exprDoc(i.Alt))
}

func (v *Value) Doc() pretty.Doc { return pretty.Text(v.Value.String()) }
func (v *Var) Doc() pretty.Doc   { return pretty.Text(v.Name) }

func (s *Exp) Doc() pretty.Doc { return exprDoc(s.Expr) }

func (s *Let) Doc() pretty.Doc {
	return pretty.Keyword("set!", pretty.Text(s.Name), exprDoc(s.Expr))
}

func (c *Call) String() string  { return pretty.Render(c.Doc(), pretty.DefaultWidth) }
func (s *Seq) String() string   { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (b *Binop) String() string { return pretty.Render(b.Doc(), pretty.DefaultWidth) }
func (i *If) String() string    { return pretty.Render(i.Doc(), pretty.DefaultWidth) }
func (v *Value) String() string { return v.Value.String() }
func (v *Var) String() string   { return v.Name }
func (s *Exp) String() string   { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *Let) String() string   { return pretty.Render(s.Doc(), pretty.DefaultWidth) }

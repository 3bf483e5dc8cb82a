package ctxir

import (
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
)

var nilDoc = pretty.Text("<nil>")

func trivDoc(t shared.Triv) pretty.Doc {
	if t == nil {
		return nilDoc
	}
	return t.Doc()
}

func exprDoc(e Expr) pretty.Doc {
	if e == nil {
		return nilDoc
	}
	return e.Doc()
}

func predDoc(p Pred) pretty.Doc {
	if p == nil {
		return nilDoc
	}
	return p.Doc()
}

func stmtDocs(ss []Stmt) []pretty.Doc {
	docs := make([]pretty.Doc, 0, len(ss)+1)
	for _, s := range ss {
		if s == nil {
			docs = append(docs, nilDoc)
			continue
		}
		docs = append(docs, s.Doc())
	}
	return docs
}

func (c *Call) Doc() pretty.Doc {
	args := make([]pretty.Doc, 0, len(c.Args))
	for _, arg := range c.Args {
		args = append(args, trivDoc(arg))
	}
	return pretty.Form(trivDoc(c.Subject), args...)
}

func (b *Binop) Doc() pretty.Doc {
	return pretty.Keyword(b.Op.String(), trivDoc(b.Lhs), trivDoc(b.Rhs))
}

func (i *If) Doc() pretty.Doc {
	return pretty.Keyword("if", predDoc(i.Test), exprDoc(i.Conseq), exprDoc(i.Alt))
}

func (a *Atom) Doc() pretty.Doc { return trivDoc(a.Triv) }

func (s *Seq) Doc() pretty.Doc {
	return pretty.Keyword("begin", append(stmtDocs(s.Stmts), exprDoc(s.Body))...)
}

func (r *Relop) Doc() pretty.Doc {
	return pretty.Keyword(r.Op.String(), trivDoc(r.Lhs), trivDoc(r.Rhs))
}

func (p *PredIf) Doc() pretty.Doc {
	return pretty.Keyword("if", predDoc(p.Test), predDoc(p.Conseq), predDoc(p.Alt))
}

func (p *PredSeq) Doc() pretty.Doc {
	return pretty.Keyword("begin", append(stmtDocs(p.Stmts), predDoc(p.Body))...)
}

func (*True) Doc() pretty.Doc  { return pretty.Text("#t") }
func (*False) Doc() pretty.Doc { return pretty.Text("#f") }

func (s *IfStmt) Doc() pretty.Doc {
	return pretty.Keyword("if",
		predDoc(s.Test),
		pretty.Keyword("begin", stmtDocs(s.Conseq)...),
		pretty.Keyword("begin", stmtDocs(s.Alt)...),
	)
}

func (s *Let) Doc() pretty.Doc {
	return pretty.Keyword("set!", pretty.Text(s.Name), exprDoc(s.Expr))
}

func (s *Exp) Doc() pretty.Doc { return exprDoc(s.Expr) }

func (c *Call) String() string    { return pretty.Render(c.Doc(), pretty.DefaultWidth) }
func (b *Binop) String() string   { return pretty.Render(b.Doc(), pretty.DefaultWidth) }
func (i *If) String() string      { return pretty.Render(i.Doc(), pretty.DefaultWidth) }
func (a *Atom) String() string    { return pretty.Render(a.Doc(), pretty.DefaultWidth) }
func (s *Seq) String() string     { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (r *Relop) String() string   { return pretty.Render(r.Doc(), pretty.DefaultWidth) }
func (p *PredIf) String() string  { return pretty.Render(p.Doc(), pretty.DefaultWidth) }
func (p *PredSeq) String() string { return pretty.Render(p.Doc(), pretty.DefaultWidth) }
func (*True) String() string      { return "#t" }
func (*False) String() string     { return "#f" }
func (s *IfStmt) String() string  { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *Let) String() string     { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *Exp) String() string     { return pretty.Render(s.Doc(), pretty.DefaultWidth) }

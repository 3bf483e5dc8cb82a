package convir

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

func (c *Call) Doc() pretty.Doc { return pretty.Form(trivDoc(c.Subject)) }

func (s *Seq) Doc() pretty.Doc {
	return pretty.Keyword("begin", append(stmtDocs(s.Stmts), exprDoc(s.Body))...)
}

func (i *If) Doc() pretty.Doc {
	return pretty.Keyword("if", predDoc(i.Test), exprDoc(i.Conseq), exprDoc(i.Alt))
}

func (*Return) Doc() pretty.Doc { return pretty.Keyword("return") }

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

func (s *Let) Doc() pretty.Doc {
	return pretty.Keyword("set!", pretty.Text(s.Name), trivDoc(s.Triv))
}

func (s *LetBinop) Doc() pretty.Doc {
	return pretty.Keyword("set!", pretty.Text(s.Name),
		pretty.Keyword(s.Op.String(), trivDoc(s.Lhs), trivDoc(s.Rhs)))
}

func (s *IfStmt) Doc() pretty.Doc {
	return pretty.Keyword("if",
		predDoc(s.Test),
		pretty.Keyword("begin", stmtDocs(s.Conseq)...),
		pretty.Keyword("begin", stmtDocs(s.Alt)...),
	)
}

func (s *CallStmt) Doc() pretty.Doc  { return pretty.Form(trivDoc(s.Subject)) }
func (s *Push) Doc() pretty.Doc      { return pretty.Keyword("push!", trivDoc(s.Triv)) }
func (s *ReturnSet) Doc() pretty.Doc { return pretty.Keyword("return-set!", trivDoc(s.Triv)) }

func (c *Call) String() string      { return pretty.Render(c.Doc(), pretty.DefaultWidth) }
func (s *Seq) String() string       { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (i *If) String() string        { return pretty.Render(i.Doc(), pretty.DefaultWidth) }
func (*Return) String() string      { return "(return)" }
func (r *Relop) String() string     { return pretty.Render(r.Doc(), pretty.DefaultWidth) }
func (p *PredIf) String() string    { return pretty.Render(p.Doc(), pretty.DefaultWidth) }
func (p *PredSeq) String() string   { return pretty.Render(p.Doc(), pretty.DefaultWidth) }
func (*True) String() string        { return "#t" }
func (*False) String() string       { return "#f" }
func (s *Let) String() string       { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *LetBinop) String() string  { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *IfStmt) String() string    { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *CallStmt) String() string  { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *Push) String() string      { return pretty.Render(s.Doc(), pretty.DefaultWidth) }
func (s *ReturnSet) String() string { return pretty.Render(s.Doc(), pretty.DefaultWidth) }

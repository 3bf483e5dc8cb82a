package anf

// ANF IR: every operand of a call or binary operation and every conditional
// test is a trivial term. Compound computation is bound to a name first.

import (
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
)

// Expr is an ANF expression
type Expr interface {
	isExpr()
	Doc() pretty.Doc
	String() string
}

// Stmt is an ANF statement
type Stmt interface {
	isStmt()
	Doc() pretty.Doc
	String() string
}

type Call struct {
	Subject shared.Triv
	Args    []shared.Triv
}

type Seq struct {
	Stmts []Stmt
	Body  Expr
}

type Binop struct {
	Lhs shared.Triv
	Op  shared.Op
	Rhs shared.Triv
}

type If struct {
	Test   shared.Triv
	Conseq Expr
	Alt    Expr
}

// Atom is a trivial term in expression position
type Atom struct {
	Triv shared.Triv
}

type Exp struct {
	Expr Expr
}

type Let struct {
	Name shared.Var
	Expr Expr
}

func (*Call) isExpr()  {}
func (*Seq) isExpr()   {}
func (*Binop) isExpr() {}
func (*If) isExpr()    {}
func (*Atom) isExpr()  {}

func (*Exp) isStmt() {}
func (*Let) isStmt() {}

// Program is an ANF program
type Program = shared.Program[Expr]

// BoundVars lists every name bound by a Let in e, in order of appearance
func BoundVars(e Expr) []shared.Var {
	var names []shared.Var
	walkExpr(e, func(s Stmt) {
		if let, ok := s.(*Let); ok {
			names = append(names, let.Name)
		}
	})
	return names
}

func walkExpr(e Expr, visit func(Stmt)) {
	switch e := e.(type) {
	case *Seq:
		for _, s := range e.Stmts {
			visit(s)
			switch s := s.(type) {
			case *Let:
				walkExpr(s.Expr, visit)
			case *Exp:
				walkExpr(s.Expr, visit)
			}
		}
		walkExpr(e.Body, visit)
	case *If:
		walkExpr(e.Conseq, visit)
		walkExpr(e.Alt, visit)
	}
}

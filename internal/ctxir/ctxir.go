package ctxir

// Context IR: expressions split into three syntactic roles.
//   - Value expressions produce a usable result.
//   - Predicates only steer control flow.
//   - Effect statements run for their side effects and bindings.
// Comparisons exist only as predicates; arithmetic only as values.

import (
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
)

// Expr is a value expression
type Expr interface {
	isExpr()
	Doc() pretty.Doc
	String() string
}

// Pred is a predicate
type Pred interface {
	isPred()
	Doc() pretty.Doc
	String() string
}

// Stmt is an effect statement
type Stmt interface {
	isStmt()
	Doc() pretty.Doc
	String() string
}

// Value expressions

type Call struct {
	Subject shared.Triv
	Args    []shared.Triv
}

// Binop is arithmetic only: Add or Sub
type Binop struct {
	Lhs shared.Triv
	Op  shared.Op
	Rhs shared.Triv
}

type If struct {
	Test   Pred
	Conseq Expr
	Alt    Expr
}

type Atom struct {
	Triv shared.Triv
}

type Seq struct {
	Stmts []Stmt
	Body  Expr
}

// Predicates

// Relop is a comparison: Eq or Neq
type Relop struct {
	Lhs shared.Triv
	Op  shared.Op
	Rhs shared.Triv
}

type PredIf struct {
	Test   Pred
	Conseq Pred
	Alt    Pred
}

type PredSeq struct {
	Stmts []Stmt
	Body  Pred
}

type True struct{}

type False struct{}

// Effect statements

type IfStmt struct {
	Test   Pred
	Conseq []Stmt
	Alt    []Stmt
}

type Let struct {
	Name shared.Var
	Expr Expr
}

type Exp struct {
	Expr Expr
}

func (*Call) isExpr()  {}
func (*Binop) isExpr() {}
func (*If) isExpr()    {}
func (*Atom) isExpr()  {}
func (*Seq) isExpr()   {}

func (*Relop) isPred()   {}
func (*PredIf) isPred()  {}
func (*PredSeq) isPred() {}
func (*True) isPred()    {}
func (*False) isPred()   {}

func (*IfStmt) isStmt() {}
func (*Let) isStmt()    {}
func (*Exp) isStmt()    {}

// Program is a Context IR program
type Program = shared.Program[Expr]

// Truthy is the one notion of truth: t is true unless it is the False
// constant.
func Truthy(t shared.Triv) Pred {
	return &PredIf{
		Test:   &Relop{Lhs: t, Op: shared.Eq, Rhs: shared.FalseLit()},
		Conseq: &False{},
		Alt:    &True{},
	}
}

// TruthyOperand returns the tested operand when p is the canonical
// truthiness test built by Truthy.
func TruthyOperand(p Pred) (shared.Triv, bool) {
	pif, ok := p.(*PredIf)
	if !ok {
		return nil, false
	}

	rel, ok := pif.Test.(*Relop)
	if !ok || rel.Op != shared.Eq {
		return nil, false
	}

	lit, ok := rel.Rhs.(shared.Lit)
	if !ok || !lit.Value.IsFalse() {
		return nil, false
	}

	_, f := pif.Conseq.(*False)
	_, t := pif.Alt.(*True)
	if !f || !t {
		return nil, false
	}

	return rel.Lhs, true
}

// BoundVars lists every name bound by a Let in e
func BoundVars(e Expr) []shared.Var {
	var names []shared.Var
	w := walker{onStmt: func(s Stmt) {
		if let, ok := s.(*Let); ok {
			names = append(names, let.Name)
		}
	}}
	w.expr(e)
	return names
}

// walker visits every statement, value and predicate reachable from a root
type walker struct {
	onStmt func(Stmt)
	onExpr func(Expr)
	onPred func(Pred)
}

func (w walker) expr(e Expr) {
	if w.onExpr != nil {
		w.onExpr(e)
	}

	switch e := e.(type) {
	case *If:
		w.pred(e.Test)
		w.expr(e.Conseq)
		w.expr(e.Alt)
	case *Seq:
		w.stmts(e.Stmts)
		w.expr(e.Body)
	}
}

func (w walker) pred(p Pred) {
	if w.onPred != nil {
		w.onPred(p)
	}

	switch p := p.(type) {
	case *PredIf:
		w.pred(p.Test)
		w.pred(p.Conseq)
		w.pred(p.Alt)
	case *PredSeq:
		w.stmts(p.Stmts)
		w.pred(p.Body)
	}
}

func (w walker) stmts(ss []Stmt) {
	for _, s := range ss {
		if w.onStmt != nil {
			w.onStmt(s)
		}

		switch s := s.(type) {
		case *IfStmt:
			w.pred(s.Test)
			w.stmts(s.Conseq)
			w.stmts(s.Alt)
		case *Let:
			w.expr(s.Expr)
		case *Exp:
			w.expr(s.Expr)
		}
	}
}

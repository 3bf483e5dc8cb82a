package convir

// Convention IR: calls take their arguments from an explicit stack and
// leave their result in the single return slot (%ret).
//
// A function body is a tail expression. Every path through it ends in a
// tail call or in (return) after the result was stored with (return-set! t).
// Non-tail calls are statements; their result is read from %ret by the
// statement right after them.

import (
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
)

// Expr is a tail expression
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

// Stmt is a statement
type Stmt interface {
	isStmt()
	Doc() pretty.Doc
	String() string
}

// Tail expressions

// Call transfers control to Subject; the arguments were pushed before it
type Call struct {
	Subject shared.Triv
}

type Seq struct {
	Stmts []Stmt
	Body  Expr
}

type If struct {
	Test   Pred
	Conseq Expr
	Alt    Expr
}

// Return hands the value stored in the return slot back to the caller
type Return struct{}

// Predicates

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

// Statements

type Let struct {
	Name shared.Var
	Triv shared.Triv
}

// LetBinop binds the result of arithmetic on two trivial operands
type LetBinop struct {
	Name shared.Var
	Lhs  shared.Triv
	Op   shared.Op
	Rhs  shared.Triv
}

type IfStmt struct {
	Test   Pred
	Conseq []Stmt
	Alt    []Stmt
}

// CallStmt is a non-tail call. Its result is left in the return slot.
type CallStmt struct {
	Subject shared.Triv
}

// Push places one argument on the argument stack
type Push struct {
	Triv shared.Triv
}

// ReturnSet stores the function result in the return slot
type ReturnSet struct {
	Triv shared.Triv
}

func (*Call) isExpr()   {}
func (*Seq) isExpr()    {}
func (*If) isExpr()     {}
func (*Return) isExpr() {}

func (*Relop) isPred()   {}
func (*PredIf) isPred()  {}
func (*PredSeq) isPred() {}
func (*True) isPred()    {}
func (*False) isPred()   {}

func (*Let) isStmt()       {}
func (*LetBinop) isStmt()  {}
func (*IfStmt) isStmt()    {}
func (*CallStmt) isStmt()  {}
func (*Push) isStmt()      {}
func (*ReturnSet) isStmt() {}

// Program is a Convention IR program
type Program = shared.Program[Expr]

// BoundVars lists every name bound in e
func BoundVars(e Expr) []shared.Var {
	var names []shared.Var
	w := walker{onStmt: func(s Stmt) {
		switch s := s.(type) {
		case *Let:
			names = append(names, s.Name)
		case *LetBinop:
			names = append(names, s.Name)
		}
	}}
	w.expr(e)
	return names
}

type walker struct {
	onStmts func([]Stmt)
	onStmt  func(Stmt)
	onExpr  func(Expr)
	onPred  func(Pred)
}

func (w walker) expr(e Expr) {
	if w.onExpr != nil {
		w.onExpr(e)
	}

	switch e := e.(type) {
	case *Seq:
		w.stmts(e.Stmts)
		w.expr(e.Body)
	case *If:
		w.pred(e.Test)
		w.expr(e.Conseq)
		w.expr(e.Alt)
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
	if w.onStmts != nil {
		w.onStmts(ss)
	}

	for _, s := range ss {
		if w.onStmt != nil {
			w.onStmt(s)
		}

		if ifs, ok := s.(*IfStmt); ok {
			w.pred(ifs.Test)
			w.stmts(ifs.Conseq)
			w.stmts(ifs.Alt)
		}
	}
}

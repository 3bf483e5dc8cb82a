package surface

// Surface IR: the program as originally constructed. Any sub-expression may
// be arbitrarily nested.

import (
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
)

// Expr is a surface expression
type Expr interface {
	isExpr()
	Doc() pretty.Doc
	String() string
}

// Stmt is a surface statement
type Stmt interface {
	isStmt()
	Doc() pretty.Doc
	String() string
}

// Call applies Subject to Args
type Call struct {
	Subject Expr
	Args    []Expr
}

// Seq runs Stmts in order and then evaluates Body
type Seq struct {
	Stmts []Stmt
	Body  Expr
}

// Binop applies an operator to two operands
type Binop struct {
	Lhs Expr
	Op  shared.Op
	Rhs Expr
}

// If evaluates Conseq when Test is truthy and Alt otherwise
type If struct {
	Test   Expr
	Conseq Expr
	Alt    Expr
}

// Value is a literal
type Value struct {
	Value shared.Value
}

// Var is a variable reference
type Var struct {
	Name shared.Var
}

// Exp evaluates an expression for its effect
type Exp struct {
	Expr Expr
}

// Let binds the value of Expr to Name
type Let struct {
	Name shared.Var
	Expr Expr
}

func (*Call) isExpr()  {}
func (*Seq) isExpr()   {}
func (*Binop) isExpr() {}
func (*If) isExpr()    {}
func (*Value) isExpr() {}
func (*Var) isExpr()   {}

func (*Exp) isStmt() {}
func (*Let) isStmt() {}

// Program is a surface program
type Program = shared.Program[Expr]

package surface

import (
	"nanopass/internal/shared"
)

// Helpers for building programs by hand.

func Int(n uint8) Expr {
	return &Value{Value: shared.Int(n)}
}

func True() Expr {
	return &Value{Value: shared.True}
}

func False() Expr {
	return &Value{Value: shared.False}
}

func Ref(name string) Expr {
	return &Var{Name: name}
}

func Add(lhs, rhs Expr) Expr { return &Binop{Lhs: lhs, Op: shared.Add, Rhs: rhs} }
func Sub(lhs, rhs Expr) Expr { return &Binop{Lhs: lhs, Op: shared.Sub, Rhs: rhs} }
func Eq(lhs, rhs Expr) Expr  { return &Binop{Lhs: lhs, Op: shared.Eq, Rhs: rhs} }
func Neq(lhs, rhs Expr) Expr { return &Binop{Lhs: lhs, Op: shared.Neq, Rhs: rhs} }

// CallOf builds a call of subject with args
func CallOf(subject Expr, args ...Expr) Expr {
	return &Call{Subject: subject, Args: args}
}

// IfOf builds a conditional
func IfOf(test, conseq, alt Expr) Expr {
	return &If{Test: test, Conseq: conseq, Alt: alt}
}

// LetIn binds name to rhs and evaluates body
func LetIn(name string, rhs, body Expr) Expr {
	return &Seq{Stmts: []Stmt{&Let{Name: name, Expr: rhs}}, Body: body}
}

// Begin runs stmts before body
func Begin(body Expr, stmts ...Stmt) Expr {
	return &Seq{Stmts: stmts, Body: body}
}

// Do evaluates e for effect
func Do(e Expr) Stmt {
	return &Exp{Expr: e}
}

// Bind binds name to e
func Bind(name string, e Expr) Stmt {
	return &Let{Name: name, Expr: e}
}

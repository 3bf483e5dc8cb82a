package ctxir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanopass/internal/errors"
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
)

func ref(name string) shared.Triv { return shared.Ref{Name: name} }
func lit(n uint8) shared.Triv     { return shared.Lit{Value: shared.Int(n)} }

func TestTruthyRendering(t *testing.T) {
	assert.Equal(t, "(if (== x FALSE) #f #t)", Truthy(ref("x")).String())
}

func TestTruthyOperand(t *testing.T) {
	operand, ok := TruthyOperand(Truthy(ref("x")))
	require.True(t, ok)
	assert.Equal(t, ref("x"), operand)

	tests := []struct {
		name string
		pred Pred
	}{
		{"plain comparison", &Relop{Lhs: ref("x"), Op: shared.Eq, Rhs: lit(0)}},
		{"wrong constant", &PredIf{
			Test:   &Relop{Lhs: ref("x"), Op: shared.Eq, Rhs: lit(0)},
			Conseq: &False{},
			Alt:    &True{},
		}},
		{"swapped arms", &PredIf{
			Test:   &Relop{Lhs: ref("x"), Op: shared.Eq, Rhs: shared.FalseLit()},
			Conseq: &True{},
			Alt:    &False{},
		}},
		{"inequality", &PredIf{
			Test:   &Relop{Lhs: ref("x"), Op: shared.Neq, Rhs: shared.FalseLit()},
			Conseq: &False{},
			Alt:    &True{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := TruthyOperand(tt.pred)
			assert.False(t, ok)
		})
	}
}

func TestPrinter(t *testing.T) {
	stmt := &IfStmt{
		Test:   &Relop{Lhs: ref("n"), Op: shared.Neq, Rhs: lit(0)},
		Conseq: []Stmt{&Exp{Expr: &Call{Subject: ref("print"), Args: []shared.Triv{ref("n")}}}},
		Alt:    nil,
	}
	body := &Seq{
		Stmts: []Stmt{stmt, &Let{Name: "y", Expr: &Binop{Lhs: ref("n"), Op: shared.Sub, Rhs: lit(1)}}},
		Body:  &If{Test: Truthy(ref("y")), Conseq: &Atom{Triv: lit(1)}, Alt: &Atom{Triv: lit(2)}},
	}

	expected := "(begin (if (!= n 0) (begin (print n)) (begin)) (set! y (- n 1))" +
		" (if (if (== y FALSE) #f #t) 1 2))"
	assert.Equal(t, expected, pretty.Render(body.Doc(), 1<<12))

	pseq := &PredSeq{Stmts: []Stmt{&Let{Name: "a", Expr: &Atom{Triv: lit(3)}}}, Body: &True{}}
	assert.Equal(t, "(begin (set! a 3) #t)", pseq.String())

	assert.Equal(t, "(if <nil> 1 <nil>)", (&If{Conseq: &Atom{Triv: lit(1)}}).String())
}

func TestBoundVars(t *testing.T) {
	body := &Seq{
		Stmts: []Stmt{
			&Let{Name: "a", Expr: &Atom{Triv: lit(1)}},
			&IfStmt{
				Test:   &PredSeq{Stmts: []Stmt{&Let{Name: "tmp.4", Expr: &Atom{Triv: lit(0)}}}, Body: &True{}},
				Conseq: []Stmt{&Let{Name: "b", Expr: &Atom{Triv: lit(2)}}},
			},
		},
		Body: &Atom{Triv: ref("a")},
	}

	assert.Equal(t, []shared.Var{"a", "tmp.4", "b"}, BoundVars(body))
}

func TestCheckSeparation(t *testing.T) {
	good := &If{
		Test:   &Relop{Lhs: ref("n"), Op: shared.Eq, Rhs: lit(0)},
		Conseq: &Binop{Lhs: ref("n"), Op: shared.Add, Rhs: lit(1)},
		Alt:    &Atom{Triv: lit(0)},
	}
	assert.NoError(t, CheckSeparation(good))

	tests := []struct {
		name string
		expr Expr
	}{
		{"comparison as arithmetic", &Binop{Lhs: ref("a"), Op: shared.Eq, Rhs: ref("b")}},
		{"arithmetic as comparison", &If{
			Test:   &Relop{Lhs: ref("a"), Op: shared.Add, Rhs: ref("b")},
			Conseq: &Atom{Triv: lit(1)},
			Alt:    &Atom{Triv: lit(0)},
		}},
		{"return slot operand", &Call{Subject: ref("f"), Args: []shared.Triv{shared.ReturnSlot{}}}},
		{"nil value", &Seq{Stmts: []Stmt{&Exp{Expr: nil}}, Body: &Atom{Triv: lit(0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSeparation(tt.expr)
			require.Error(t, err)

			ce, ok := err.(*errors.CompilerError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorInvariantViolation, ce.Code)
		})
	}
}

func TestCheckFlat(t *testing.T) {
	flat := &Seq{
		Stmts: []Stmt{&Let{Name: "a", Expr: &Atom{Triv: lit(1)}}},
		Body:  &Atom{Triv: ref("a")},
	}
	assert.NoError(t, CheckFlat(flat))

	tests := []struct {
		name string
		expr Expr
	}{
		{"empty block", &Seq{Body: &Atom{Triv: lit(1)}}},
		{"block tail", &Seq{Stmts: flat.Stmts, Body: flat}},
		{"let of a block", &Seq{Stmts: []Stmt{&Let{Name: "b", Expr: flat}}, Body: &Atom{Triv: ref("b")}}},
		{"block inside a statement branch", &Seq{
			Stmts: []Stmt{&IfStmt{Test: &True{}, Conseq: []Stmt{&Exp{Expr: flat}}}},
			Body:  &Atom{Triv: lit(0)},
		}},
		{"empty predicate block", &If{Test: &PredSeq{Body: &True{}}, Conseq: flat.Body, Alt: flat.Body}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, CheckFlat(tt.expr))
		})
	}
}

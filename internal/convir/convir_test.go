package convir

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

func ret(t shared.Triv) Expr {
	return &Seq{Stmts: []Stmt{&ReturnSet{Triv: t}}, Body: &Return{}}
}

func TestPrinter(t *testing.T) {
	body := &Seq{
		Stmts: []Stmt{
			&Push{Triv: ref("b")},
			&Push{Triv: ref("a")},
			&CallStmt{Subject: ref("g")},
			&Let{Name: "x", Triv: shared.ReturnSlot{}},
			&LetBinop{Name: "y", Lhs: ref("x"), Op: shared.Add, Rhs: lit(1)},
			&IfStmt{Test: &True{}, Conseq: []Stmt{&CallStmt{Subject: ref("h")}}},
		},
		Body: &If{
			Test:   &Relop{Lhs: ref("y"), Op: shared.Neq, Rhs: lit(0)},
			Conseq: &Call{Subject: ref("k")},
			Alt:    ret(ref("y")),
		},
	}

	expected := "(begin (push! b) (push! a) (g) (set! x %ret) (set! y (+ x 1))" +
		" (if #t (begin (h)) (begin))" +
		" (if (!= y 0) (k) (begin (return-set! y) (return))))"
	assert.Equal(t, expected, pretty.Render(body.Doc(), 1<<12))

	assert.Equal(t, "(return)", (&Return{}).String())
	assert.Equal(t, "(f)", (&Call{Subject: ref("f")}).String())
}

func TestPrinterBreaksLongBlocks(t *testing.T) {
	body := &Seq{
		Stmts: []Stmt{&Push{Triv: ref("argument")}, &CallStmt{Subject: ref("function")}},
		Body:  ret(lit(0)),
	}

	expected := "(begin (push! argument)\n" +
		"  (function)\n" +
		"  (return-set! 0)\n" +
		"  (return))"
	assert.Equal(t, expected, pretty.Render(body.Doc(), 30))
}

func TestBoundVars(t *testing.T) {
	body := &Seq{
		Stmts: []Stmt{
			&Let{Name: "a", Triv: lit(1)},
			&IfStmt{
				Test:   &PredSeq{Stmts: []Stmt{&LetBinop{Name: "tmp.2", Lhs: ref("a"), Op: shared.Sub, Rhs: lit(1)}}, Body: &False{}},
				Conseq: []Stmt{&Let{Name: "b", Triv: lit(2)}},
			},
		},
		Body: &Return{},
	}

	assert.Equal(t, []shared.Var{"a", "tmp.2", "b"}, BoundVars(body))
}

func TestCheckTail(t *testing.T) {
	good := &If{
		Test:   &True{},
		Conseq: &Seq{Stmts: []Stmt{&Push{Triv: lit(1)}}, Body: &Call{Subject: ref("f")}},
		Alt:    ret(lit(0)),
	}
	assert.NoError(t, CheckTail(good))

	tests := []struct {
		name string
		expr Expr
	}{
		{"missing terminal", &Seq{Stmts: []Stmt{&Push{Triv: lit(1)}}}},
		{"missing arm", &If{Test: &True{}, Conseq: &Return{}}},
		{"empty block", &Seq{Body: &Return{}}},
		{"nested block", &Seq{Stmts: []Stmt{&Push{Triv: lit(1)}}, Body: ret(lit(1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTail(tt.expr)
			require.Error(t, err)

			ce, ok := err.(*errors.CompilerError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorInvariantViolation, ce.Code)
		})
	}
}

func TestCheckReturnSlot(t *testing.T) {
	good := &Seq{
		Stmts: []Stmt{
			&CallStmt{Subject: ref("g")},
			&Let{Name: "x", Triv: shared.ReturnSlot{}},
		},
		Body: ret(ref("x")),
	}
	assert.NoError(t, CheckReturnSlot(good))

	slot := shared.ReturnSlot{}
	tests := []struct {
		name  string
		stmts []Stmt
	}{
		{"read first", []Stmt{&Let{Name: "x", Triv: slot}}},
		{"read after another statement", []Stmt{
			&CallStmt{Subject: ref("g")},
			&Push{Triv: lit(1)},
			&Let{Name: "x", Triv: slot},
		}},
		{"pushed", []Stmt{&CallStmt{Subject: ref("g")}, &Push{Triv: slot}}},
		{"arithmetic operand", []Stmt{&LetBinop{Name: "x", Lhs: slot, Op: shared.Add, Rhs: lit(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, CheckReturnSlot(&Seq{Stmts: tt.stmts, Body: &Return{}}))
		})
	}

	compared := &If{
		Test:   &Relop{Lhs: slot, Op: shared.Eq, Rhs: lit(0)},
		Conseq: &Return{},
		Alt:    &Return{},
	}
	assert.Error(t, CheckReturnSlot(compared))
}

package ctxir

import (
	"fmt"

	"nanopass/internal/errors"
	"nanopass/internal/shared"
)

// CheckSeparation verifies the role split: value arithmetic holds no
// comparison, a comparison holds no arithmetic and no operand is anything
// but a literal or variable.
func CheckSeparation(e Expr) error {
	var err error

	fail := func(detail string, node fmt.Stringer) {
		if err == nil {
			err = errors.InvariantViolation("context separation", fmt.Sprintf("%s: %v", detail, node))
		}
	}

	operand := func(t shared.Triv, node fmt.Stringer) {
		switch t.(type) {
		case shared.Lit, shared.Ref:
		default:
			fail("non-trivial operand", node)
		}
	}

	w := walker{
		onExpr: func(e Expr) {
			switch e := e.(type) {
			case *Binop:
				if !e.Op.IsArithmetic() {
					fail("comparison in value arithmetic", e)
				}
				operand(e.Lhs, e)
				operand(e.Rhs, e)
			case *Call:
				operand(e.Subject, e)
				for _, arg := range e.Args {
					operand(arg, e)
				}
			case *Atom:
				operand(e.Triv, e)
			case *If, *Seq:
			default:
				fail("unknown value", typeName(fmt.Sprintf("%T", e)))
			}
		},
		onPred: func(p Pred) {
			switch p := p.(type) {
			case *Relop:
				if !p.Op.IsRelational() {
					fail("arithmetic in comparison", p)
				}
				operand(p.Lhs, p)
				operand(p.Rhs, p)
			case *PredIf, *PredSeq, *True, *False:
			default:
				fail("unknown predicate", typeName(fmt.Sprintf("%T", p)))
			}
		},
	}

	w.expr(e)
	return err
}

// CheckFlat verifies block fusion in values, predicates and statements
func CheckFlat(e Expr) error {
	var err error

	fail := func(detail string, node fmt.Stringer) {
		if err == nil {
			err = errors.InvariantViolation("flat block", fmt.Sprintf("%s: %v", detail, node))
		}
	}

	nested := func(ss []Stmt) {
		for _, s := range ss {
			var rhs Expr
			switch s := s.(type) {
			case *Let:
				rhs = s.Expr
			case *Exp:
				rhs = s.Expr
			}
			if _, ok := rhs.(*Seq); ok {
				fail("statement holds a nested block", s)
			}
		}
	}

	w := walker{
		onExpr: func(e Expr) {
			if seq, ok := e.(*Seq); ok {
				if len(seq.Stmts) == 0 {
					fail("empty statement list", seq)
				}
				if _, ok := seq.Body.(*Seq); ok {
					fail("block ends in a nested block", seq)
				}
				nested(seq.Stmts)
			}
		},
		onPred: func(p Pred) {
			if seq, ok := p.(*PredSeq); ok {
				if len(seq.Stmts) == 0 {
					fail("empty statement list", seq)
				}
				if _, ok := seq.Body.(*PredSeq); ok {
					fail("block ends in a nested block", seq)
				}
				nested(seq.Stmts)
			}
		},
		onStmt: func(s Stmt) {
			if ifs, ok := s.(*IfStmt); ok {
				nested(ifs.Conseq)
				nested(ifs.Alt)
			}
		},
	}

	w.expr(e)
	return err
}

type typeName string

func (t typeName) String() string { return string(t) }

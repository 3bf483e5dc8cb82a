package anf

import (
	"fmt"

	"nanopass/internal/errors"
	"nanopass/internal/shared"
)

// CheckTrivial verifies that every operand position holds a literal or a
// variable reference.
func CheckTrivial(e Expr) error {
	var err error

	check := func(t shared.Triv, where string, node fmt.Stringer) {
		if err != nil {
			return
		}
		switch t.(type) {
		case shared.Lit, shared.Ref:
		default:
			err = errors.InvariantViolation("trivial operand", fmt.Sprintf("%s of %v is %v", where, node, t))
		}
	}

	var expr func(Expr)
	expr = func(e Expr) {
		switch e := e.(type) {
		case *Call:
			check(e.Subject, "subject", e)
			for _, arg := range e.Args {
				check(arg, "argument", e)
			}
		case *Binop:
			check(e.Lhs, "left operand", e)
			check(e.Rhs, "right operand", e)
		case *If:
			check(e.Test, "test", e)
			expr(e.Conseq)
			expr(e.Alt)
		case *Atom:
			check(e.Triv, "atom", e)
		case *Seq:
			for _, s := range e.Stmts {
				switch s := s.(type) {
				case *Let:
					expr(s.Expr)
				case *Exp:
					expr(s.Expr)
				}
			}
			expr(e.Body)
		}
	}

	expr(e)
	return err
}

// CheckFlat verifies block fusion: no block is empty, no block ends in
// another block, and no statement holds a block.
func CheckFlat(e Expr) error {
	var err error

	fail := func(detail string, node fmt.Stringer) {
		if err == nil {
			err = errors.InvariantViolation("flat block", fmt.Sprintf("%s: %v", detail, node))
		}
	}

	var expr func(Expr)
	expr = func(e Expr) {
		switch e := e.(type) {
		case *If:
			expr(e.Conseq)
			expr(e.Alt)
		case *Seq:
			if len(e.Stmts) == 0 {
				fail("empty statement list", e)
			}
			if _, ok := e.Body.(*Seq); ok {
				fail("block ends in a nested block", e)
			}
			for _, s := range e.Stmts {
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
				expr(rhs)
			}
			expr(e.Body)
		}
	}

	expr(e)
	return err
}

package convir

import (
	"fmt"

	"nanopass/internal/errors"
	"nanopass/internal/shared"
)

// CheckTail verifies that every path through a function body ends in a tail
// call or a return, and that blocks are flat.
func CheckTail(e Expr) error {
	var err error

	fail := func(detail string, node any) {
		if err == nil {
			err = errors.InvariantViolation("tail position", fmt.Sprintf("%s: %v", detail, node))
		}
	}

	var tail func(Expr)
	tail = func(e Expr) {
		switch e := e.(type) {
		case *Call, *Return:
		case *If:
			tail(e.Conseq)
			tail(e.Alt)
		case *Seq:
			if len(e.Stmts) == 0 {
				fail("empty statement list", e)
			}
			if _, ok := e.Body.(*Seq); ok {
				fail("block ends in a nested block", e)
			}
			tail(e.Body)
		case nil:
			fail("missing terminal", "<nil>")
		default:
			fail("unknown tail", fmt.Sprintf("%T", e))
		}
	}

	tail(e)
	return err
}

// CheckReturnSlot verifies that %ret is only read by the statement directly
// after a non-tail call, so no result is left pending across another call.
func CheckReturnSlot(e Expr) error {
	var err error

	fail := func(detail string, node any) {
		if err == nil {
			err = errors.InvariantViolation("return slot", fmt.Sprintf("%s: %v", detail, node))
		}
	}

	isSlot := func(t shared.Triv) bool {
		_, ok := t.(shared.ReturnSlot)
		return ok
	}

	w := walker{
		onStmts: func(ss []Stmt) {
			for i, s := range ss {
				switch s := s.(type) {
				case *Let:
					if !isSlot(s.Triv) {
						continue
					}
					if i == 0 {
						fail("read with no call before it", s)
						continue
					}
					if _, ok := ss[i-1].(*CallStmt); !ok {
						fail("read not directly after a call", s)
					}
				case *LetBinop:
					if isSlot(s.Lhs) || isSlot(s.Rhs) {
						fail("operand", s)
					}
				case *Push:
					if isSlot(s.Triv) {
						fail("pushed", s)
					}
				case *ReturnSet:
					if isSlot(s.Triv) {
						fail("stored into itself", s)
					}
				case *CallStmt:
					if isSlot(s.Subject) {
						fail("called", s)
					}
				}
			}
		},
		onExpr: func(e Expr) {
			if call, ok := e.(*Call); ok && isSlot(call.Subject) {
				fail("called", call)
			}
		},
		onPred: func(p Pred) {
			if rel, ok := p.(*Relop); ok && (isSlot(rel.Lhs) || isSlot(rel.Rhs)) {
				fail("compared", rel)
			}
		},
	}

	w.expr(e)
	return err
}

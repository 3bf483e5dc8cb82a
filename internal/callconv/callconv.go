package callconv

// Pass 3: Calling-Convention Introduction
// Rewrites Context IR into Convention IR. Calls push their arguments last to
// first and then transfer control. A call in tail position is a plain jump;
// any other call leaves its result in %ret, which the next statement reads.
// Values reaching the end of the body are stored with (return-set! t) before
// (return).

import (
	"nanopass/internal/convir"
	"nanopass/internal/ctxir"
	"nanopass/internal/errors"
	"nanopass/internal/shared"

	"github.com/tliron/commonlog"
)

// Name identifies the pass in diagnostics
const Name = "callconv"

var log = commonlog.GetLogger("nanopass.callconv")

// Run translates every function of program independently
func Run(program ctxir.Program) (convir.Program, error) {
	out := shared.NewProgram[convir.Expr]()

	for _, name := range program.Names() {
		body, err := Function(name, program.Funcs[name])
		if err != nil {
			return convir.Program{}, err
		}
		out.Funcs[name] = body
	}

	return out, nil
}

// Function lowers one function body, starting in tail position
func Function(name string, body ctxir.Expr) (_ convir.Expr, err error) {
	defer errors.Recover(&err, Name, name)

	l := &lowerer{fresh: shared.FreshAfter(ctxir.BoundVars(body))}
	out := l.tail(body)

	log.Debugf("%s: %d tail calls, %d calls", name, l.tailCalls, l.calls)

	return out, nil
}

type lowerer struct {
	fresh *shared.Fresh

	calls     int
	tailCalls int
}

func (l *lowerer) tail(e ctxir.Expr) convir.Expr {
	switch e := e.(type) {
	case *ctxir.Call:
		l.tailCalls++
		return makeBlock(pushes(e.Args), &convir.Call{Subject: e.Subject})
	case *ctxir.If:
		return &convir.If{Test: l.pred(e.Test), Conseq: l.tail(e.Conseq), Alt: l.tail(e.Alt)}
	case *ctxir.Atom:
		return returning(nil, e.Triv)
	case *ctxir.Binop:
		tmp := l.fresh.Next()
		return returning([]convir.Stmt{l.letBinop(tmp, e)}, shared.Ref{Name: tmp})
	case *ctxir.Seq:
		block := l.stmts(e.Stmts)
		return makeBlock(block, l.tail(e.Body))
	default:
		errors.Raise(errors.UnsupportedShape("tail", e))
		return nil
	}
}

func (l *lowerer) pred(p ctxir.Pred) convir.Pred {
	switch p := p.(type) {
	case *ctxir.Relop:
		if !p.Op.IsRelational() {
			errors.Raise(errors.ArithmeticInRelop(p.String()))
		}
		return &convir.Relop{Lhs: p.Lhs, Op: p.Op, Rhs: p.Rhs}
	case *ctxir.PredIf:
		return &convir.PredIf{Test: l.pred(p.Test), Conseq: l.pred(p.Conseq), Alt: l.pred(p.Alt)}
	case *ctxir.PredSeq:
		block := l.stmts(p.Stmts)
		return makePredBlock(block, l.pred(p.Body))
	case *ctxir.True:
		return &convir.True{}
	case *ctxir.False:
		return &convir.False{}
	default:
		errors.Raise(errors.UnsupportedShape("predicate", p))
		return nil
	}
}

func (l *lowerer) stmts(ss []ctxir.Stmt) []convir.Stmt {
	var block []convir.Stmt
	for _, s := range ss {
		block = append(block, l.stmt(s)...)
	}
	return block
}

func (l *lowerer) stmt(s ctxir.Stmt) []convir.Stmt {
	switch s := s.(type) {
	case *ctxir.Let:
		return l.bind(s.Name, s.Expr)
	case *ctxir.Exp:
		return l.effect(s.Expr)
	case *ctxir.IfStmt:
		return []convir.Stmt{&convir.IfStmt{
			Test:   l.pred(s.Test),
			Conseq: l.stmts(s.Conseq),
			Alt:    l.stmts(s.Alt),
		}}
	default:
		errors.Raise(errors.UnsupportedShape("statement", s))
		return nil
	}
}

// bind lowers e so that its value ends up in x
func (l *lowerer) bind(x shared.Var, e ctxir.Expr) []convir.Stmt {
	switch e := e.(type) {
	case *ctxir.Call:
		block := l.call(e)
		return append(block, &convir.Let{Name: x, Triv: shared.ReturnSlot{}})
	case *ctxir.Binop:
		return []convir.Stmt{l.letBinop(x, e)}
	case *ctxir.Atom:
		return []convir.Stmt{&convir.Let{Name: x, Triv: e.Triv}}
	case *ctxir.Seq:
		block := l.stmts(e.Stmts)
		return append(block, l.bind(x, e.Body)...)
	case *ctxir.If:
		// each arm ends by binding the same destination
		return []convir.Stmt{&convir.IfStmt{
			Test:   l.pred(e.Test),
			Conseq: l.bind(x, e.Conseq),
			Alt:    l.bind(x, e.Alt),
		}}
	default:
		errors.Raise(errors.UnsupportedShape("value", e))
		return nil
	}
}

// effect lowers e when its value is discarded
func (l *lowerer) effect(e ctxir.Expr) []convir.Stmt {
	switch e := e.(type) {
	case *ctxir.Call:
		return l.call(e)
	case *ctxir.Atom:
		return nil
	case *ctxir.Binop:
		l.arith(e)
		return nil
	case *ctxir.If:
		return []convir.Stmt{&convir.IfStmt{
			Test:   l.pred(e.Test),
			Conseq: l.effect(e.Conseq),
			Alt:    l.effect(e.Alt),
		}}
	case *ctxir.Seq:
		block := l.stmts(e.Stmts)
		return append(block, l.effect(e.Body)...)
	default:
		errors.Raise(errors.UnsupportedShape("effect", e))
		return nil
	}
}

// call emits a non-tail call; its result is left in %ret
func (l *lowerer) call(e *ctxir.Call) []convir.Stmt {
	l.calls++
	return append(pushes(e.Args), &convir.CallStmt{Subject: e.Subject})
}

func (l *lowerer) letBinop(x shared.Var, e *ctxir.Binop) convir.Stmt {
	return &convir.LetBinop{Name: x, Lhs: e.Lhs, Op: l.arith(e), Rhs: e.Rhs}
}

func (l *lowerer) arith(e *ctxir.Binop) shared.Op {
	if !e.Op.Valid() {
		errors.Raise(errors.InvalidOperator(e.Op))
	}
	if !e.Op.IsArithmetic() {
		errors.Raise(errors.RelationalInValue(e.String()))
	}
	return e.Op
}

// pushes emits args last to first, so the callee pops them in order
func pushes(args []shared.Triv) []convir.Stmt {
	block := make([]convir.Stmt, 0, len(args)+2)
	for i := len(args) - 1; i >= 0; i-- {
		block = append(block, &convir.Push{Triv: args[i]})
	}
	return block
}

func returning(block []convir.Stmt, t shared.Triv) convir.Expr {
	block = append(block, &convir.ReturnSet{Triv: t})
	return &convir.Seq{Stmts: block, Body: &convir.Return{}}
}

func makeBlock(block []convir.Stmt, e convir.Expr) convir.Expr {
	if len(block) == 0 {
		return e
	}

	if seq, ok := e.(*convir.Seq); ok {
		stmts := make([]convir.Stmt, 0, len(block)+len(seq.Stmts))
		stmts = append(stmts, block...)
		stmts = append(stmts, seq.Stmts...)
		return &convir.Seq{Stmts: stmts, Body: seq.Body}
	}

	return &convir.Seq{Stmts: block, Body: e}
}

func makePredBlock(block []convir.Stmt, p convir.Pred) convir.Pred {
	if len(block) == 0 {
		return p
	}

	if seq, ok := p.(*convir.PredSeq); ok {
		stmts := make([]convir.Stmt, 0, len(block)+len(seq.Stmts))
		stmts = append(stmts, block...)
		stmts = append(stmts, seq.Stmts...)
		return &convir.PredSeq{Stmts: stmts, Body: seq.Body}
	}

	return &convir.PredSeq{Stmts: block, Body: p}
}

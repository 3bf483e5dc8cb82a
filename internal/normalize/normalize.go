package normalize

// Pass 2: Context Normalization
// Rewrites ANF IR into Context IR. Every expression is translated for the
// role its use requires: value, predicate or effect.
//
// Truth is "not equal to the False constant". A comparison needed as a value
// is materialized as (if (== a b) TRUE FALSE); any other value used as a test
// goes through (if (== v FALSE) #f #t).

import (
	"nanopass/internal/anf"
	"nanopass/internal/ctxir"
	"nanopass/internal/errors"
	"nanopass/internal/shared"

	"github.com/tliron/commonlog"
)

// Name identifies the pass in diagnostics
const Name = "normalize"

var log = commonlog.GetLogger("nanopass.normalize")

// Run translates every function of program independently
func Run(program anf.Program) (ctxir.Program, error) {
	out := shared.NewProgram[ctxir.Expr]()

	for _, name := range program.Names() {
		body, err := Function(name, program.Funcs[name])
		if err != nil {
			return ctxir.Program{}, err
		}
		out.Funcs[name] = body
	}

	return out, nil
}

// Function translates one function body. Tests are already trivial, so no
// temporaries are minted here.
func Function(name string, body anf.Expr) (_ ctxir.Expr, err error) {
	defer errors.Recover(&err, Name, name)

	n := &normalizer{fused: make(map[shared.Var]*ctxir.Relop)}
	out := n.value(body)

	log.Debugf("%s: %d comparisons fused into tests", name, n.fusions)

	return out, nil
}

// normalizer holds the state of one function translation
type normalizer struct {
	// Comparisons whose temporary binding was dropped, keyed by the
	// temporary. The adjacent conditional picks them up as its test.
	fused   map[shared.Var]*ctxir.Relop
	fusions int
}

func (n *normalizer) value(e anf.Expr) ctxir.Expr {
	switch e := e.(type) {
	case *anf.Call:
		return n.call(e)
	case *anf.Binop:
		if e.Op.IsRelational() {
			return &ctxir.If{
				Test:   n.relop(e),
				Conseq: &ctxir.Atom{Triv: shared.Lit{Value: shared.True}},
				Alt:    &ctxir.Atom{Triv: shared.Lit{Value: shared.False}},
			}
		}
		return &ctxir.Binop{Lhs: e.Lhs, Op: n.arith(e), Rhs: e.Rhs}
	case *anf.If:
		test := n.test(e.Test)
		return &ctxir.If{Test: test, Conseq: n.value(e.Conseq), Alt: n.value(e.Alt)}
	case *anf.Atom:
		return &ctxir.Atom{Triv: e.Triv}
	case *anf.Seq:
		block := n.stmts(e.Stmts, e.Body)
		return makeBlock(block, n.value(e.Body))
	default:
		errors.Raise(errors.UnsupportedShape("value", e))
		return nil
	}
}

// effect appends what must still run when e is evaluated only for its side
// effects. Literals and variable reads leave nothing behind.
func (n *normalizer) effect(block *[]ctxir.Stmt, e anf.Expr) {
	switch e := e.(type) {
	case *anf.Call:
		*block = append(*block, &ctxir.Exp{Expr: n.call(e)})
	case *anf.Binop:
		if !e.Op.Valid() {
			errors.Raise(errors.InvalidOperator(e.Op))
		}
		// Operands are trivial; the lhs residue would precede the rhs one.
	case *anf.Atom:
	case *anf.If:
		test := n.test(e.Test)
		var conseq, alt []ctxir.Stmt
		n.effect(&conseq, e.Conseq)
		n.effect(&alt, e.Alt)
		*block = append(*block, &ctxir.IfStmt{Test: test, Conseq: conseq, Alt: alt})
	case *anf.Seq:
		*block = append(*block, n.stmts(e.Stmts, e.Body)...)
		n.effect(block, e.Body)
	default:
		errors.Raise(errors.UnsupportedShape("effect", e))
	}
}

// stmts translates a statement list whose block ends in tail
func (n *normalizer) stmts(ss []anf.Stmt, tail anf.Expr) []ctxir.Stmt {
	var block []ctxir.Stmt

	for i, s := range ss {
		var next any = tail
		if i+1 < len(ss) {
			next = ss[i+1]
		}

		if n.fuse(s, next) {
			continue
		}

		n.stmt(&block, s)
	}

	return block
}

func (n *normalizer) stmt(block *[]ctxir.Stmt, s anf.Stmt) {
	switch s := s.(type) {
	case *anf.Exp:
		n.effect(block, s.Expr)
	case *anf.Let:
		rhs := n.value(s.Expr)
		if seq, ok := rhs.(*ctxir.Seq); ok {
			*block = append(*block, seq.Stmts...)
			rhs = seq.Body
		}
		*block = append(*block, &ctxir.Let{Name: s.Name, Expr: rhs})
	default:
		errors.Raise(errors.UnsupportedShape("statement", s))
	}
}

// fuse drops a temporary bound to a comparison when the very next thing
// evaluated is a conditional testing that temporary. The comparison becomes
// the conditional's test.
func (n *normalizer) fuse(s anf.Stmt, next any) bool {
	let, ok := s.(*anf.Let)
	if !ok || !shared.IsTemp(let.Name) {
		return false
	}

	bin, ok := let.Expr.(*anf.Binop)
	if !ok || !bin.Op.IsRelational() {
		return false
	}

	var cond *anf.If
	switch next := next.(type) {
	case *anf.If:
		cond = next
	case *anf.Exp:
		cond, _ = next.Expr.(*anf.If)
	case *anf.Let:
		cond, _ = next.Expr.(*anf.If)
	}

	if cond == nil {
		return false
	}

	if ref, ok := cond.Test.(shared.Ref); !ok || ref.Name != let.Name {
		return false
	}

	n.fused[let.Name] = n.relop(bin)
	n.fusions++
	return true
}

// test turns a conditional's trivial test into a predicate
func (n *normalizer) test(t shared.Triv) ctxir.Pred {
	if ref, ok := t.(shared.Ref); ok {
		if rel, ok := n.fused[ref.Name]; ok {
			delete(n.fused, ref.Name)
			return rel
		}
	}

	switch t.(type) {
	case shared.Lit, shared.Ref:
		return ctxir.Truthy(t)
	default:
		errors.Raise(errors.UnsupportedShape("test", t))
		return nil
	}
}

func (n *normalizer) call(e *anf.Call) *ctxir.Call {
	args := make([]shared.Triv, len(e.Args))
	copy(args, e.Args)
	return &ctxir.Call{Subject: e.Subject, Args: args}
}

func (n *normalizer) relop(e *anf.Binop) *ctxir.Relop {
	if !e.Op.IsRelational() {
		errors.Raise(errors.ArithmeticInRelop(e.String()))
	}
	return &ctxir.Relop{Lhs: e.Lhs, Op: e.Op, Rhs: e.Rhs}
}

func (n *normalizer) arith(e *anf.Binop) shared.Op {
	if !e.Op.Valid() {
		errors.Raise(errors.InvalidOperator(e.Op))
	}
	if !e.Op.IsArithmetic() {
		errors.Raise(errors.RelationalInValue(e.String()))
	}
	return e.Op
}

func makeBlock(block []ctxir.Stmt, e ctxir.Expr) ctxir.Expr {
	if len(block) == 0 {
		return e
	}

	if seq, ok := e.(*ctxir.Seq); ok {
		stmts := make([]ctxir.Stmt, 0, len(block)+len(seq.Stmts))
		stmts = append(stmts, block...)
		stmts = append(stmts, seq.Stmts...)
		return &ctxir.Seq{Stmts: stmts, Body: seq.Body}
	}

	return &ctxir.Seq{Stmts: block, Body: e}
}

package simplify

// Pass 1: Value Simplification
// Rewrites Surface IR into ANF IR. Every compound operand is evaluated once,
// bound to a fresh temporary and sequenced before its use.

import (
	"nanopass/internal/anf"
	"nanopass/internal/errors"
	"nanopass/internal/shared"
	"nanopass/internal/surface"

	"github.com/tliron/commonlog"
)

// Name identifies the pass in diagnostics
const Name = "simplify"

var log = commonlog.GetLogger("nanopass.simplify")

// Run translates every function of program independently
func Run(program surface.Program) (anf.Program, error) {
	out := shared.NewProgram[anf.Expr]()

	for _, name := range program.Names() {
		body, err := Function(name, program.Funcs[name])
		if err != nil {
			return anf.Program{}, err
		}
		out.Funcs[name] = body
	}

	return out, nil
}

// Function translates one function body with its own temporary counter
func Function(name string, body surface.Expr) (_ anf.Expr, err error) {
	defer errors.Recover(&err, Name, name)

	// Source names of the form tmp.<n> are reserved before minting
	s := &simplifier{fresh: shared.FreshAfter(surface.Vars(body))}
	s.base = s.fresh.Count()
	out := s.expr(body)

	log.Debugf("%s: %d temporaries", name, s.fresh.Count()-s.base)

	return out, nil
}

// simplifier holds the state of one function translation
type simplifier struct {
	fresh *shared.Fresh

	// base is the counter value before the first temporary of this run
	base int
}

func (s *simplifier) expr(e surface.Expr) anf.Expr {
	switch e := e.(type) {
	case *surface.Call:
		var block []anf.Stmt
		operands := s.operands(&block, append([]surface.Expr{e.Subject}, e.Args...))
		return makeBlock(block, &anf.Call{Subject: operands[0], Args: operands[1:]})
	case *surface.Seq:
		var block []anf.Stmt
		for _, stmt := range e.Stmts {
			s.stmt(&block, stmt)
		}
		return makeBlock(block, s.expr(e.Body))
	case *surface.Binop:
		if !e.Op.Valid() {
			errors.Raise(errors.InvalidOperator(e.Op))
		}
		var block []anf.Stmt
		operands := s.operands(&block, []surface.Expr{e.Lhs, e.Rhs})
		tmp := s.fresh.Next()
		block = append(block, &anf.Let{Name: tmp, Expr: &anf.Binop{Lhs: operands[0], Op: e.Op, Rhs: operands[1]}})
		return makeBlock(block, &anf.Atom{Triv: shared.Ref{Name: tmp}})
	case *surface.If:
		var block []anf.Stmt
		test := s.atomize(&block, e.Test)
		return makeBlock(block, &anf.If{
			Test:   test,
			Conseq: s.expr(e.Conseq),
			Alt:    s.expr(e.Alt),
		})
	case *surface.Value:
		return &anf.Atom{Triv: shared.Lit{Value: e.Value}}
	case *surface.Var:
		return &anf.Atom{Triv: shared.Ref{Name: e.Name}}
	default:
		errors.Raise(errors.UnsupportedShape("expression", e))
		return nil
	}
}

// stmt appends the translation of st to block, splicing any block its
// right-hand side produced.
func (s *simplifier) stmt(block *[]anf.Stmt, st surface.Stmt) {
	switch st := st.(type) {
	case *surface.Exp:
		*block = append(*block, &anf.Exp{Expr: s.splice(block, s.expr(st.Expr))})
	case *surface.Let:
		*block = append(*block, &anf.Let{Name: st.Name, Expr: s.splice(block, s.expr(st.Expr))})
	default:
		errors.Raise(errors.UnsupportedShape("statement", st))
	}
}

// atomize reduces e to a trivial term. Statements needed to compute it are
// appended to block.
func (s *simplifier) atomize(block *[]anf.Stmt, e surface.Expr) shared.Triv {
	switch e := e.(type) {
	case *surface.Value:
		return shared.Lit{Value: e.Value}
	case *surface.Var:
		return shared.Ref{Name: e.Name}
	}

	rest := s.splice(block, s.expr(e))
	if atom, ok := rest.(*anf.Atom); ok && s.stable(atom.Triv) {
		return atom.Triv
	}

	return s.bind(block, rest)
}

// operands atomizes es left to right. A variable read is snapshotted in a
// temporary when a later operand rebinds it, so each operand sees the value
// it had when evaluated.
func (s *simplifier) operands(block *[]anf.Stmt, es []surface.Expr) []shared.Triv {
	out := make([]shared.Triv, 0, len(es))

	for i, e := range es {
		t := s.atomize(block, e)
		if ref, ok := t.(shared.Ref); ok && !s.minted(ref.Name) && surface.Assigns(ref.Name, es[i+1:]...) {
			t = s.bind(block, &anf.Atom{Triv: t})
		}
		out = append(out, t)
	}

	return out
}

// stable reports whether t keeps its value for the rest of the function:
// literals, and temporaries minted by this run, which are bound only once.
func (s *simplifier) stable(t shared.Triv) bool {
	switch t := t.(type) {
	case shared.Lit:
		return true
	case shared.Ref:
		return s.minted(t.Name)
	default:
		return false
	}
}

func (s *simplifier) minted(name shared.Var) bool {
	n, ok := shared.TempIndex(name)
	return ok && n > s.base
}

// bind appends Let(tmp, e) to block and returns a reference to tmp
func (s *simplifier) bind(block *[]anf.Stmt, e anf.Expr) shared.Triv {
	tmp := s.fresh.Next()
	*block = append(*block, &anf.Let{Name: tmp, Expr: e})
	return shared.Ref{Name: tmp}
}

// splice moves the statements of a block into the enclosing one and returns
// the block's trailing expression.
func (s *simplifier) splice(block *[]anf.Stmt, e anf.Expr) anf.Expr {
	if seq, ok := e.(*anf.Seq); ok {
		*block = append(*block, seq.Stmts...)
		return seq.Body
	}
	return e
}

func makeBlock(block []anf.Stmt, e anf.Expr) anf.Expr {
	if len(block) == 0 {
		return e
	}

	if seq, ok := e.(*anf.Seq); ok {
		stmts := make([]anf.Stmt, 0, len(block)+len(seq.Stmts))
		stmts = append(stmts, block...)
		stmts = append(stmts, seq.Stmts...)
		return &anf.Seq{Stmts: stmts, Body: seq.Body}
	}

	return &anf.Seq{Stmts: block, Body: e}
}

package pipeline

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanopass/internal/anf"
	"nanopass/internal/callconv"
	"nanopass/internal/convir"
	"nanopass/internal/ctxir"
	"nanopass/internal/errors"
	"nanopass/internal/examples"
	"nanopass/internal/pretty"
	"nanopass/internal/shared"
	"nanopass/internal/surface"
)

func TestStages(t *testing.T) {
	var names []string
	for _, stage := range Stages() {
		names = append(names, stage.Name())
		assert.NotEmpty(t, stage.Description())
	}

	assert.Equal(t, []string{"simplify", "normalize", "callconv"}, names)
	assert.Equal(t, []string{"surface", "simplify", "normalize", "callconv"}, StageNames())
}

func TestExamplesSatisfyInvariants(t *testing.T) {
	for _, ex := range examples.All() {
		t.Run(ex.Name, func(t *testing.T) {
			result, err := Compile(ex.Build(), Options{Check: true})
			require.NoError(t, err)

			for _, name := range result.Surface.Names() {
				require.NoError(t, anf.CheckTrivial(result.ANF.Funcs[name]), name)
				require.NoError(t, anf.CheckFlat(result.ANF.Funcs[name]), name)
				require.NoError(t, ctxir.CheckSeparation(result.Context.Funcs[name]), name)
				require.NoError(t, ctxir.CheckFlat(result.Context.Funcs[name]), name)
				require.NoError(t, convir.CheckTail(result.Convention.Funcs[name]), name)
				require.NoError(t, convir.CheckReturnSlot(result.Convention.Funcs[name]), name)
			}
		})
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	program := shared.NewProgram[surface.Expr]()
	for _, ex := range examples.All() {
		built := ex.Build()
		for _, name := range built.Names() {
			program.Funcs[ex.Name+"/"+name] = built.Funcs[name]
		}
	}

	sequential, err := Compile(program, Options{Check: true})
	require.NoError(t, err)

	parallel, err := Compile(program, Options{Check: true, Parallel: true})
	require.NoError(t, err)

	for _, stage := range StageNames() {
		want, err := Dump(sequential, stage, 80)
		require.NoError(t, err)

		got, err := Dump(parallel, stage, 80)
		require.NoError(t, err)

		assert.Equal(t, want, got, stage)
	}
}

func TestTemporariesNeverCollide(t *testing.T) {
	for _, ex := range examples.All() {
		result, err := Compile(ex.Build(), Options{})
		require.NoError(t, err)

		for name, body := range result.Convention.Funcs {
			seen := map[shared.Var]int{}
			for _, v := range convir.BoundVars(body) {
				if shared.IsTemp(v) {
					seen[v]++
				}
			}

			for v, n := range seen {
				// a value conditional binds its destination once per arm
				assert.LessOrEqual(t, n, 2, "%s/%s: %s", ex.Name, name, v)
			}
		}
	}
}

func TestFibConvention(t *testing.T) {
	ex, ok := examples.Lookup("fib")
	require.True(t, ok)

	lowered, err := Lower(ex.Build())
	require.NoError(t, err)

	expected := "(if (== n 0) (begin (return-set! 1) (return))" +
		" (if (== n 1) (begin (return-set! 1) (return))" +
		" (begin (set! tmp.3 (- n 1)) (push! tmp.3) (fib) (set! tmp.4 %ret)" +
		" (set! tmp.5 (- n 2)) (push! tmp.5) (fib) (set! tmp.6 %ret)" +
		" (set! tmp.7 (+ tmp.4 tmp.6)) (return-set! tmp.7) (return))))"
	assert.Equal(t, expected, pretty.Render(lowered.Funcs["fib"].Doc(), 1<<12))
}

func TestConditionalValue(t *testing.T) {
	ex, ok := examples.Lookup("conditional-value")
	require.True(t, ok)

	lowered, err := Lower(ex.Build())
	require.NoError(t, err)

	seq, ok := lowered.Funcs["pick"].(*convir.Seq)
	require.True(t, ok)

	ifs, ok := seq.Stmts[0].(*convir.IfStmt)
	require.True(t, ok)

	last := func(ss []convir.Stmt) convir.Stmt { return ss[len(ss)-1] }

	conseq, ok := last(ifs.Conseq).(*convir.Let)
	require.True(t, ok)
	alt, ok := last(ifs.Alt).(*convir.Let)
	require.True(t, ok)

	assert.Equal(t, "r", conseq.Name)
	assert.Equal(t, "r", alt.Name)
	assert.Equal(t, shared.ReturnSlot{}, conseq.Triv)
}

func TestDump(t *testing.T) {
	ex, ok := examples.Lookup("comparison-value")
	require.True(t, ok)

	result, err := Compile(ex.Build(), Options{})
	require.NoError(t, err)

	out, err := Dump(result, SurfaceStage, 100)
	require.NoError(t, err)
	assert.Equal(t, "(define differs (begin (set! d (!= a b)) (report d)))\n\n(define is-zero (== n 0))\n", out)

	_, err = Dump(result, "codegen", 100)
	assert.Error(t, err)
}

func TestFailingFunctionFailsProgram(t *testing.T) {
	program := shared.NewProgram[surface.Expr]()
	program.Funcs["good"] = surface.Int(1)
	program.Funcs["bad"] = &surface.Binop{Lhs: surface.Int(1), Op: shared.Op(5), Rhs: surface.Int(2)}

	for _, parallel := range []bool{false, true} {
		result, err := Compile(program, Options{Parallel: parallel})
		require.Error(t, err)
		assert.Nil(t, result)

		var ce *errors.CompilerError
		require.True(t, stderrors.As(err, &ce))
		assert.Equal(t, "bad", ce.Function)
		assert.Equal(t, errors.ErrorInvalidOperator, ce.Code)
	}
}

type breakingStage struct{ CallconvStage }

func (breakingStage) Apply(u *Unit) error {
	u.Convention = &convir.Seq{Body: &convir.Return{}}
	return nil
}

func TestCheckFailureNamesStage(t *testing.T) {
	p := New(Options{Check: true})
	p.stages[len(p.stages)-1] = breakingStage{}

	program := shared.NewProgram[surface.Expr]()
	program.Funcs["f"] = surface.Int(1)

	_, err := p.Compile(program)
	require.Error(t, err)

	var ce *errors.CompilerError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, errors.ErrorInvariantViolation, ce.Code)
	assert.Equal(t, callconv.Name, ce.Pass)
	assert.Equal(t, "f", ce.Function)

	// without checks the broken output goes through
	p.options.Check = false
	_, err = p.Compile(program)
	assert.NoError(t, err)
}

func TestArgumentsEvaluateInOrderAndPushInReverse(t *testing.T) {
	program := shared.NewProgram[surface.Expr]()
	program.Funcs["f"] = surface.CallOf(surface.Ref("f"),
		surface.CallOf(surface.Ref("a")),
		surface.CallOf(surface.Ref("b")),
		surface.CallOf(surface.Ref("c")))

	result, err := Compile(program, Options{Check: true})
	require.NoError(t, err)

	expected := "(begin (a) (set! tmp.1 %ret) (b) (set! tmp.2 %ret) (c) (set! tmp.3 %ret)" +
		" (push! tmp.3) (push! tmp.2) (push! tmp.1) (f))"
	assert.Equal(t, expected, pretty.Render(result.Convention.Funcs["f"].Doc(), 1<<12))

	seq, ok := result.Convention.Funcs["f"].(*convir.Seq)
	require.True(t, ok)

	var calls, pushes []shared.Triv
	results := map[shared.Var]shared.Triv{}
	for i, s := range seq.Stmts {
		switch s := s.(type) {
		case *convir.CallStmt:
			calls = append(calls, s.Subject)
			let, ok := seq.Stmts[i+1].(*convir.Let)
			require.True(t, ok)
			results[let.Name] = s.Subject
		case *convir.Push:
			ref, ok := s.Triv.(shared.Ref)
			require.True(t, ok)
			pushes = append(pushes, results[ref.Name])
		}
	}

	a, b, c := shared.Ref{Name: "a"}, shared.Ref{Name: "b"}, shared.Ref{Name: "c"}
	assert.Equal(t, []shared.Triv{a, b, c}, calls)
	assert.Equal(t, []shared.Triv{c, b, a}, pushes)
}

func TestSourceTemporaryNamesSurvive(t *testing.T) {
	program := shared.NewProgram[surface.Expr]()
	program.Funcs["f"] = surface.Add(surface.Ref("tmp.1"), surface.Add(surface.Ref("x"), surface.Int(1)))

	result, err := Compile(program, Options{Check: true})
	require.NoError(t, err)

	for _, v := range convir.BoundVars(result.Convention.Funcs["f"]) {
		assert.NotEqual(t, "tmp.1", v)
	}

	expected := "(begin (set! tmp.2 (+ x 1)) (set! tmp.3 (+ tmp.1 tmp.2)) (return-set! tmp.3) (return))"
	assert.Equal(t, expected, pretty.Render(result.Convention.Funcs["f"].Doc(), 1<<12))
}

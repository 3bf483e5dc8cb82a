package examples

// Hand-built Surface IR programs used to exercise the pipeline. There is no
// textual front end, so these are the only inputs the CLI knows.

import (
	"sort"

	"nanopass/internal/shared"
	. "nanopass/internal/surface"
)

// Example is a named program. Build returns a fresh tree on every call.
type Example struct {
	Name        string
	Description string
	Build       func() Program
}

var registry = []Example{
	{
		Name:        "fib",
		Description: "naive fibonacci: nested conditionals on comparisons, two recursive calls",
		Build: func() Program {
			return single("fib", fib(nil))
		},
	},
	{
		Name:        "fib-let",
		Description: "fibonacci with an intermediate binding and a third recursive call",
		Build: func() Program {
			return single("fib", fib(func(n func() Expr) Expr {
				sum := Add(CallOf(Ref("fib"), Sub(n(), Int(1))), CallOf(Ref("fib"), Sub(n(), Int(2))))
				return LetIn("rec", sum, Add(Ref("rec"), CallOf(Ref("fib"), Sub(n(), Int(2)))))
			}))
		},
	},
	{
		Name:        "curried-call",
		Description: "a call whose subject is itself a call, applied to an arithmetic chain",
		Build: func() Program {
			return single("fn", curried())
		},
	},
	{
		Name:        "call-as-test",
		Description: "the same curried call as test, consequent and alternative of one conditional",
		Build: func() Program {
			return single("fn", IfOf(curried(), curried(), curried()))
		},
	},
	{
		Name:        "chained-arithmetic",
		Description: "t()() + 10 + 20 + 30 evaluated only for its effect",
		Build: func() Program {
			stmt := Add(Add(Add(CallOf(CallOf(Ref("t"))), Int(10)), Int(20)), Int(30))
			return single("fn", Begin(Int(0), Do(stmt)))
		},
	},
	{
		Name:        "truthiness",
		Description: "a bare variable and a call result used as conditional tests",
		Build: func() Program {
			inner := IfOf(CallOf(Ref("ready")), Int(1), Int(2))
			return single("check", IfOf(Ref("x"), inner, False()))
		},
	},
	{
		Name:        "conditional-value",
		Description: "a conditional whose value is bound and used after it",
		Build: func() Program {
			pick := IfOf(Neq(Ref("a"), Int(0)), CallOf(Ref("g"), Ref("a")), Sub(Ref("a"), Int(1)))
			return single("pick", LetIn("r", pick, Add(Ref("r"), Int(1))))
		},
	},
	{
		Name:        "effects",
		Description: "statements kept only for their calls, including a conditional one",
		Build: func() Program {
			return single("log", Begin(
				CallOf(Ref("done")),
				Do(Ref("x")),
				Do(Add(Ref("x"), Int(1))),
				Do(CallOf(Ref("print"), Ref("x"), Int(2), Int(3))),
				Do(IfOf(Eq(Ref("x"), Int(0)), CallOf(Ref("warn")), Ref("x"))),
			))
		},
	},
	{
		Name:        "comparison-value",
		Description: "comparisons returned and bound as values",
		Build: func() Program {
			p := shared.NewProgram[Expr]()
			p.Funcs["is-zero"] = Eq(Ref("n"), Int(0))
			p.Funcs["differs"] = LetIn("d", Neq(Ref("a"), Ref("b")), CallOf(Ref("report"), Ref("d")))
			return p
		},
	},
}

func single(name string, body Expr) Program {
	p := shared.NewProgram[Expr]()
	p.Funcs[name] = body
	return p
}

// fib builds the fibonacci body; sum overrides the final recursive sum
func fib(sum func(n func() Expr) Expr) Expr {
	n := func() Expr { return Ref("n") }
	if sum == nil {
		sum = func(n func() Expr) Expr {
			return Add(CallOf(Ref("fib"), Sub(n(), Int(1))), CallOf(Ref("fib"), Sub(n(), Int(2))))
		}
	}
	return IfOf(Eq(n(), Int(0)), Int(1), IfOf(Eq(n(), Int(1)), Int(1), sum(n)))
}

// curried is t()((10 + 20) + 30)
func curried() Expr {
	return CallOf(CallOf(Ref("t")), Add(Add(Int(10), Int(20)), Int(30)))
}

// All returns every example sorted by name
func All() []Example {
	out := make([]Example, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the example names sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, ex := range All() {
		names = append(names, ex.Name)
	}
	return names
}

// Lookup finds an example by name
func Lookup(name string) (Example, bool) {
	for _, ex := range registry {
		if ex.Name == name {
			return ex, true
		}
	}
	return Example{}, false
}

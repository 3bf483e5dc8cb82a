package surface

import (
	"nanopass/internal/shared"
)

// Vars lists every name e reads or binds, in order of appearance. Names
// may repeat.
func Vars(e Expr) []shared.Var {
	var names []shared.Var
	walk(e, func(name shared.Var, _ bool) {
		names = append(names, name)
	})
	return names
}

// Assigns reports whether evaluating any of es may rebind name
func Assigns(name shared.Var, es ...Expr) bool {
	found := false
	for _, e := range es {
		walk(e, func(v shared.Var, bound bool) {
			if bound && v == name {
				found = true
			}
		})
	}
	return found
}

// walk visits variable reads (bound false) and Let targets (bound true)
// in evaluation order
func walk(e Expr, visit func(name shared.Var, bound bool)) {
	switch e := e.(type) {
	case *Var:
		visit(e.Name, false)
	case *Call:
		walk(e.Subject, visit)
		for _, arg := range e.Args {
			walk(arg, visit)
		}
	case *Binop:
		walk(e.Lhs, visit)
		walk(e.Rhs, visit)
	case *If:
		walk(e.Test, visit)
		walk(e.Conseq, visit)
		walk(e.Alt, visit)
	case *Seq:
		for _, s := range e.Stmts {
			switch s := s.(type) {
			case *Let:
				walk(s.Expr, visit)
				visit(s.Name, true)
			case *Exp:
				walk(s.Expr, visit)
			}
		}
		walk(e.Body, visit)
	}
}

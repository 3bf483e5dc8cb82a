package shared

// Vocabulary shared by every intermediate language: operators, literal
// values, variables, trivial terms and the program container.

import (
	"fmt"
	"sort"

	"nanopass/internal/pretty"
)

// Op is a binary operator
type Op int

const (
	Add Op = iota
	Sub
	Eq
	Neq
)

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Eq:
		return "=="
	case Neq:
		return "!="
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Valid reports whether op is one of the known operators
func (op Op) Valid() bool {
	return op >= Add && op <= Neq
}

// IsArithmetic reports whether op produces a number
func (op Op) IsArithmetic() bool {
	return op == Add || op == Sub
}

// IsRelational reports whether op compares its operands
func (op Op) IsRelational() bool {
	return op == Eq || op == Neq
}

// ValueKind tags a literal value
type ValueKind int

const (
	IntValue ValueKind = iota
	TrueValue
	FalseValue
)

// Value is a literal constant. True and False are the canonical encodings of
// boolean results; any value other than False is truthy.
type Value struct {
	Kind ValueKind
	Int  uint8
}

// Int returns an integer literal
func Int(n uint8) Value {
	return Value{Kind: IntValue, Int: n}
}

var (
	True  = Value{Kind: TrueValue}
	False = Value{Kind: FalseValue}
)

// IsFalse reports whether v is the False constant
func (v Value) IsFalse() bool {
	return v.Kind == FalseValue
}

func (v Value) String() string {
	switch v.Kind {
	case TrueValue:
		return "TRUE"
	case FalseValue:
		return "FALSE"
	default:
		return fmt.Sprintf("%d", v.Int)
	}
}

// Var names a variable, either from the source program or generated
type Var = string

// Triv is a trivial term. Evaluating one performs no computation and has no
// side effect.
type Triv interface {
	isTriv()
	Doc() pretty.Doc
	String() string
}

// Lit is a literal operand
type Lit struct {
	Value Value
}

// Ref is a variable reference
type Ref struct {
	Name Var
}

// ReturnSlot is the single implicit location a non-tail call writes its
// result to. It is a sentinel rather than a name so it cannot collide with
// source variables or temporaries.
type ReturnSlot struct{}

func (Lit) isTriv()        {}
func (Ref) isTriv()        {}
func (ReturnSlot) isTriv() {}

func (l Lit) Doc() pretty.Doc      { return pretty.Text(l.Value.String()) }
func (r Ref) Doc() pretty.Doc      { return pretty.Text(r.Name) }
func (ReturnSlot) Doc() pretty.Doc { return pretty.Text("%ret") }

func (l Lit) String() string      { return l.Value.String() }
func (r Ref) String() string      { return r.Name }
func (ReturnSlot) String() string { return "%ret" }

// FalseLit is the False constant as an operand
func FalseLit() Triv {
	return Lit{Value: False}
}

// Program maps function names to bodies in some intermediate language
type Program[B any] struct {
	Funcs map[string]B
}

// NewProgram returns an empty program
func NewProgram[B any]() Program[B] {
	return Program[B]{Funcs: make(map[string]B)}
}

// Names returns the function names in sorted order
func (p Program[B]) Names() []string {
	names := make([]string, 0, len(p.Funcs))
	for name := range p.Funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of functions
func (p Program[B]) Len() int {
	return len(p.Funcs)
}

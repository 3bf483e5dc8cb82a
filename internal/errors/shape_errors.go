package errors

import (
	"fmt"
)

// ShapeErrorBuilder provides a fluent interface for creating pipeline errors
type ShapeErrorBuilder struct {
	err CompilerError
}

// NewShapeError creates a new error builder
func NewShapeError(code, message string) *ShapeErrorBuilder {
	return &ShapeErrorBuilder{
		err: CompilerError{
			Level:   Error,
			Code:    code,
			Message: message,
		},
	}
}

// WithConstruct records the rendering of the offending node
func (b *ShapeErrorBuilder) WithConstruct(construct string) *ShapeErrorBuilder {
	b.err.Construct = construct
	return b
}

// WithNote adds a note to the error
func (b *ShapeErrorBuilder) WithNote(note string) *ShapeErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *ShapeErrorBuilder) WithHelp(help string) *ShapeErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *ShapeErrorBuilder) Build() *CompilerError {
	err := b.err
	return &err
}

// UnsupportedShape creates an error for a node kind a pass cannot translate.
// node is the offending value; its rendering is kept when it has one.
func UnsupportedShape(category string, node any) *CompilerError {
	builder := NewShapeError(ErrorUnsupportedShape,
		fmt.Sprintf("unsupported %s shape %T", category, node))

	if node == nil {
		builder = NewShapeError(ErrorUnsupportedShape, fmt.Sprintf("missing %s (nil node)", category))
	} else if s, ok := node.(fmt.Stringer); ok {
		builder = builder.WithConstruct(s.String())
	}

	return builder.
		WithNote("an earlier pass produced, or the input contains, a shape this pass has no rule for").
		Build()
}

// RelationalInValue creates an error for a comparison inside value arithmetic
func RelationalInValue(construct string) *CompilerError {
	return NewShapeError(ErrorRelationalInValue, "relational operator in value arithmetic").
		WithConstruct(construct).
		WithHelp("comparisons in value position must be materialized as (if (== a b) TRUE FALSE)").
		Build()
}

// ArithmeticInRelop creates an error for arithmetic inside a relational test
func ArithmeticInRelop(construct string) *CompilerError {
	return NewShapeError(ErrorArithmeticInRelop, "arithmetic operator in relational test").
		WithConstruct(construct).
		WithHelp("arithmetic in predicate position must go through the truthiness test").
		Build()
}

// InvalidOperator creates an error for an unknown operator tag
func InvalidOperator(op fmt.Stringer) *CompilerError {
	return NewShapeError(ErrorInvalidOperator, fmt.Sprintf("invalid operator %v", op)).
		WithNote("operators are +, -, == and !=").
		Build()
}

// InvariantViolation creates an error for output that failed a check
func InvariantViolation(invariant, detail string) *CompilerError {
	return NewShapeError(ErrorInvariantViolation, fmt.Sprintf("%s invariant violated", invariant)).
		WithConstruct(detail).
		Build()
}

// Raise aborts the translation of the current function with err.
// It must only be called below a Recover of the same translation.
func Raise(err *CompilerError) {
	panic(err)
}

// Recover stops a Raise at a function boundary and stores the error into
// *errp, tagged with the pass and function. Other panics propagate.
func Recover(errp *error, pass, function string) {
	r := recover()
	if r == nil {
		return
	}

	err, ok := r.(*CompilerError)
	if !ok {
		panic(r)
	}

	err.Pass = pass
	err.Function = function
	*errp = err
}

package errors

// Error codes for the lowering pipeline
// These codes identify structural failures raised while a pass translates a
// function body. Every one of them is a contract violation: an input shape a
// pass has no rule for, or an invariant an earlier pass failed to establish.
//
// Error code ranges:
// E0700-E0719: Shape errors raised by the passes
// E0720-E0739: Invariant checker errors

const (
	// E0701: A node kind the pass has no translation rule for (including nil)
	ErrorUnsupportedShape = "E0701"

	// E0702: A relational operator reached a value-producing arithmetic node
	ErrorRelationalInValue = "E0702"

	// E0703: An operator outside {+, -, ==, !=}
	ErrorInvalidOperator = "E0703"

	// E0704: An arithmetic operator reached a relational test
	ErrorArithmeticInRelop = "E0704"

	// E0720: An output failed an invariant check
	ErrorInvariantViolation = "E0720"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnsupportedShape:
		return "The pass has no translation rule for this construct"
	case ErrorRelationalInValue:
		return "A comparison appeared where only arithmetic is allowed"
	case ErrorInvalidOperator:
		return "The operator is not one of +, -, == or !="
	case ErrorArithmeticInRelop:
		return "Arithmetic appeared where only a comparison is allowed"
	case ErrorInvariantViolation:
		return "A pass produced output that breaks one of its guarantees"
	default:
		return "Unknown error code"
	}
}

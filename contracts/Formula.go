package contracts

import "errors"

// FormulaSyntaxError is raised when formula text cannot be parsed. It is a
// parse-level failure, distinct from FormulaError values produced during
// evaluation.
var FormulaSyntaxError = errors.New("formula syntax error")

type Formula interface {
	// Evaluate computes the expression against the sheet. The returned error,
	// if any, is a FormulaError.
	Evaluate(sheet Sheet) (float64, error)

	// GetExpression returns the canonical rendering of the expression:
	// whitespace-free, with only the parentheses precedence requires.
	GetExpression() string

	// GetReferencedCells returns the valid positions the expression reads,
	// sorted and deduplicated.
	GetReferencedCells() []Position
}

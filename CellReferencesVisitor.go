package main

import (
	"cellgrid/contracts"

	"github.com/expr-lang/expr/ast"
)

// CellReferencesVisitor collects the positions referenced by an expression.
// Identifiers that do not name a valid in-range position are skipped; they
// evaluate to #REF! and never take part in dependency bookkeeping.
type CellReferencesVisitor struct {
	positions []contracts.Position
}

func (v *CellReferencesVisitor) Visit(node *ast.Node) {
	var ok bool
	var identifierNode *ast.IdentifierNode

	if identifierNode, ok = (*node).(*ast.IdentifierNode); ok {
		if pos := contracts.PositionFromString(identifierNode.Value); pos.IsValid() {
			v.positions = append(v.positions, pos)
		}
	}
}

package main

import (
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
)

const (
	precedenceAdditive = iota + 1
	precedenceMultiplicative
	precedenceUnary
	precedenceLeaf
)

func nodePrecedence(node ast.Node) int {
	switch typed := node.(type) {
	case *ast.BinaryNode:
		if typed.Operator == "*" || typed.Operator == "/" {
			return precedenceMultiplicative
		}
		return precedenceAdditive
	case *ast.UnaryNode:
		return precedenceUnary
	}
	return precedenceLeaf
}

// GetExpression renders the expression without whitespace, emitting
// parentheses only where a child binds weaker than its parent, or where the
// right operand of - or / would otherwise re-associate.
func (f *Formula) GetExpression() string {
	out := strings.Builder{}
	printNode(&out, f.root)
	return out.String()
}

func printNode(out *strings.Builder, node ast.Node) {
	switch typed := node.(type) {
	case *ast.IntegerNode:
		out.WriteString(strconv.Itoa(typed.Value))

	case *ast.FloatNode:
		out.WriteString(strconv.FormatFloat(typed.Value, 'f', -1, 64))

	case *ast.IdentifierNode:
		out.WriteString(typed.Value)

	case *ast.UnaryNode:
		out.WriteString(typed.Operator)
		printChild(out, typed.Node, nodePrecedence(typed.Node) < precedenceUnary)

	case *ast.BinaryNode:
		own := nodePrecedence(node)
		printChild(out, typed.Left, nodePrecedence(typed.Left) < own)
		out.WriteString(typed.Operator)

		rightPrecedence := nodePrecedence(typed.Right)
		parenthesized := rightPrecedence < own ||
			(rightPrecedence == own && (typed.Operator == "-" || typed.Operator == "/"))
		printChild(out, typed.Right, parenthesized)
	}
}

func printChild(out *strings.Builder, node ast.Node, parenthesized bool) {
	if parenthesized {
		out.WriteByte('(')
	}
	printNode(out, node)
	if parenthesized {
		out.WriteByte(')')
	}
}

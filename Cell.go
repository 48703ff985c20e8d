package main

import (
	"cellgrid/contracts"
	"strings"
)

// Cell holds one of three bodies (empty, text, formula), a memoized value and
// the two edge sets of the dependency graph. Edges are stored as positions;
// peers are resolved through the owning sheet.
type Cell struct {
	sheet *Sheet
	pos   contracts.Position

	body        cellBody
	cache       contracts.Value
	invalidated bool

	refsOut map[contracts.Position]struct{}
	refsIn  map[contracts.Position]struct{}
}

type cellBody interface {
	GetValue() contracts.Value
	GetText() string
}

type emptyBody struct{}

func (emptyBody) GetValue() contracts.Value { return "" }
func (emptyBody) GetText() string           { return "" }

type textBody struct {
	text string
}

func (b textBody) GetValue() contracts.Value {
	if strings.HasPrefix(b.text, contracts.EscapeSign) {
		return b.text[len(contracts.EscapeSign):]
	}
	return b.text
}

func (b textBody) GetText() string { return b.text }

type formulaBody struct {
	formula *Formula
}

// GetValue is a placeholder: evaluation needs the sheet, so the owning cell
// computes formula values itself.
func (formulaBody) GetValue() contracts.Value { return "" }

func (b formulaBody) GetText() string {
	return contracts.FormulaSign + b.formula.GetExpression()
}

func NewCell(sheet *Sheet, pos contracts.Position) *Cell {
	return &Cell{
		sheet:   sheet,
		pos:     pos,
		body:    emptyBody{},
		refsOut: make(map[contracts.Position]struct{}),
		refsIn:  make(map[contracts.Position]struct{}),
	}
}

// Set replaces the cell body. Formula text that fails to parse degrades to a
// literal text body; SetCell on the sheet pre-validates syntax, so that path
// only happens when a cell is mutated directly.
func (c *Cell) Set(text string) {
	c.cache = nil

	if text == "" {
		c.body = emptyBody{}
	} else if strings.HasPrefix(text, contracts.FormulaSign) && len(text) > 1 {
		formula, err := NewFormula(text[len(contracts.FormulaSign):])
		if err != nil {
			c.body = textBody{text: text}
		} else {
			c.body = formulaBody{formula: formula}
		}
	} else {
		c.body = textBody{text: text}
	}

	// A cell that is not currently set is read as zero without GetValue, so
	// its flag can still be raised while dependents hold cached values; lower
	// it so the edit always reaches them.
	c.invalidated = false
	c.invalidate()
	c.updateDependencies()
}

func (c *Cell) Clear() {
	c.Set("")
}

func (c *Cell) GetValue() contracts.Value {
	if c.cache != nil {
		return c.cache
	}

	if body, ok := c.body.(formulaBody); ok {
		result, err := body.formula.Evaluate(c.sheet)
		if formulaErr, failed := err.(contracts.FormulaError); failed {
			c.cache = formulaErr
		} else {
			c.cache = result
		}
	} else {
		c.cache = c.body.GetValue()
	}

	c.invalidated = false
	return c.cache
}

func (c *Cell) GetText() string {
	return c.body.GetText()
}

func (c *Cell) GetReferencedCells() []contracts.Position {
	if body, ok := c.body.(formulaBody); ok {
		return body.formula.GetReferencedCells()
	}
	return nil
}

// invalidate drops the memoized value here and in every transitive dependent.
// The guard makes the recursion terminate and skips subtrees that are already
// invalidated: a dependent whose cached value depends on a formula cell read
// it through GetValue, which cleared that cell's flag. Set lowers the flag of
// the edited cell itself before calling this.
func (c *Cell) invalidate() {
	if c.invalidated {
		return
	}
	c.cache = nil
	c.invalidated = true

	for pos := range c.refsIn {
		if dependent := c.sheet.cells[pos]; dependent != nil {
			dependent.invalidate()
		}
	}
}

// updateDependencies rebuilds refsOut wholesale: old edges are torn down
// symmetrically, then the new formula's references are installed, lazily
// materializing targets that do not exist yet.
func (c *Cell) updateDependencies() {
	for pos := range c.refsOut {
		if target := c.sheet.cells[pos]; target != nil {
			delete(target.refsIn, c.pos)
			c.sheet.releaseIfUnused(pos)
		}
	}
	c.refsOut = make(map[contracts.Position]struct{})

	for _, pos := range c.GetReferencedCells() {
		target := c.sheet.materializeCell(pos)
		c.refsOut[pos] = struct{}{}
		target.refsIn[c.pos] = struct{}{}
	}
}

package main

import (
	"cellgrid/contracts"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Sheet is a sparse grid of cells. The cells map holds every materialized
// cell, including ones that exist only because a formula references them;
// occupied tracks the positions that were explicitly set, which is what
// GetCell and the printable rectangle expose.
type Sheet struct {
	cells         map[contracts.Position]*Cell
	occupied      map[contracts.Position]struct{}
	printableSize contracts.Size
}

func NewSheet() *Sheet {
	return &Sheet{
		cells:    make(map[contracts.Position]*Cell),
		occupied: make(map[contracts.Position]struct{}),
	}
}

func (s *Sheet) SetCell(pos contracts.Position, text string) error {
	if !pos.IsValid() {
		return contracts.InvalidPositionError
	}

	// Validate formula syntax before touching any state.
	if strings.HasPrefix(text, contracts.FormulaSign) && len(text) > 1 {
		if _, err := NewFormula(text[len(contracts.FormulaSign):]); err != nil {
			return err
		}
	}

	cell := s.cells[pos]
	if cell == nil {
		cell = NewCell(s, pos)
		s.cells[pos] = cell
	}

	previousText := cell.GetText()
	_, wasOccupied := s.occupied[pos]

	cell.Set(text)

	if s.hasCircularDependency(pos) {
		cell.Set(previousText)
		if !wasOccupied {
			s.releaseIfUnused(pos)
		}
		return contracts.CircularDependencyError
	}

	s.occupied[pos] = struct{}{}
	s.extendPrintableSize(pos)
	return nil
}

func (s *Sheet) GetCell(pos contracts.Position) (contracts.Cell, error) {
	if !pos.IsValid() {
		return nil, contracts.InvalidPositionError
	}
	if _, ok := s.occupied[pos]; !ok {
		return nil, nil
	}

	cell := s.cells[pos]
	if cell == nil {
		return nil, nil
	}
	return cell, nil
}

// ClearCell empties the cell and forgets the position. A cell that other
// formulas still reference is kept, reduced to empty, so the back edges stay
// consistent; it is released once the last incoming edge is gone.
func (s *Sheet) ClearCell(pos contracts.Position) error {
	if !pos.IsValid() {
		return contracts.InvalidPositionError
	}
	if _, ok := s.occupied[pos]; !ok {
		return nil
	}

	cell := s.cells[pos]
	cell.Clear()
	delete(s.occupied, pos)

	if len(cell.refsIn) == 0 {
		delete(s.cells, pos)
	}

	s.recomputePrintableSize()
	return nil
}

func (s *Sheet) GetPrintableSize() contracts.Size {
	return s.printableSize
}

func (s *Sheet) PrintValues(output io.Writer) {
	s.printGrid(output, func(cell *Cell) string {
		return contracts.FormatValue(cell.GetValue())
	})
}

func (s *Sheet) PrintTexts(output io.Writer) {
	s.printGrid(output, func(cell *Cell) string {
		return cell.GetText()
	})
}

func (s *Sheet) printGrid(output io.Writer, render func(*Cell) string) {
	for row := 0; row < s.printableSize.Rows; row++ {
		for col := 0; col < s.printableSize.Cols; col++ {
			if col > 0 {
				_, _ = fmt.Fprint(output, "\t")
			}
			pos := contracts.Position{Row: row, Col: col}
			if _, ok := s.occupied[pos]; ok {
				_, _ = fmt.Fprint(output, render(s.cells[pos]))
			}
		}
		_, _ = fmt.Fprint(output, "\n")
	}
}

// GetDependents returns every cell transitively depending on pos, in
// position order.
func (s *Sheet) GetDependents(pos contracts.Position) []contracts.Position {
	dependents := s.collectDependentsRecursive(pos, map[contracts.Position]bool{pos: true})
	sort.Slice(dependents, func(i, j int) bool {
		return dependents[i].Less(dependents[j])
	})
	return dependents
}

func (s *Sheet) collectDependentsRecursive(pos contracts.Position, alreadyFetched map[contracts.Position]bool) []contracts.Position {
	cell := s.cells[pos]
	if cell == nil {
		return nil
	}

	dependents := make([]contracts.Position, 0, len(cell.refsIn))
	for dependent := range cell.refsIn {
		if !alreadyFetched[dependent] {
			alreadyFetched[dependent] = true
			dependents = append(dependents, dependent)
			dependents = append(dependents, s.collectDependentsRecursive(dependent, alreadyFetched)...)
		}
	}

	return dependents
}

// hasCircularDependency runs a DFS from the edited cell along refsIn (the
// "who depends on me" direction). The pre-edit graph was acyclic, so any new
// cycle must pass through the edited cell; meeting a cell that is still on
// the open path proves one.
func (s *Sheet) hasCircularDependency(start contracts.Position) bool {
	visited := make(map[contracts.Position]struct{})
	onPath := make(map[contracts.Position]struct{})

	var dfs func(contracts.Position) bool
	dfs = func(pos contracts.Position) bool {
		if _, ok := visited[pos]; ok {
			return false
		}
		visited[pos] = struct{}{}
		onPath[pos] = struct{}{}

		if cell := s.cells[pos]; cell != nil {
			for dependent := range cell.refsIn {
				if _, ok := onPath[dependent]; ok {
					return true
				}
				if dfs(dependent) {
					return true
				}
			}
		}

		delete(onPath, pos)
		return false
	}

	return dfs(start)
}

// materializeCell looks up or lazily creates the cell at pos so dependency
// edges can point at positions that were never set.
func (s *Sheet) materializeCell(pos contracts.Position) *Cell {
	cell := s.cells[pos]
	if cell == nil {
		cell = NewCell(s, pos)
		s.cells[pos] = cell
	}
	return cell
}

// releaseIfUnused frees a cell that is empty, unset and edge-free.
func (s *Sheet) releaseIfUnused(pos contracts.Position) {
	cell := s.cells[pos]
	if cell == nil {
		return
	}
	if _, ok := s.occupied[pos]; ok {
		return
	}
	if len(cell.refsIn) > 0 || len(cell.refsOut) > 0 {
		return
	}
	if _, empty := cell.body.(emptyBody); !empty {
		return
	}
	delete(s.cells, pos)
}

func (s *Sheet) extendPrintableSize(pos contracts.Position) {
	if pos.Row+1 > s.printableSize.Rows {
		s.printableSize.Rows = pos.Row + 1
	}
	if pos.Col+1 > s.printableSize.Cols {
		s.printableSize.Cols = pos.Col + 1
	}
}

func (s *Sheet) recomputePrintableSize() {
	s.printableSize = contracts.Size{}
	for pos := range s.occupied {
		s.extendPrintableSize(pos)
	}
}

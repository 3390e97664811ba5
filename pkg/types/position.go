package types

import "fmt"

// Position is a location in decoded source text.
// Offset counts characters (runes) from the start of the text and is 0-based.
// Line and Column are 1-based; Column restarts at 1 on every new line.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String renders the position the way reports print it.
func (p Position) String() string {
	return fmt.Sprintf("line %d col %d", p.Line, p.Column)
}

package types

import "fmt"

// BracketKind identifies a family of paired brackets.
type BracketKind int

const (
	Paren BracketKind = iota + 1
	Square
	Curly
)

var bracketPairs = map[BracketKind][2]rune{
	Paren:  {'(', ')'},
	Square: {'[', ']'},
	Curly:  {'{', '}'},
}

var bracketNames = map[BracketKind]string{
	Paren:  "paren",
	Square: "square",
	Curly:  "curly",
}

// Open returns the opening character of the kind.
func (k BracketKind) Open() rune {
	return bracketPairs[k][0]
}

// Close returns the closing character of the kind.
func (k BracketKind) Close() rune {
	return bracketPairs[k][1]
}

// String returns the lowercase kind name.
func (k BracketKind) String() string {
	if name, ok := bracketNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BracketKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k BracketKind) MarshalText() ([]byte, error) {
	if _, ok := bracketNames[k]; !ok {
		return nil, fmt.Errorf("invalid bracket kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BracketKind) UnmarshalText(text []byte) error {
	for kind, name := range bracketNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown bracket kind: %q", text)
}

// OpenerKind reports whether r opens a bracket and which kind.
func OpenerKind(r rune) (BracketKind, bool) {
	switch r {
	case '(':
		return Paren, true
	case '[':
		return Square, true
	case '{':
		return Curly, true
	}
	return 0, false
}

// CloserKind reports whether r closes a bracket and which kind.
func CloserKind(r rune) (BracketKind, bool) {
	switch r {
	case ')':
		return Paren, true
	case ']':
		return Square, true
	case '}':
		return Curly, true
	}
	return 0, false
}

// OpenBracket is an opener that has been scanned and not yet matched.
type OpenBracket struct {
	Kind     BracketKind `json:"kind"`
	Position Position    `json:"position"`
}

// Char returns the opening character.
func (o OpenBracket) Char() rune {
	return o.Kind.Open()
}

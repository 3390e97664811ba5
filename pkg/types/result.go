package types

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Status is the outcome class of a scan.
type Status string

const (
	StatusBalanced         Status = "balanced"
	StatusUnclosed         Status = "unclosed"
	StatusUnexpectedCloser Status = "unexpected_closer"
	StatusMismatched       Status = "mismatched"
)

// Result is the terminal outcome of scanning one text.
//
// Which fields are meaningful depends on Status:
//   - StatusBalanced: none.
//   - StatusUnclosed: Unclosed, oldest opener first.
//   - StatusUnexpectedCloser: Char and Position.
//   - StatusMismatched: Char, Position and Expected (the opener that was popped).
type Result struct {
	Status   Status
	Char     rune
	Position Position
	Expected OpenBracket
	Unclosed []OpenBracket
}

// Balanced returns a result for text whose brackets all match.
func Balanced() Result {
	return Result{Status: StatusBalanced}
}

// Unclosed returns a result listing openers left on the stack at end of input.
func Unclosed(entries []OpenBracket) Result {
	return Result{Status: StatusUnclosed, Unclosed: entries}
}

// UnexpectedCloser returns a result for a closer seen with nothing open.
func UnexpectedCloser(ch rune, pos Position) Result {
	return Result{Status: StatusUnexpectedCloser, Char: ch, Position: pos}
}

// Mismatched returns a result for a closer that does not match the innermost opener.
func Mismatched(ch rune, pos Position, expected OpenBracket) Result {
	return Result{Status: StatusMismatched, Char: ch, Position: pos, Expected: expected}
}

// OK reports whether the text was balanced.
func (r Result) OK() bool {
	return r.Status == StatusBalanced
}

// String renders a one-line summary of the result.
func (r Result) String() string {
	switch r.Status {
	case StatusBalanced:
		return "balanced"
	case StatusUnclosed:
		return fmt.Sprintf("%d unclosed bracket(s)", len(r.Unclosed))
	case StatusUnexpectedCloser:
		return fmt.Sprintf("unexpected closing %c at %s", r.Char, r.Position)
	case StatusMismatched:
		return fmt.Sprintf("mismatched closing %c at %s, expected match for %c from %s",
			r.Char, r.Position, r.Expected.Char(), r.Expected.Position)
	default:
		return fmt.Sprintf("unknown status %q", string(r.Status))
	}
}

type resultJSON struct {
	Status   Status        `json:"status"`
	Char     string        `json:"char,omitempty"`
	Position *Position     `json:"position,omitempty"`
	Expected *OpenBracket  `json:"expected,omitempty"`
	Unclosed []OpenBracket `json:"unclosed,omitempty"`
}

// MarshalJSON emits only the fields relevant to the status.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Status: r.Status}
	switch r.Status {
	case StatusUnclosed:
		out.Unclosed = r.Unclosed
	case StatusUnexpectedCloser:
		out.Char = string(r.Char)
		out.Position = &r.Position
	case StatusMismatched:
		out.Char = string(r.Char)
		out.Position = &r.Position
		out.Expected = &r.Expected
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Result{Status: in.Status, Unclosed: in.Unclosed}
	if in.Char != "" {
		ch, size := utf8.DecodeRuneInString(in.Char)
		if size != len(in.Char) {
			return fmt.Errorf("invalid char %q: expected a single character", in.Char)
		}
		r.Char = ch
	}
	if in.Position != nil {
		r.Position = *in.Position
	}
	if in.Expected != nil {
		r.Expected = *in.Expected
	}
	return nil
}

// Package report renders scan reports for people and for machines.
package report

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/balance/pkg/types"
)

// Human writes reports as plain-language lines.
type Human struct {
	w        io.Writer
	styles   *Styles
	withPath bool
}

// NewHuman creates a human renderer. withPath prefixes every line with the
// file path, for runs over more than one file.
func NewHuman(w io.Writer, styles *Styles, withPath bool) *Human {
	if styles == nil {
		styles = NewStyles(false)
	}
	return &Human{w: w, styles: styles, withPath: withPath}
}

// Report writes one file's result.
func (h *Human) Report(fr *types.FileReport) {
	s := h.styles
	res := fr.Result

	switch res.Status {
	case types.StatusBalanced:
		h.line(fr.Path, s.ok.Sprint("Brackets are balanced."))
	case types.StatusUnclosed:
		h.line(fr.Path, s.err.Sprint("Error:")+" Unclosed brackets:")
		for _, open := range res.Unclosed {
			h.line(fr.Path, fmt.Sprintf("  %s from %s",
				s.bracket.Sprintf("%c", open.Char()), h.where(open.Position)))
		}
	case types.StatusUnexpectedCloser:
		h.line(fr.Path, fmt.Sprintf("%s Unexpected closing %s at %s",
			s.err.Sprint("Error:"), s.bracket.Sprintf("%c", res.Char), h.where(res.Position)))
	case types.StatusMismatched:
		h.line(fr.Path, fmt.Sprintf("%s Mismatched closing %s at %s. Expected closing matching %s from %s",
			s.err.Sprint("Error:"),
			s.bracket.Sprintf("%c", res.Char), h.where(res.Position),
			s.bracket.Sprintf("%c", res.Expected.Char()), h.where(res.Expected.Position)))
	default:
		h.line(fr.Path, s.err.Sprint("Error:")+fmt.Sprintf(" unknown result status %q", string(res.Status)))
	}
}

// InputError writes a file that could not be read or decoded.
func (h *Human) InputError(err error) {
	fmt.Fprintf(h.w, "%s %v\n", h.styles.err.Sprint("Error:"), err)
}

// Summary writes the totals line for a multi-file run.
func (h *Human) Summary(sum types.Summary) {
	s := h.styles
	line := fmt.Sprintf("Checked %d file(s): %s, %s",
		sum.Files,
		s.ok.Sprintf("%d balanced", sum.Balanced),
		h.count(sum.Failed(), "with bracket errors"))
	if sum.InputErrors > 0 {
		line += ", " + h.count(sum.InputErrors, "unreadable")
	}
	if sum.Skipped > 0 {
		line += fmt.Sprintf(" (%d unchanged)", sum.Skipped)
	}
	fmt.Fprintf(h.w, "\n%s\n", s.heading.Sprint(line))
}

func (h *Human) count(n int, label string) string {
	text := fmt.Sprintf("%d %s", n, label)
	if n == 0 {
		return text
	}
	return h.styles.err.Sprint(text)
}

func (h *Human) where(p types.Position) string {
	return h.styles.where.Sprint(p.String())
}

func (h *Human) line(path, text string) {
	if h.withPath {
		fmt.Fprintf(h.w, "%s: %s\n", h.styles.path.Sprint(path), text)
		return
	}
	fmt.Fprintln(h.w, text)
}

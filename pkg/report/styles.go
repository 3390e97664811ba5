package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the color formatters used by the human report.
type Styles struct {
	ok      *color.Color
	err     *color.Color
	bracket *color.Color
	where   *color.Color
	path    *color.Color
	heading *color.Color
}

// NewStyles creates formatters. enabled=false produces plain text regardless
// of the terminal.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		ok:      color.New(color.Bold, color.FgHiGreen),
		err:     color.New(color.Bold, color.FgHiRed),
		bracket: color.New(color.Bold, color.FgYellow),
		where:   color.New(color.FgHiBlue),
		path:    color.New(color.Bold, color.FgHiWhite),
		heading: color.New(color.Bold),
	}

	for _, c := range []*color.Color{s.ok, s.err, s.bracket, s.where, s.path, s.heading} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// ColorEnabled resolves a color mode for output written to w.
// In auto mode color is used only when w is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode: %s (want auto, always or never)", mode)
	}
}

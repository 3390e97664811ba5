package report

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/praetorian-inc/balance/pkg/types"
)

// InputFailure is a file that could not be checked.
type InputFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Document is the JSON output of a run.
type Document struct {
	Reports []*types.FileReport `json:"reports"`
	Errors  []InputFailure      `json:"errors,omitempty"`
	Summary types.Summary       `json:"summary"`
}

// NewInputFailure converts an input error into its JSON form.
func NewInputFailure(err error) InputFailure {
	var ie *types.InputError
	if errors.As(err, &ie) {
		return InputFailure{Path: ie.Path, Error: ie.Err.Error()}
	}
	return InputFailure{Error: err.Error()}
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	if doc.Reports == nil {
		doc.Reports = []*types.FileReport{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

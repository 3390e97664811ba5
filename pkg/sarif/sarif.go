package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/balance/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "balance"
)

// Rule IDs, one per error class.
const (
	RuleUnexpectedCloser = "unexpected-closer"
	RuleMismatchedCloser = "mismatched-closer"
	RuleUnclosedBracket  = "unclosed-bracket"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// ColumnKindCodePoints states that columns count Unicode code points, which
// is how Position.Column is measured.
const ColumnKindCodePoints = "unicodeCodePoints"

// Run represents a single invocation of the tool
type Run struct {
	Tool       Tool     `json:"tool"`
	ColumnKind string   `json:"columnKind"`
	Results    []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes one class of bracket error
type Rule struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortDescription Text   `json:"shortDescription"`
}

// Text is a SARIF message-like object
type Text struct {
	Text string `json:"text"`
}

// Result represents a single bracket error
type Result struct {
	RuleID           string     `json:"ruleId"`
	Level            string     `json:"level"`
	Message          Text       `json:"message"`
	Locations        []Location `json:"locations"`
	RelatedLocations []Location `json:"relatedLocations,omitempty"`
}

// Location describes where a result was found
type Location struct {
	ID               int              `json:"id,omitempty"`
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
	Message          *Text            `json:"message,omitempty"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region covers the single bracket character.
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
	CharOffset  int `json:"charOffset"`
	CharLength  int `json:"charLength"`
}

var rules = []Rule{
	{
		ID:               RuleUnexpectedCloser,
		Name:             "UnexpectedCloser",
		ShortDescription: Text{Text: "Closing bracket with no open bracket"},
	},
	{
		ID:               RuleMismatchedCloser,
		Name:             "MismatchedCloser",
		ShortDescription: Text{Text: "Closing bracket does not match the innermost open bracket"},
	},
	{
		ID:               RuleUnclosedBracket,
		Name:             "UnclosedBracket",
		ShortDescription: Text{Text: "Open bracket never closed before end of file"},
	},
}

// NewReport creates a SARIF report with every rule registered.
func NewReport(toolVersion string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules:   append([]Rule(nil), rules...),
					},
				},
				ColumnKind: ColumnKindCodePoints,
				Results:    []Result{},
			},
		},
	}
}

// AddFileReport adds one result per error in the report. Balanced files add
// nothing.
func (r *Report) AddFileReport(fr *types.FileReport) {
	uri := formatFileURI(fr.Path)
	res := fr.Result

	switch res.Status {
	case types.StatusUnexpectedCloser:
		r.add(Result{
			RuleID:    RuleUnexpectedCloser,
			Level:     "error",
			Message:   Text{Text: fmt.Sprintf("Unexpected closing %c", res.Char)},
			Locations: []Location{location(uri, res.Position, nil)},
		})
	case types.StatusMismatched:
		opener := res.Expected
		r.add(Result{
			RuleID: RuleMismatchedCloser,
			Level:  "error",
			Message: Text{Text: fmt.Sprintf("Mismatched closing %c. Expected closing matching %c from line %d col %d",
				res.Char, opener.Char(), opener.Position.Line, opener.Position.Column)},
			Locations: []Location{location(uri, res.Position, nil)},
			RelatedLocations: []Location{
				location(uri, opener.Position, &Text{Text: fmt.Sprintf("%c opened here", opener.Char())}),
			},
		})
	case types.StatusUnclosed:
		for _, open := range res.Unclosed {
			r.add(Result{
				RuleID:    RuleUnclosedBracket,
				Level:     "error",
				Message:   Text{Text: fmt.Sprintf("Unclosed %c", open.Char())},
				Locations: []Location{location(uri, open.Position, nil)},
			})
		}
	}
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func (r *Report) add(res Result) {
	r.Runs[0].Results = append(r.Runs[0].Results, res)
}

func location(uri string, pos types.Position, msg *Text) Location {
	loc := Location{
		PhysicalLocation: PhysicalLocation{
			ArtifactLocation: ArtifactLocation{URI: uri},
			Region: Region{
				StartLine:   pos.Line,
				StartColumn: pos.Column,
				EndLine:     pos.Line,
				EndColumn:   pos.Column + 1,
				CharOffset:  pos.Offset,
				CharLength:  1,
			},
		},
		Message: msg,
	}
	if msg != nil {
		loc.ID = 1
	}
	return loc
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}

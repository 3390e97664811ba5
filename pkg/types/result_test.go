package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSON(t *testing.T) {
	open := OpenBracket{Kind: Paren, Position: Position{Offset: 0, Line: 1, Column: 1}}

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "balanced",
			result: Balanced(),
			want:   `{"status":"balanced"}`,
		},
		{
			name:   "unexpected closer",
			result: UnexpectedCloser(')', Position{Offset: 0, Line: 1, Column: 1}),
			want:   `{"status":"unexpected_closer","char":")","position":{"offset":0,"line":1,"column":1}}`,
		},
		{
			name:   "mismatched",
			result: Mismatched(']', Position{Offset: 1, Line: 1, Column: 2}, open),
			want: `{"status":"mismatched","char":"]","position":{"offset":1,"line":1,"column":2},` +
				`"expected":{"kind":"paren","position":{"offset":0,"line":1,"column":1}}}`,
		},
		{
			name:   "unclosed",
			result: Unclosed([]OpenBracket{open}),
			want:   `{"status":"unclosed","unclosed":[{"kind":"paren","position":{"offset":0,"line":1,"column":1}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))

			var back Result
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.result, back)
		})
	}
}

func TestResultUnmarshalRejectsMultiCharacter(t *testing.T) {
	var r Result
	err := json.Unmarshal([]byte(`{"status":"unexpected_closer","char":"))"}`), &r)
	assert.ErrorContains(t, err, "single character")
}

func TestResultPredicates(t *testing.T) {
	assert.True(t, Balanced().OK())
	assert.False(t, Unclosed(nil).OK())
	assert.False(t, UnexpectedCloser('}', Position{}).OK())
	assert.False(t, Mismatched('}', Position{}, OpenBracket{Kind: Square}).OK())
}

func TestResultString(t *testing.T) {
	r := Mismatched(']', Position{Offset: 1, Line: 1, Column: 2},
		OpenBracket{Kind: Paren, Position: Position{Line: 1, Column: 1}})
	assert.Equal(t, "mismatched closing ] at line 1 col 2, expected match for ( from line 1 col 1", r.String())
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(Balanced())
	s.Add(Unclosed([]OpenBracket{{Kind: Curly}}))
	s.Add(UnexpectedCloser(')', Position{}))
	s.Add(Mismatched(')', Position{}, OpenBracket{Kind: Curly}))

	assert.Equal(t, 4, s.Files)
	assert.Equal(t, 1, s.Balanced)
	assert.Equal(t, 3, s.Failed())
}

func TestInputError(t *testing.T) {
	err := fmt.Errorf("scanning: %w", &InputError{Path: "main.go", Err: os.ErrNotExist})

	assert.True(t, IsInputError(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "reading main.go")
	assert.False(t, IsInputError(errors.New("other")))
}

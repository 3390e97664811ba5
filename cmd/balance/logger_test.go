package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    string
	}{
		{"default", false, false, "info 1\nwarning: warn 2\n"},
		{"verbose", true, false, "[debug] debug 0\ninfo 1\nwarning: warn 2\n"},
		{"quiet", false, true, ""},
		{"verbose and quiet", true, true, "[debug] debug 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.verbose, tt.quiet)
			l.Log("debug %d", 0)
			l.Info("info %d", 1)
			l.Warn("warn %d", 2)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

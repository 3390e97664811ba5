package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "report",
		Args: cobra.NoArgs,
		RunE: runReport,
	}
	addReportFlags(cmd)
	return cmd
}

func TestReportCmd_MissingDatastore(t *testing.T) {
	cmd := newReportCmd()
	cmd.SetArgs([]string{"--datastore", filepath.Join(t.TempDir(), "none.db")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datastore not found")
}

func TestReportCmd_InMemoryRejected(t *testing.T) {
	cmd := newReportCmd()
	cmd.SetArgs([]string{"--datastore", ":memory:"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in-memory")
}

func TestReportCmd_RendersStoredResults(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	good := writeFile(t, src, "a.go", "[]")
	bad := writeFile(t, src, "b.go", "[)")
	db := filepath.Join(dir, "results.db")

	_, _, err := runCheckCmd(t, src, "--output", db)
	require.Equal(t, exitFindings, exitCode(t, err))

	var buf bytes.Buffer
	cmd := newReportCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--datastore", db, "--color", "never"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t,
		good+": Brackets are balanced.\n"+
			bad+": Error: Mismatched closing ) at line 1 col 2. Expected closing matching [ from line 1 col 1\n"+
			"\nChecked 2 file(s): 1 balanced, 1 with bracket errors\n",
		buf.String())
}

func TestReportCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, src, "a.go", "{")
	db := filepath.Join(dir, "results.db")

	_, _, err := runCheckCmd(t, src, "--output", db)
	require.Equal(t, exitFindings, exitCode(t, err))

	var buf bytes.Buffer
	cmd := newReportCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--datastore", db, "--format", "json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"status": "unclosed"`)
	assert.Contains(t, buf.String(), `"unclosed": 1`)
}

func TestReportCmd_RecheckAfterEditReplacesResult(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	path := writeFile(t, src, "a.go", "()")
	db := filepath.Join(dir, "results.db")

	_, _, err := runCheckCmd(t, src, "--output", db)
	require.NoError(t, err)

	writeFile(t, src, "a.go", "(")
	_, _, err = runCheckCmd(t, src, "--output", db)
	require.Equal(t, exitFindings, exitCode(t, err))

	var buf bytes.Buffer
	cmd := newReportCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--datastore", db, "--color", "never"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t,
		path+": Error: Unclosed brackets:\n"+
			path+":   ( from line 1 col 1\n"+
			"\nChecked 1 file(s): 0 balanced, 1 with bracket errors\n",
		buf.String())
}

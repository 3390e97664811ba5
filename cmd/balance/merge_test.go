package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/praetorian-inc/balance/pkg/store"
	"github.com/praetorian-inc/balance/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMergeCmd creates a fresh merge command for testing
func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <source1.db> <source2.db> [source3.db...]",
		Short: "Merge multiple result databases",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runMerge,
	}
	cmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.db", "Output database path")
	return cmd
}

func writeResultDB(t *testing.T, path, file, content string) {
	t.Helper()
	s, err := store.NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	id := types.HashContent([]byte(content))
	require.NoError(t, s.AddBlob(id, int64(len(content))))
	require.NoError(t, s.AddResult(&types.FileReport{
		Path:      file,
		ContentID: id,
		Size:      int64(len(content)),
		Result:    types.Balanced(),
		ScannedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}))
}

func TestMergeCmd_RequiresMinimumArgs(t *testing.T) {
	cmd := newMergeCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg")

	cmd = newMergeCmd()
	cmd.SetArgs([]string{"source1.db"})
	err = cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg")
}

func TestMergeCmd_MergesTwoDatabases(t *testing.T) {
	tmpDir := t.TempDir()

	source1Path := filepath.Join(tmpDir, "source1.db")
	writeResultDB(t, source1Path, "a.go", "()")
	source2Path := filepath.Join(tmpDir, "source2.db")
	writeResultDB(t, source2Path, "b.go", "[]")

	destPath := filepath.Join(tmpDir, "merged.db")
	var buf bytes.Buffer
	cmd := newMergeCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{source1Path, source2Path, "--output", destPath})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Merge complete:")
	assert.Contains(t, output, "Sources processed: 2")
	assert.Contains(t, output, "Results merged: 2")
	assert.Contains(t, output, "Output: "+destPath)

	merged, err := store.NewSQLite(destPath)
	require.NoError(t, err)
	defer merged.Close()

	results, err := merged.GetResults()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.go", results[0].Path)
	assert.Equal(t, "b.go", results[1].Path)
}

func TestMergeCmd_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	source1Path := filepath.Join(tmpDir, "source1.db")
	writeResultDB(t, source1Path, "a.go", "()")

	cmd := newMergeCmd()
	cmd.SetArgs([]string{source1Path, filepath.Join(tmpDir, "missing.db"), "-o", filepath.Join(tmpDir, "out.db")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge failed")
}

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-search/loupe/internal/search"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("Shopping list\nThis is a TODO item\nNothing else here\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "db.go"),
		[]byte("package db\n// database connection pooling\n"), 0o644))
	return dir
}

func TestSearchCommand_Keyword(t *testing.T) {
	dir := writeTree(t)

	out, err := runCommand(t, "search", "todo", dir, "--mode", "keyword", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "This is a TODO item")
}

func TestSearchCommand_JSONFormat(t *testing.T) {
	dir := writeTree(t)

	out, err := runCommand(t, "search", "todo", dir,
		"--mode", "keyword", "--format", "json")
	require.NoError(t, err)

	var results []search.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "notes.txt", results[0].FilePath)
	assert.Equal(t, 2, results[0].LineNumber)
}

func TestSearchCommand_NoMatches(t *testing.T) {
	dir := writeTree(t)

	out, err := runCommand(t, "search", "zebra", dir, "--mode", "keyword", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches")
}

func TestSearchCommand_UnknownMode(t *testing.T) {
	dir := writeTree(t)

	_, err := runCommand(t, "search", "todo", dir, "--mode", "quantum")
	require.Error(t, err)
}

func TestDoctorCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "doctor", "--json")
	require.NoError(t, err)

	var report doctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.Tier)
	assert.Greater(t, report.Details.CPUCount, 0)
}

func TestVersionCommand_Short(t *testing.T) {
	out, err := runCommand(t, "version", "--short")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

// -- cmd/lint_test.go --
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhnmi/find-sec-bugs/internal/lint"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		// Reset flag state so tests do not leak into one another.
		lintJSON = false
		lintStrict = false
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLintCommand_CleanCatalog(t *testing.T) {
	path := writeCatalog(t, "Ljava/lang/Boolean;:SAFE#IMMUTABLE\n")

	out, err := executeCommand(t, "lint", path)
	require.NoError(t, err)
	assert.Contains(t, out, "clean")
}

func TestLintCommand_InvalidEntriesReported(t *testing.T) {
	path := writeCatalog(t, "Ljava/lang/String;:BOGUS\n")

	out, err := executeCommand(t, "lint", path)
	// Without --strict an unclean run still exits zero.
	require.NoError(t, err)
	assert.Contains(t, out, "1 invalid")
}

func TestLintCommand_Strict(t *testing.T) {
	path := writeCatalog(t, "Ljava/lang/String;:BOGUS\n")

	_, err := executeCommand(t, "lint", path, "--strict")
	assert.ErrorIs(t, err, ErrInvalidEntries)
}

func TestLintCommand_JSONOutput(t *testing.T) {
	path := writeCatalog(t, "Ljava/lang/String;:#IMMUTABLE\nLjava/lang/Bad;:nope\n")

	out, err := executeCommand(t, "lint", path, "--json")
	require.NoError(t, err)

	var report lint.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, 2, report.Findings[0].Line)
}

func TestLintCommand_RequiresArgs(t *testing.T) {
	_, err := executeCommand(t, "lint")
	assert.Error(t, err)
}

func TestLintCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "lint", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

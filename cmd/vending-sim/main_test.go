package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("VENDING_COLOR", "false")

	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_ScriptFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.txt")
	require.NoError(t, os.WriteFile(script, []byte("INSERT 2000\nINSERT 2000\nSELECT 1\nEXIT\n"), 0o600))

	stdout, _, err := executeRoot(t, "", script)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dispensed Tea, change 1000")
	assert.NotContains(t, stdout, "> ", "no prompt in script mode")
}

func TestRoot_InteractiveShowsCatalog(t *testing.T) {
	stdout, _, err := executeRoot(t, "STATUS\n")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Coffee")
	assert.Contains(t, stdout, "> ")
	assert.Contains(t, stdout, "IDLE")
}

func TestRoot_CatalogFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - {id: 7, name: Juice, price: 500, stock: 1}\n"), 0o600))

	stdout, _, err := executeRoot(t, "INSERT 500\nSELECT 7\n", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dispensed Juice, change 0")
}

func TestRoot_InvalidCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - {id: 1, name: A, price: 1}\n  - {id: 1, name: B, price: 1}\n"), 0o600))

	_, _, err := executeRoot(t, "", "--catalog", path)
	assert.ErrorContains(t, err, "duplicate")
}

func TestRoot_JSONLogs(t *testing.T) {
	_, stderr, err := executeRoot(t, "INSERT 500\n", "--log-level", "info", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"machine ready"`)
	assert.Contains(t, stderr, `"coin":500`)
}

func TestRoot_BadLogLevel(t *testing.T) {
	_, _, err := executeRoot(t, "", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestRoot_FlagOverridesInvalidEnv(t *testing.T) {
	t.Setenv("VENDING_LOG_LEVEL", "loud")
	t.Setenv("VENDING_LOG_FORMAT", "xml")

	stdout, _, err := executeRoot(t, "STATUS\n", "--log-level", "info", "--log-format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "IDLE")
}

func TestRoot_InvalidEnvWithoutOverride(t *testing.T) {
	t.Setenv("VENDING_LOG_LEVEL", "loud")

	_, _, err := executeRoot(t, "")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestRoot_DumpCatalog(t *testing.T) {
	stdout, _, err := executeRoot(t, "SELECT 1\n", "--dump-catalog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: Tea")
	assert.Contains(t, stdout, "stock: 0")
	assert.NotContains(t, stdout, "> ", "the machine is not started")
}

func TestRoot_DumpCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(src, []byte("items:\n  - {id: 7, name: Juice, price: 500, stock: 1}\n"), 0o600))

	dumped, _, err := executeRoot(t, "", "--dump-catalog", "--catalog", src)
	require.NoError(t, err)

	copied := filepath.Join(dir, "copy.yaml")
	require.NoError(t, os.WriteFile(copied, []byte(dumped), 0o600))
	stdout, _, err := executeRoot(t, "INSERT 500\nSELECT 7\n", "--catalog", copied)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dispensed Juice, change 0")
}

func TestRoot_MissingScript(t *testing.T) {
	_, _, err := executeRoot(t, "", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "cannot open file")
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/calc-go/internal/domain"
)

type harness struct {
	dir        string
	configPath string
}

func newHarness(t *testing.T, backend string, loadOnStart bool) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CALC_LOG_FILE", filepath.Join(dir, "app.log"))

	configPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(`history:
  backend: %s
  file: %s
  deleted_file: %s
  database: %s
  load_on_start: %t
metrics:
  textfile: %s
`,
		backend,
		filepath.Join(dir, "history.csv"),
		filepath.Join(dir, "deleted.csv"),
		filepath.Join(dir, "history.db"),
		loadOnStart,
		filepath.Join(dir, "calc.prom"))
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o600))
	return &harness{dir: dir, configPath: configPath}
}

// run executes one calc invocation and returns its stdout.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root, container, err := NewRootCmd(context.Background(), Options{
		ConfigPath: h.configPath,
		In:         strings.NewReader(stdin),
		Out:        &out,
	})
	require.NoError(t, err)
	if args == nil {
		// cobra falls back to os.Args when no args are set
		args = []string{}
	}
	root.SetArgs(args)
	runErr := root.Execute()
	require.NoError(t, container.Close())
	return out.String(), runErr
}

func TestOneShotCalculation(t *testing.T) {
	h := newHarness(t, "csv", false)

	out, err := h.run(t, "", "2", "2", "add")
	require.NoError(t, err)
	assert.Equal(t, "The result of the calculation is 4\n", out)

	data, err := os.ReadFile(filepath.Join(h.dir, "history.csv"))
	require.NoError(t, err)
	assert.Equal(t, ",Calculation\n0,2 add 2 = 4\n", string(data))
}

func TestOneShotNegativeOperands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"-1", "2", "add"}, want: "1"},
		{args: []string{"5", "-3", "subtract"}, want: "8"},
		{args: []string{"-2", "-3", "multiply"}, want: "6"},
		{args: []string{"-2.5", "0.5", "add"}, want: "-2"},
		{args: []string{"--", "-4", "2", "divide"}, want: "-2"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			h := newHarness(t, "csv", false)
			out, err := h.run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "The result of the calculation is "+tt.want+"\n", out)
		})
	}
}

func TestRootHelpAndUsage(t *testing.T) {
	h := newHarness(t, "csv", false)

	out, err := h.run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "arbitrary-precision decimals")

	_, err = h.run(t, "", "1", "2")
	assert.EqualError(t, err, fmt.Sprintf(ErrUsageFormat, 2))
}

func TestOneShotFailurePrintsNothing(t *testing.T) {
	h := newHarness(t, "csv", false)

	out, err := h.run(t, "", "5", "0", "divide")
	require.NoError(t, err)
	assert.Empty(t, out)

	logData, err := os.ReadFile(filepath.Join(h.dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "calculation failed")
	assert.Contains(t, string(logData), "cannot divide by zero")
}

func TestInteractiveSession(t *testing.T) {
	h := newHarness(t, "csv", false)

	out, err := h.run(t, "2 2 add\n3 2 subtract\ndelete 1\nhistory\ngreet\nclear\nhistory\nexit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "The result of the calculation is 4")
	assert.Contains(t, out, "Deleted: 2 add 2 = 4")
	assert.Contains(t, out, "1. 3 subtract 2 = 1")
	assert.Contains(t, out, "Hello, World!")
	assert.Contains(t, out, "History cleared.")
	assert.Contains(t, out, "Exiting...")

	_, err = os.Stat(filepath.Join(h.dir, "history.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestOneShotWithoutLoadOnStartStartsFresh(t *testing.T) {
	h := newHarness(t, "csv", false)
	_, err := h.run(t, "", "1", "1", "add")
	require.NoError(t, err)
	_, err = h.run(t, "", "2", "2", "add")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(h.dir, "history.csv"))
	require.NoError(t, err)
	assert.Equal(t, ",Calculation\n0,2 add 2 = 4\n", string(data))
}

func TestHistorySubcommandsReadPersistedHistory(t *testing.T) {
	for _, backend := range []string{"csv", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			h := newHarness(t, backend, true)
			_, err := h.run(t, "", "1", "1", "add")
			require.NoError(t, err)
			_, err = h.run(t, "", "6", "3", "divide")
			require.NoError(t, err)

			out, err := h.run(t, "", "history", "list")
			require.NoError(t, err)
			assert.Equal(t, "Calculation history:\n  1. 1 add 1 = 2\n  2. 6 divide 3 = 2\n", out)

			out, err = h.run(t, "", "history", "list", "--search", "divide")
			require.NoError(t, err)
			assert.Contains(t, out, "6 divide 3 = 2")
			assert.NotContains(t, out, "1 add 1")

			out, err = h.run(t, "", "history", "delete", "1")
			require.NoError(t, err)
			assert.Equal(t, "Deleted: 1 add 1 = 2\n", out)

			out, err = h.run(t, "", "history", "deleted")
			require.NoError(t, err)
			assert.Contains(t, out, "1. 1 add 1 = 2")

			_, err = h.run(t, "", "history", "delete", "7")
			assert.ErrorIs(t, err, domain.ErrInvalidIndex)

			exportPath := filepath.Join(h.dir, "export.jsonl")
			_, err = h.run(t, "", "history", "export", exportPath)
			require.NoError(t, err)
			data, err := os.ReadFile(exportPath)
			require.NoError(t, err)
			var rec domain.Record
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
			assert.Equal(t, "6 divide 3 = 2", rec.String())

			out, err = h.run(t, "", "history", "clear")
			require.NoError(t, err)
			assert.Equal(t, "History cleared.\n", out)

			out, err = h.run(t, "", "history")
			require.NoError(t, err)
			assert.Equal(t, "No calculations in history.\n", out)
		})
	}
}

func TestPluginsAndRun(t *testing.T) {
	h := newHarness(t, "csv", false)

	out, err := h.run(t, "", "plugins")
	require.NoError(t, err)
	assert.Equal(t, "Plugins:\n  - discord\n  - email\n  - goodbye\n  - greet\n  - menu\n", out)

	out, err = h.run(t, "", "run", "goodbye")
	require.NoError(t, err)
	assert.Equal(t, "Goodbye!\n", out)

	_, err = h.run(t, "", "run", "teleport")
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
}

func TestDoctorAndMetricsTextfile(t *testing.T) {
	h := newHarness(t, "csv", false)

	out, err := h.run(t, "", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Config file")
	assert.Contains(t, out, "[OK] Plugins - 5 registered")
	assert.Contains(t, out, "0 error")

	_, err = h.run(t, "", "3", "3", "multiply")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(h.dir, "calc.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `calc_calculations_total{operation="multiply",outcome="ok"} 1`)
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t, "csv", false)

	out, err := h.run(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, h.configPath+"\n", out)

	out, err = h.run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: csv")
	assert.Contains(t, out, "division_precision: 28")
}

func TestVersion(t *testing.T) {
	h := newHarness(t, "csv", false)
	out, err := h.run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "calc dev (go"), out)

	out, err = h.run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workers/internal/testutil"
	"github.com/roach88/workers/internal/worker"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(nil)
	require.NotNil(t, cmd)
	assert.Equal(t, "workers", cmd.Use)
	assert.Equal(t, worker.Version, cmd.Version)
	assert.Contains(t, cmd.Long, "WORKERS_DB")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	commands := []string{"add", "display", "select", "names", "import"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())

			dbFlag := subCmd.Flags().Lookup("db")
			require.NotNil(t, dbFlag, "every command takes --db")
			assert.Equal(t, "", dbFlag.DefValue)
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(nil)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestAddCommandFlags(t *testing.T) {
	cmd := NewRootCommand(nil)
	addCmd, _, err := cmd.Find([]string{"add"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		shorthand string
	}{
		{"surname", "s"},
		{"name", "n"},
		{"zodiac", "z"},
		{"year", "y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := addCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])
		})
	}
}

func TestSelectCommandFlags(t *testing.T) {
	cmd := NewRootCommand(nil)
	selectCmd, _, err := cmd.Find([]string{"select"})
	require.NoError(t, err)

	periodFlag := selectCmd.Flags().Lookup("period")
	require.NotNil(t, periodFlag)
	assert.Equal(t, "P", periodFlag.Shorthand)
	assert.Equal(t, "uint", periodFlag.Value.Type())
}

func TestVersion(t *testing.T) {
	isolateEnv(t)
	res := runCLI(t, &RootOptions{}, "--version")

	assert.Equal(t, ExitSuccess, res.code)
	assert.Equal(t, "workers "+worker.Version+"\n", res.stdout)
}

func TestNoArgsPrintsHelp(t *testing.T) {
	isolateEnv(t)
	res := runCLI(t, &RootOptions{})

	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "Available Commands")
}

func TestFormatValidation(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"text", true},
		{"json", true},
		{"yaml", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidFormat(tt.format))
		})
	}
}

func TestInvalidFormatIsUsageError(t *testing.T) {
	isolateEnv(t)
	db := tempDB(t)
	res := runCLI(t, &RootOptions{}, "display", "--db", db, "--format", "xml")

	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "invalid format")
	assert.NoFileExists(t, db)
}

func TestVerboseLogsRunID(t *testing.T) {
	isolateEnv(t)
	opts := &RootOptions{
		Clock:  testutil.ClockAtYear(2025),
		RunIDs: testutil.NewFixedRunIDGenerator("run-verbose"),
	}
	res := runCLI(t, opts, "display", "--db", tempDB(t), "-v")

	require.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stderr, "run_id=run-verbose")
	assert.Contains(t, res.stderr, "command=display")
	assert.Equal(t, "List is empty.\n", res.stdout)
}

func TestQuietByDefault(t *testing.T) {
	isolateEnv(t)
	res := runCLI(t, nil, "display", "--db", tempDB(t))

	require.Equal(t, ExitSuccess, res.code)
	assert.Empty(t, res.stderr)
}

type cliResult struct {
	stdout string
	stderr string
	code   int
}

// runCLI executes the CLI in-process. A nil opts gets a clock pinned to
// 2025 and a fixed run id.
func runCLI(t *testing.T, opts *RootOptions, args ...string) cliResult {
	t.Helper()
	if opts == nil {
		opts = &RootOptions{
			Clock:  testutil.ClockAtYear(2025),
			RunIDs: testutil.NewFixedRunIDGenerator("test-run"),
		}
	}
	var stdout, stderr bytes.Buffer
	code := execute(opts, args, &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// isolateEnv blanks the WORKERS_* variables for the duration of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"WORKERS_DB", "WORKERS_FORMAT", "WORKERS_VERBOSE"} {
		t.Setenv(k, "")
	}
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

package cli

import (
	"errors"
	"io"

	"github.com/roach88/workers/internal/importer"

	"github.com/spf13/cobra"
)

// Execute runs the workers CLI with args and returns the process exit code.
// Errors are reported on stderr, or on stdout as a json response when
// --format json is in effect.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(&RootOptions{}, args, stdout, stderr)
}

func execute(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return ExitSuccess
	}

	code := GetExitCode(err)
	if cmd == nil {
		cmd = root
	}
	reportError(opts, cmd, err, code)
	return code
}

func reportError(opts *RootOptions, cmd *cobra.Command, err error, code int) {
	f := opts.formatter(cmd)
	if !isValidFormat(f.Format) {
		f.Format = "text"
	}
	_ = f.Error(errorCode(err), err.Error(), errorDetails(err))

	if code == ExitUsage && f.Format != "json" {
		cmd.PrintErrf("Run '%s --help' for usage.\n", cmd.CommandPath())
	}
}

// errorDetails returns the structured part of err, if any.
func errorDetails(err error) interface{} {
	var ie *importer.ImportError
	if errors.As(err, &ie) {
		return map[string]string{"file": ie.Path, "field": ie.Field}
	}
	return nil
}

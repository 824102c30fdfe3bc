package testhelpers

import (
	"bytes"
	"strings"

	"bundlepacks/cmd"
)

// CLIResult holds the separated output streams of one CLI run
type CLIResult struct {
	Stdout string
	Stderr string
	Err    error
}

// RunCLICommand executes a freshly built command tree with args and captures
// stdout and stderr separately. Stdin is empty unless RunCLICommandWithInput
// is used.
func RunCLICommand(args []string) CLIResult {
	return RunCLICommandWithInput(args, "")
}

// RunCLICommandWithInput is RunCLICommand with stdin set to input
func RunCLICommandWithInput(args []string, input string) CLIResult {
	var bufOut, bufErr bytes.Buffer

	// cobra falls back to os.Args when args is nil
	if args == nil {
		args = []string{}
	}

	rootCmd := cmd.NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)

	err := rootCmd.Execute()

	return CLIResult{
		Stdout: bufOut.String(),
		Stderr: bufErr.String(),
		Err:    err,
	}
}

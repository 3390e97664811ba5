package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	exitOK       = 0 // every file balanced
	exitFindings = 1 // at least one bracket error
	exitFailure  = 2 // unreadable input or bad arguments
)

// exitError carries a process exit code. A nil err means everything worth
// saying was already written to the report.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "balance [file]",
	Short: "Balance - bracket balance checker",
	Long: `Balance checks that (), [] and {} are balanced in source files.

Brackets inside // line comments and /* */ block comments are ignored.
The first unexpected or mismatched closing bracket stops the check;
otherwise every bracket left open at end of file is listed.

Running "balance <file>" is the same as "balance check <file>".`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return runCheck(cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

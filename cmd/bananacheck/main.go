package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vertti/bananacheck/pkg/suite"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

var rootCmd = &cobra.Command{
	Use:   "bananacheck",
	Short: "End-to-end checks for the Nano Banana image generation stack",
	Long: "bananacheck exercises the backend API and the web frontend of the image generation " +
		"system, prints one line per check and writes a JSON report.",
	Version:       Version,
	Args:          usageArgs(cobra.NoArgs),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// runRoot makes the root command runnable so stray positional args are
// validated as usage errors instead of surfacing as unknown commands.
func runRoot(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &configError{err: err}
	})
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stderr io.Writer) int {
	rootCmd.SetArgs(defaultToRun(args))
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, suite.ErrChecksFailed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// defaultToRun makes "run" the implied subcommand when args start with a
// flag or are empty.
func defaultToRun(args []string) []string {
	if len(args) == 0 {
		return []string{"run"}
	}
	first := args[0]
	switch first {
	case "-h", "--help", "-v", "--version":
		return args
	}
	if strings.HasPrefix(first, "-") {
		return append([]string{"run"}, args...)
	}
	return args
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertti/bananacheck/pkg/report"
	"github.com/vertti/bananacheck/pkg/suite"
)

var reportCmd = &cobra.Command{
	Use:   "report [path]",
	Short: "Print the summary of a saved report",
	Args:  usageArgs(cobra.MaximumNArgs(1)),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	path := report.DefaultPath
	if len(args) == 1 {
		path = args[0]
	}

	rep, err := report.Read(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rep.Run.ID != "" {
		fmt.Fprintf(out, "Run %s\n", rep.Run.ID)
		fmt.Fprintf(out, "Started:   %s\n", rep.Run.StartedAt)
		fmt.Fprintf(out, "Finished:  %s\n", rep.Run.FinishedAt)
		fmt.Fprintf(out, "Frontend:  %s\n", rep.Run.FrontendURL)
		fmt.Fprintf(out, "Backend:   %s\n", rep.Run.BackendURL)
	}
	report.Print(out, rep)

	if !rep.OK() {
		return suite.ErrChecksFailed
	}
	return nil
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Print writes the human-readable run summary to w.
func Print(w io.Writer, rep Report) {
	success := color.New(color.FgGreen).SprintFunc()
	failure := color.New(color.FgRed).SprintFunc()
	highlight := color.New(color.FgCyan, color.Bold).SprintFunc()
	warning := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(w, highlight("Test report"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 60))

	fmt.Fprintf(w, "Total:     %d\n", rep.Summary.Total)
	fmt.Fprintf(w, "Passed:    %s\n", success(rep.Summary.Passed))
	fmt.Fprintf(w, "Failed:    %s\n", failure(rep.Summary.Failed))
	fmt.Fprintf(w, "Pass rate: %s\n", rep.Summary.PassRate)

	if len(rep.FailedNames) > 0 {
		fmt.Fprintf(w, "\n%s\n", failure("Failed checks:"))
		for _, name := range rep.FailedNames {
			fmt.Fprintf(w, "   - %s\n", name)
		}
	}

	if rep.OK() {
		fmt.Fprintf(w, "\n%s\n", success("All checks passed."))
	} else {
		fmt.Fprintf(w, "\n%s\n", warning(fmt.Sprintf("%d check(s) failed.", rep.Summary.Failed)))
	}
}

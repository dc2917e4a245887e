package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/bananacheck/pkg/check"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	cyan  = "\033[36m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, cyan, dim, reset = "", "", "", "", ""
	}
}

// PrintResult outputs a check result with colored status.
// Details are indented to line up under the check name.
func PrintResult(w io.Writer, r check.Result) {
	var tag string
	if r.OK() {
		tag = "[PASS]"
		fmt.Fprintf(w, "%s%s%s %s\n", green, tag, reset, r.Name)
	} else {
		tag = "[FAIL]"
		fmt.Fprintf(w, "%s%s%s %s\n", red, tag, reset, r.Name)
	}

	indent := strings.Repeat(" ", len(tag)+1)
	for _, line := range strings.Split(r.Details, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(w, "%s%s\n", indent, formatLabel(line))
	}
}

// PrintPhase outputs a section header for a group of checks.
func PrintPhase(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s%s%s\n%s\n", cyan, title, reset, strings.Repeat("-", 30))
}

// formatLabel dims the "label:" prefix of a detail line.
func formatLabel(s string) string {
	idx := strings.Index(s, ":")
	if idx <= 0 || dim == "" {
		return s
	}
	return dim + s[:idx+1] + reset + s[idx+1:]
}

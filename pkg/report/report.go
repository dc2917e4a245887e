// Package report turns the ordered results of a run into summary
// statistics, a console summary, and the JSON report artifact.
package report

import (
	"fmt"
	"time"

	"github.com/vertti/bananacheck/pkg/check"
)

// DefaultPath is where the report artifact is written unless configured.
const DefaultPath = "test_report.json"

// RunInfo identifies the run that produced a report.
type RunInfo struct {
	ID          string `json:"id"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at"`
	FrontendURL string `json:"frontend_url"`
	BackendURL  string `json:"backend_url"`
}

// Summary holds the aggregate counts of a run.
type Summary struct {
	Total    int    `json:"total"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
	PassRate string `json:"pass_rate"`
}

// Report is the immutable aggregate of a full run.
type Report struct {
	Run         RunInfo        `json:"run"`
	Summary     Summary        `json:"summary"`
	FailedNames []string       `json:"failed_tests"`
	Results     []check.Result `json:"detailed_results"`
}

// OK returns true when no check failed.
func (r Report) OK() bool {
	return r.Summary.Failed == 0
}

// Build aggregates results into a Report. It does not modify results and
// returns the same statistics for the same input.
func Build(info RunInfo, results []check.Result) Report {
	rep := Report{
		Run:         info,
		FailedNames: []string{},
		Results:     append([]check.Result{}, results...),
	}

	for _, r := range results {
		if r.Status == check.StatusPass {
			rep.Summary.Passed++
		} else {
			rep.Summary.Failed++
			rep.FailedNames = append(rep.FailedNames, r.Name)
		}
	}
	rep.Summary.Total = len(results)
	rep.Summary.PassRate = PassRate(rep.Summary.Passed, rep.Summary.Total)
	return rep
}

// PassRate formats passed/total as a percentage with one decimal place.
// A run with no checks reports 0.0%.
func PassRate(passed, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(passed)/float64(total)*100)
}

// FormatTime renders t in the layout used throughout the report.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(check.TimestampFormat)
}

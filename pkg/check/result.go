package check

// Status represents the outcome of a check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// TimestampFormat is the layout used for Result.Timestamp.
const TimestampFormat = "2006-01-02 15:04:05"

// Result holds the outcome of a single check.
type Result struct {
	Name      string `json:"test"`      // e.g., "backend health", "frontend navigation"
	Status    Status `json:"status"`    // PASS or FAIL
	Details   string `json:"details"`   // human-readable diagnostics, may be empty
	Timestamp string `json:"timestamp"` // local time the result was recorded
	Err       error  `json:"-"`         // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusPass
}

package check

import (
	"fmt"
	"time"
)

// Pass returns a passing result with the given details.
func Pass(name, details string) Result {
	return Result{Name: name, Status: StatusPass, Details: details}
}

// Fail returns a failed result. An empty detail falls back to the error text
// so failures are never recorded without a description.
func Fail(name, detail string, err error) Result {
	if detail == "" && err != nil {
		detail = err.Error()
	}
	if detail == "" {
		detail = "check failed without a description"
	}
	return Result{Name: name, Status: StatusFail, Details: detail, Err: err}
}

// Failf returns a failed result with a formatted detail message.
func Failf(name, format string, args ...interface{}) Result {
	err := fmt.Errorf(format, args...)
	return Fail(name, err.Error(), err)
}

// Stamp returns a copy of r with Timestamp set from t.
func (r Result) Stamp(t time.Time) Result {
	r.Timestamp = t.Local().Format(TimestampFormat)
	return r
}

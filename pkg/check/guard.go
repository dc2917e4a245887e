package check

import (
	"context"
	"fmt"
)

// Guard runs c and always returns exactly one Result. Errors become FAIL
// results carrying the error text, and a panic inside the check is
// recovered and reported the same way, so one broken check never stops
// the run.
func Guard(ctx context.Context, c Checker) (result Result) {
	name := c.Name()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			result = Fail(name, err.Error(), err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return Fail(name, fmt.Sprintf("not run: %v", err), err)
	}

	details, err := c.Run(ctx)
	if err != nil {
		return Fail(name, err.Error(), err)
	}
	return Pass(name, details)
}

package check

import "context"

// Checker is implemented by every check in the catalogue.
// Run returns the PASS details on success; any returned error marks
// the check as failed and its text becomes the result details.
//
// Implementations:
//   - apicheck.HealthCheck, apicheck.TextToImageCheck, apicheck.ImageAccessCheck,
//     apicheck.PromptsCheck, apicheck.FrontendShellCheck: backend round-trips
//   - uicheck.LoadingCheck, uicheck.NavigationCheck, uicheck.FormCheck,
//     uicheck.GenerationFlowCheck: browser page interactions
type Checker interface {
	Name() string
	Run(ctx context.Context) (string, error)
}

// Func adapts a plain function to the Checker interface.
type Func struct {
	CheckName string
	Fn        func(ctx context.Context) (string, error)
}

// Name returns the check name.
func (f Func) Name() string { return f.CheckName }

// Run calls the wrapped function.
func (f Func) Run(ctx context.Context) (string, error) { return f.Fn(ctx) }

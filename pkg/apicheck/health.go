package apicheck

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"
)

// HealthCheck verifies the backend health endpoint answers 200 with JSON.
type HealthCheck struct {
	BaseURL    string     // backend base URL (required)
	MinVersion string     // optional semver constraint on the reported version
	Client     HTTPClient // injected for testing
}

// Name returns the check name.
func (c *HealthCheck) Name() string { return NameHealth }

// Run executes the health check.
func (c *HealthCheck) Run(ctx context.Context) (string, error) {
	ex, err := send(ctx, c.Client, http.MethodGet, c.BaseURL+HealthPath, requestOptions{})
	if err != nil {
		return "", err
	}
	if ex.Status != http.StatusOK {
		return "", statusError(ex)
	}
	if !gjson.ValidBytes(ex.Body) {
		return "", fmt.Errorf("response is not valid JSON\nresponse: %s", ex.echo())
	}

	details := fmt.Sprintf("status: %d\nresponse: %s", ex.Status, ex.echo())
	if c.MinVersion == "" {
		return details, nil
	}

	line, err := checkVersion(gjson.GetBytes(ex.Body, "version"), c.MinVersion)
	if err != nil {
		return "", err
	}
	return details + "\n" + line, nil
}

// checkVersion verifies the reported version field satisfies the semver
// constraint.
func checkVersion(field gjson.Result, constraint string) (string, error) {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if !field.Exists() {
		return "", fmt.Errorf("health response has no version, required %s", constraint)
	}
	if field.Type != gjson.String {
		return "", fmt.Errorf("health response version %s is not a string", field.Raw)
	}
	reported := field.String()
	v, err := semver.NewVersion(reported)
	if err != nil {
		return "", fmt.Errorf("health response version %q is not semver: %w", reported, err)
	}
	if !cons.Check(v) {
		return "", fmt.Errorf("backend version %s does not satisfy %s", reported, constraint)
	}
	return fmt.Sprintf("version: %s (satisfies %s)", reported, constraint), nil
}

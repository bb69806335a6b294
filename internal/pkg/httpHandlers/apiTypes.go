package httpHandlers

import (
	"math-service/internal/pkg/mathOperations"
)

const healthyStatus = "healthy"

type HealthResponse struct {
	Status         string                  `json:"status"`
	LibraryVersion string                  `json:"library_version"`
	Features       mathOperations.Features `json:"features"`
}

type IntegerResult struct {
	Result int64 `json:"result"`
}

type FloatResult struct {
	Result float64 `json:"result"`
}

// ValidationIssue describes one rejected request parameter.
type ValidationIssue struct {
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Type  string   `json:"type"`
	Input *string  `json:"input"`
}

// ValidationError is raised at the request boundary, before any operation runs.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "request validation failed"
	}
	issue := e.Issues[0]
	return "request validation failed: " + issue.Loc[len(issue.Loc)-1] + ": " + issue.Msg
}

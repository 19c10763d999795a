package respond

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careercanvas/career-canvas-api/internal/platform/validate"
)

// Invalid converts a service validation error into a 400 VALIDATION_ERROR
// with one detail per field. ok is false when err carries no issues.
func Invalid(ctx context.Context, err error) (huma.StatusError, bool) {
	var verr *validate.Error
	if !errors.As(err, &verr) {
		return nil, false
	}
	issues := make([]FieldIssue, len(verr.Issues))
	for i, is := range verr.Issues {
		issues[i] = FieldIssue{Field: is.Field, Issue: is.Message}
	}
	return Validation(ctx, "validation failed", issues...), true
}

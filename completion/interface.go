package completion

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no inference backend credential was
// provided. Startup tolerates the missing credential; the error is
// deferred to the first completion attempt.
var ErrNotConfigured = errors.New("completion service not configured")

type Service interface {
	Complete(ctx context.Context, systemPrompt string, userText string) (string, error)
}

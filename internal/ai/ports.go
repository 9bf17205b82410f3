package ai

import "context"

// Completer turns a single prompt into model output. It knows nothing about
// graphs or bug reports.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

package llm

import "context"

type ctxKeyPhase struct{}

// WithPhase tags the context with a pipeline phase name for log lines.
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// PhaseFrom returns the phase tag, or "-" when none is set.
func PhaseFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyPhase{}).(string); ok && v != "" {
		return v
	}
	return "-"
}

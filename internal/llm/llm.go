package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// LLMClient issues one chat-style request and returns the model's JSON
// payload. Cross-cutting concerns (retries, logging, caching) are applied
// via Middleware.
type LLMClient interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	Close() error
}

// ErrEmptyEnvelope reports a response wrapper missing the expected candidate
// list or message content. Treated as a transient call failure (retryable).
var ErrEmptyEnvelope = errors.New("llm: response envelope has no content")

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

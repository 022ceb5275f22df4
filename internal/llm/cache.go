package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
)

// WithCache memoizes successful responses keyed by prompt+input. The feature
// flow re-sends the base structure, so identical calls within a run would
// otherwise be paid for twice. Errors are never cached.
func WithCache(size int) Middleware {
	if size <= 0 {
		size = 64
	}
	return func(next LLMClient) LLMClient {
		c, err := lru.New[string, json.RawMessage](size)
		if err != nil {
			// Only reachable with size <= 0, which is normalized above.
			return next
		}
		return &cached{next: next, lru: c}
	}
}

type cached struct {
	next LLMClient
	lru  *lru.Cache[string, json.RawMessage]
}

func (c *cached) Name() string { return c.next.Name() }
func (c *cached) Close() error { return c.next.Close() }

func (c *cached) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	key := cacheKey(prompt, input)
	if raw, ok := c.lru.Get(key); ok {
		return raw, nil
	}
	raw, err := c.next.GenerateJSON(ctx, prompt, input)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, raw)
	return raw, nil
}

func cacheKey(prompt string, input any) string {
	in, _ := json.Marshal(input)
	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	h.Write(in)
	return hex.EncodeToString(h.Sum(nil))
}

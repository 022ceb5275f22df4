package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenRouterClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cli, err := NewOpenRouterClient(OpenRouterConfig{
		APIKey:  "test-key",
		Model:   "test/model",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Referer: "https://github.com/George5562/Repomap",
		Title:   "Repomap",
	})
	require.NoError(t, err)
	return cli
}

func TestOpenRouter_RequestShape(t *testing.T) {
	var gotReq chatReq
	var gotAuth, gotReferer, gotTitle string
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	})

	raw, err := cli.GenerateJSON(context.Background(), "system prompt", map[string]any{"k": "v"})
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(raw))

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "https://github.com/George5562/Repomap", gotReferer)
	require.Equal(t, "Repomap", gotTitle)
	require.Equal(t, "test/model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, "system", gotReq.Messages[0].Role)
	require.Equal(t, "system prompt", gotReq.Messages[0].Content)
	require.Equal(t, "user", gotReq.Messages[1].Role)
	require.Equal(t, map[string]string{"type": "json_object"}, gotReq.ResponseFormat)
}

func TestOpenRouter_MalformedEnvelope(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	_, err := cli.GenerateJSON(context.Background(), "p", nil)
	require.ErrorIs(t, err, ErrEmptyEnvelope)
}

func TestOpenRouter_NonSuccessStatus(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusBadGateway)
	})
	_, err := cli.GenerateJSON(context.Background(), "p", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
	var pErr *PermanentError
	require.False(t, errors.As(err, &pErr), "5xx must stay retryable")
}

func TestOpenRouter_ContextLengthIsPermanent(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"context_length_exceeded"}}`))
	})
	_, err := cli.GenerateJSON(context.Background(), "p", nil)
	var pErr *PermanentError
	require.ErrorAs(t, err, &pErr)
}

func TestOpenRouter_RetriesEnvelopeFailures(t *testing.T) {
	var calls int
	inner := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	})
	cli := Wrap(inner, Retry(3, time.Millisecond))

	raw, err := cli.GenerateJSON(context.Background(), "p", nil)
	require.NoError(t, err)
	require.Equal(t, "{}", string(raw))
	require.Equal(t, 3, calls)
}

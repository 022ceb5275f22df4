package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"
)

// ErrUnrecoverable reports that no cascade strategy produced valid JSON.
var ErrUnrecoverable = errors.New("jsonutil: response is not recoverable JSON")

// DecodeRelaxed unmarshals model output into v with best effort. Providers
// inconsistently wrap JSON in prose, markdown fencing, or comments, so a
// single parse attempt fails too often in practice. Strategies are tried in
// order; the first success wins:
//  1. direct unmarshal (provider already returned bare JSON)
//  2. strip markdown code fences, then unmarshal
//  3. scrub fences, comments, non-printables and trailing commas, quote bare
//     keys, slice the first '{' .. last '}', then unmarshal
func DecodeRelaxed(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	if b := stripFences(raw); b != nil {
		if err := json.Unmarshal(b, v); err == nil {
			return nil
		}
	}
	if b := scrub(raw); b != nil {
		if err := json.Unmarshal(b, v); err == nil {
			return nil
		}
	}
	return ErrUnrecoverable
}

// DecodeRaw accepts json.RawMessage directly.
func DecodeRaw(raw json.RawMessage, v any) error {
	return DecodeRelaxed([]byte(raw), v)
}

// DecodeOrDefault never fails: when the full cascade is exhausted it leaves v
// untouched (the caller pre-populates it with a structurally valid default)
// and logs that decoding degraded. Pipeline callers must not crash the run on
// a single bad model response.
func DecodeOrDefault(raw []byte, v any, phase string) {
	if err := DecodeRelaxed(raw, v); err != nil {
		log.Printf("decode degraded (%s): falling back to default structure", phase)
	}
}

var (
	reFenceLine  = regexp.MustCompile("(?m)^\\s*```[a-zA-Z0-9]*\\s*$")
	reLineCmt    = regexp.MustCompile(`(?m)^\s*//.*$`)
	reBlockCmt   = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reTrailComma = regexp.MustCompile(`,\s*([}\]])`)
	reBareKey    = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// stripFences removes markdown code fence lines. Returns nil when the text
// has no fences, so callers can skip a redundant parse.
func stripFences(raw []byte) []byte {
	if !bytes.Contains(raw, []byte("```")) {
		return nil
	}
	out := reFenceLine.ReplaceAll(raw, nil)
	// Inline fences (same line as content) survive the line-anchored pass.
	out = bytes.ReplaceAll(out, []byte("```json"), nil)
	out = bytes.ReplaceAll(out, []byte("```"), nil)
	return bytes.TrimSpace(out)
}

// scrub is the most aggressive recovery: strip everything that commonly
// pollutes model JSON, then cut the substring between the first opening brace
// and the last closing brace.
func scrub(raw []byte) []byte {
	s := string(raw)
	if b := stripFences(raw); b != nil {
		s = string(b)
	}
	s = reBlockCmt.ReplaceAllString(s, "")
	s = reLineCmt.ReplaceAllString(s, "")
	s = stripNonPrintable(s)
	s = reTrailComma.ReplaceAllString(s, "$1")
	s = reBareKey.ReplaceAllString(s, `$1"$2":`)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return nil
	}
	return []byte(s[start : end+1])
}

func stripNonPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || r >= 0x20 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MarshalNoEscape encodes v into JSON without HTML-escaping <, > and &,
// keeping Mermaid arrows like "-->" readable in prompts and artifacts.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalIndentNoEscape is MarshalNoEscape with indentation, for artifacts
// written to disk.
func MarshalIndentNoEscape(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

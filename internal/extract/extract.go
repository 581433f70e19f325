// Package extract turns raw language-model replies into typed records.
//
// Decoding is all-or-nothing: either the whole reply parses as a JSON object
// and the caller fills missing keys with defaults, or the reply is discarded
// and the caller's fallback is returned. A reply that is mostly valid JSON is
// treated the same as prose.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Option configures Decode.
type Option func(*options)

type options struct {
	lenient bool
}

// Lenient strips markdown code fences and surrounding prose before parsing.
func Lenient() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// Decode parses text as a single JSON object into T. On any failure it
// returns fallback together with the parse error; the error is informational
// and callers are expected to carry on with the fallback.
func Decode[T any](text string, fallback T, opts ...Option) (T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	raw := strings.TrimSpace(text)
	if o.lenient {
		raw = CleanJSON(raw)
	}

	if !strings.HasPrefix(raw, "{") {
		return fallback, eris.New("extract: reply is not a json object")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	var out T
	if err := dec.Decode(&out); err != nil {
		return fallback, eris.Wrap(err, "extract: decode json")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fallback, eris.New("extract: trailing data after json object")
	}

	return out, nil
}

// CleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

// StringOr dereferences v or returns def when the key was absent or null.
func StringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

// SliceOr returns v or def when the key was absent or null.
func SliceOr[T any](v []T, def []T) []T {
	if v == nil {
		return def
	}
	return v
}

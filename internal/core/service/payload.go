package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrInvalidPayload = errors.New("commit payload is not a JSON object")
	ErrMissingField   = errors.New("missing field")
	ErrMalformedArray = errors.New("malformed file list")
	ErrDateParse      = errors.New("unparseable date")
)

// GitHubTimeLayout is the date format GitHub uses in commit payloads
const GitHubTimeLayout = "2006-01-02T15:04:05-0700"

// payload gives typed, per-field access to a raw commit document.
// Every accessor reports its own failure so callers can default one field at a time.
type payload struct {
	root jsoniter.Any
}

func decodePayload(data []byte) (payload, error) {
	if !jsoniter.Valid(data) {
		return payload{}, ErrInvalidPayload
	}
	root := jsoniter.Get(data)
	if root.ValueType() != jsoniter.ObjectValue {
		return payload{}, ErrInvalidPayload
	}
	return payload{root: root}, nil
}

func fieldName(path []interface{}) string {
	parts := make([]string, 0, len(path))
	for _, p := range path {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

func (p payload) str(path ...interface{}) (string, error) {
	v := p.root.Get(path...)
	if v.ValueType() != jsoniter.StringValue {
		return "", fmt.Errorf("%s: %w", fieldName(path), ErrMissingField)
	}
	return v.ToString(), nil
}

// files returns the string entries of an array field along with the array length.
// Non-string entries are dropped and reported as ErrMalformedArray, the count still includes them.
func (p payload) files(key string) ([]string, int, error) {
	v := p.root.Get(key)
	if v.ValueType() != jsoniter.ArrayValue {
		return nil, 0, fmt.Errorf("%s: %w", key, ErrMalformedArray)
	}

	n := v.Size()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if e := v.Get(i); e.ValueType() == jsoniter.StringValue {
			paths = append(paths, e.ToString())
		}
	}
	if len(paths) != n {
		return paths, n, fmt.Errorf("%s: %d of %d entries are not paths: %w", key, n-len(paths), n, ErrMalformedArray)
	}
	return paths, n, nil
}

func (p payload) date(key string, layouts []string) (time.Time, error) {
	s, err := p.str(key)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s %q: %w", key, s, ErrDateParse)
}

// Package request decodes tvm request documents. A document holds either a
// single request object or an array of them, written as JSON or YAML.
package request

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses raw into one or more requests. isBatch reports whether the
// document was an array, so callers can answer in the same shape.
func Decode[T any](raw []byte) (reqs []T, isBatch bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, true, err
		}
		isBatch = true
	case '{':
		var req T
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, false, err
		}
		reqs = []T{req}
	default:
		reqs, isBatch, err = decodeYAML[T](trimmed)
		if err != nil {
			return nil, isBatch, err
		}
	}

	if len(reqs) == 0 {
		return nil, isBatch, fmt.Errorf("empty input array")
	}
	return reqs, isBatch, nil
}

func decodeYAML[T any](raw []byte) ([]T, bool, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, false, fmt.Errorf("yaml: no document")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var reqs []T
		if err := root.Decode(&reqs); err != nil {
			return nil, true, fmt.Errorf("yaml: %w", err)
		}
		return reqs, true, nil
	case yaml.MappingNode:
		var req T
		if err := root.Decode(&req); err != nil {
			return nil, false, fmt.Errorf("yaml: %w", err)
		}
		return []T{req}, false, nil
	}
	return nil, false, fmt.Errorf("yaml: expected a mapping or a sequence, got %s", root.Tag)
}

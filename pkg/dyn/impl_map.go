/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

import (
	"math"
	"sort"
)

// mapOps is the canonical in-memory representation: map[string]any mappings,
// []any sequences and string/bool/int64/float64/nil scalars.
//
// # Implements:
//   - Ops
type mapOps struct{}

func (mapOps) Name() string { return "map" }

func (mapOps) Empty() any { return map[string]any{} }

func (mapOps) EmptyList() any { return []any{} }

func (mapOps) Null() any { return nil }

func (mapOps) CreateString(v string) any { return v }

func (mapOps) CreateBool(v bool) any { return v }

func (mapOps) CreateInt(v int64) any { return v }

func (mapOps) CreateFloat(v float64) any { return v }

func (mapOps) CreateList(items []any) any {
	out := make([]any, len(items))
	copy(out, items)
	return out
}

func (mapOps) CreateMap(entries []MapEntry) any {
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out
}

func (mapOps) GetString(node any) (string, error) {
	if s, ok := node.(string); ok {
		return s, nil
	}
	return "", ErrUnexpectedKind("string expected, got %T", node)
}

func (mapOps) GetBool(node any) (bool, error) {
	if b, ok := node.(bool); ok {
		return b, nil
	}
	return false, ErrUnexpectedKind("bool expected, got %T", node)
}

func (mapOps) GetInt(node any) (int64, error) {
	switch v := node.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int64(v), nil
		}
	}
	return 0, ErrUnexpectedKind("integer expected, got %T(%v)", node, node)
}

func (mapOps) GetFloat(node any) (float64, error) {
	switch v := node.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	}
	return 0, ErrUnexpectedKind("number expected, got %T", node)
}

func (mapOps) GetList(node any) ([]any, error) {
	if l, ok := node.([]any); ok {
		return l, nil
	}
	return nil, ErrUnexpectedKind("sequence expected, got %T", node)
}

func (mapOps) MapEntries(node any) ([]MapEntry, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, ErrUnexpectedKind("mapping expected, got %T", node)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]MapEntry, 0, len(m))
	for _, k := range keys {
		entries = append(entries, MapEntry{Key: k, Value: m[k]})
	}
	return entries, nil
}

func (mapOps) IsMap(node any) bool {
	_, ok := node.(map[string]any)
	return ok
}

func (mapOps) IsList(node any) bool {
	_, ok := node.([]any)
	return ok
}

func (mapOps) IsNil(node any) bool { return node == nil }

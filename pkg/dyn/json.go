/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

import (
	"bytes"

	"github.com/goccy/go-json"
)

// ReadJSON parses a JSON document into a Dynamic over the canonical map
// representation. Numbers are kept integral when they parse as integers.
func ReadJSON(data []byte) (Dynamic, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Dynamic{}, err
	}
	return New(MapOps(), canonJSON(raw)), nil
}

// WriteJSON renders a Dynamic of any representation as compact JSON with
// sorted object keys.
func WriteJSON(v Dynamic) ([]byte, error) {
	if _, ok := v.Ops.(mapOps); !ok {
		conv, err := Convert(v, MapOps())
		if err != nil {
			return nil, err
		}
		v = conv
	}
	return json.Marshal(v.Value)
}

func canonJSON(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = canonJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = canonJSON(e)
		}
		return out
	}
	return v
}

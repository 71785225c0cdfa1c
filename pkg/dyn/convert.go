/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

// Convert rebuilds v in the target representation. Source nodes are read
// through v.Ops and recreated through to, so the result shares no nodes
// with the source.
//
// Integral numbers stay integral; representation-specific extras a reader
// can not observe (comments, anchors) are not carried over.
func Convert(v Dynamic, to Ops) (Dynamic, error) {
	if v.Ops == to {
		return v, nil
	}
	node, err := convertNode(v.Ops, v.Value, to)
	if err != nil {
		return Dynamic{}, err
	}
	return New(to, node), nil
}

func convertNode(from Ops, node any, to Ops) (any, error) {
	switch {
	case from.IsNil(node):
		return to.Null(), nil
	case from.IsMap(node):
		entries, err := from.MapEntries(node)
		if err != nil {
			return nil, err
		}
		out := make([]MapEntry, 0, len(entries))
		for _, e := range entries {
			v, err := convertNode(from, e.Value, to)
			if err != nil {
				return nil, err
			}
			out = append(out, MapEntry{Key: e.Key, Value: v})
		}
		return to.CreateMap(out), nil
	case from.IsList(node):
		items, err := from.GetList(node)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			v, err := convertNode(from, it, to)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return to.CreateList(out), nil
	}
	if v, err := from.GetBool(node); err == nil {
		return to.CreateBool(v), nil
	}
	if v, err := from.GetInt(node); err == nil {
		return to.CreateInt(v), nil
	}
	if v, err := from.GetFloat(node); err == nil {
		return to.CreateFloat(v), nil
	}
	if v, err := from.GetString(node); err == nil {
		return to.CreateString(v), nil
	}
	return nil, ErrUnsupportedNode("node %v is not convertible", node)
}

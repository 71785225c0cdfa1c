/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

import "fmt"

// Dynamic pairs a value node with the Ops of its representation.
//
// Dynamics are values; methods never mutate the receiver. SetField and
// RemoveField return an updated copy built through Ops creators, so the
// original node (possibly shared) stays intact.
type Dynamic struct {
	Ops   Ops
	Value any
}

// New returns a Dynamic over the given node.
func New(ops Ops, value any) Dynamic {
	return Dynamic{Ops: ops, Value: value}
}

// Field returns the value stored under name if the Dynamic holds a mapping
// with such an entry.
func (d Dynamic) Field(name string) (Dynamic, bool) {
	entries, err := d.Ops.MapEntries(d.Value)
	if err != nil {
		return Dynamic{}, false
	}
	for _, e := range entries {
		if e.Key == name {
			return New(d.Ops, e.Value), true
		}
	}
	return Dynamic{}, false
}

// SetField returns a Dynamic whose mapping holds v under name, replacing an
// existing entry or appending a new one. A non-mapping Dynamic is returned
// unchanged.
func (d Dynamic) SetField(name string, v Dynamic) Dynamic {
	entries, err := d.Ops.MapEntries(d.Value)
	if err != nil {
		return d
	}
	out := make([]MapEntry, 0, len(entries)+1)
	replaced := false
	for _, e := range entries {
		if e.Key == name {
			out = append(out, MapEntry{Key: name, Value: v.Value})
			replaced = true
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, MapEntry{Key: name, Value: v.Value})
	}
	return New(d.Ops, d.Ops.CreateMap(out))
}

// RemoveField returns a Dynamic whose mapping no longer holds name. A
// non-mapping Dynamic or a mapping without the entry is returned unchanged.
func (d Dynamic) RemoveField(name string) Dynamic {
	entries, err := d.Ops.MapEntries(d.Value)
	if err != nil {
		return d
	}
	out := make([]MapEntry, 0, len(entries))
	found := false
	for _, e := range entries {
		if e.Key == name {
			found = true
			continue
		}
		out = append(out, e)
	}
	if !found {
		return d
	}
	return New(d.Ops, d.Ops.CreateMap(out))
}

// Equal reports structural equality. Representations may differ; values are
// compared through their Ops readers. Mapping entry order is ignored.
func (d Dynamic) Equal(o Dynamic) bool {
	return equalNodes(d.Ops, d.Value, o.Ops, o.Value)
}

// String renders the value as compact JSON for diagnostics.
func (d Dynamic) String() string {
	data, err := WriteJSON(d)
	if err != nil {
		return fmt.Sprintf("dynamic[%s]<%v>", d.Ops.Name(), d.Value)
	}
	return string(data)
}

func equalNodes(ao Ops, a any, bo Ops, b any) bool {
	switch {
	case ao.IsNil(a):
		return bo.IsNil(b)
	case ao.IsMap(a):
		if !bo.IsMap(b) {
			return false
		}
		ae, _ := ao.MapEntries(a)
		be, _ := bo.MapEntries(b)
		if len(ae) != len(be) {
			return false
		}
		bm := make(map[string]any, len(be))
		for _, e := range be {
			bm[e.Key] = e.Value
		}
		for _, e := range ae {
			bv, ok := bm[e.Key]
			if !ok || !equalNodes(ao, e.Value, bo, bv) {
				return false
			}
		}
		return true
	case ao.IsList(a):
		if !bo.IsList(b) {
			return false
		}
		al, _ := ao.GetList(a)
		bl, _ := bo.GetList(b)
		if len(al) != len(bl) {
			return false
		}
		for i := range al {
			if !equalNodes(ao, al[i], bo, bl[i]) {
				return false
			}
		}
		return true
	}
	if v, err := ao.GetBool(a); err == nil {
		w, err := bo.GetBool(b)
		return err == nil && v == w
	}
	if v, err := ao.GetInt(a); err == nil {
		w, err := bo.GetInt(b)
		return err == nil && v == w
	}
	if v, err := ao.GetFloat(a); err == nil {
		w, err := bo.GetFloat(b)
		return err == nil && v == w
	}
	if v, err := ao.GetString(a); err == nil {
		w, err := bo.GetString(b)
		return err == nil && v == w
	}
	return false
}

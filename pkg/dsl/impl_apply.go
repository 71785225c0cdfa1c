/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"github.com/voedger/datafix/pkg/dyn"
)

// ApplyRule migrates a value along its declared shape, children first: the
// traversal descends per the source shape, then applies the rule at the node
// itself. A node rewrite therefore observes a value whose interior is already
// migrated, and a shape found at any depth of a recursive type is rewritten
// at every occurrence. A rule that mentions no shape within the subtree is
// the identity over it.
//
// The traversal is forgiving on data that does not match the declared shape:
// absent fields are skipped, unknown or missing union discriminants pass the
// value through unchanged. Migration transforms what is there.
func ApplyRule(rule RewriteRule, t Type, v dyn.Dynamic) (dyn.Dynamic, error) {
	return applyNode(rule, t, v)
}

func applyNode(rule RewriteRule, t Type, v dyn.Dynamic) (dyn.Dynamic, error) {
	down, err := descend(rule, t, v)
	if err != nil {
		return v, err
	}
	if rw, ok := rule.Rewrite(t); ok {
		out, err := rw.Fn(down)
		if err != nil {
			return v, err
		}
		return out, nil
	}
	return down, nil
}

func descend(rule RewriteRule, t Type, v dyn.Dynamic) (dyn.Dynamic, error) {
	switch tt := t.(type) {
	case namedType:
		return applyNode(rule, tt.inner, v)

	case pointType:
		member, err := tt.Checked()
		if err != nil {
			return v, err
		}
		return applyNode(rule, member, v)

	case fieldType:
		fv, ok := v.Field(tt.name)
		if !ok {
			return v, nil
		}
		child, err := applyNode(rule, tt.inner, fv)
		if err != nil {
			return v, err
		}
		return v.SetField(tt.name, child), nil

	case productType:
		var err error
		for _, m := range tt.members {
			if v, err = applyNode(rule, m, v); err != nil {
				return v, err
			}
		}
		return v, nil

	case listType:
		items, err := v.Ops.GetList(v.Value)
		if err != nil {
			return v, nil
		}
		out := make([]any, len(items))
		for i, it := range items {
			child, err := applyNode(rule, tt.elem, dyn.New(v.Ops, it))
			if err != nil {
				return v, err
			}
			out[i] = child.Value
		}
		return dyn.New(v.Ops, v.Ops.CreateList(out)), nil

	case choiceType:
		tagField, ok := v.Field(tt.key)
		if !ok {
			return v, nil
		}
		tag, err := v.Ops.GetString(tagField.Value)
		if err != nil {
			return v, nil
		}
		member, ok := tt.Choice(tag)
		if !ok {
			return v, nil
		}
		return applyNode(rule, member, v)
	}

	// scalars and remainders are leaves
	return v, nil
}

// Placeholder returns a representative empty instance of the shape: empty
// mappings for keyed shapes with scalar zeroes below, empty sequences,
// the first declared alternative for unions. The build validation sweep
// probes composed rules with such instances.
func Placeholder(t Type, ops dyn.Ops) dyn.Dynamic {
	return dyn.New(ops, placeholderNode(t, ops, map[pointKey]bool{}))
}

type pointKey struct {
	fam   *Family
	index int
}

func placeholderNode(t Type, ops dyn.Ops, path map[pointKey]bool) any {
	switch tt := t.(type) {
	case scalarType:
		switch tt.kind {
		case stringKind:
			return ops.CreateString("")
		case boolKind:
			return ops.CreateBool(false)
		case intKind:
			return ops.CreateInt(0)
		case floatKind:
			return ops.CreateFloat(0)
		}
		return ops.Null()

	case namedType:
		return placeholderNode(tt.inner, ops, path)

	case fieldType:
		v := dyn.New(ops, ops.Empty())
		return v.SetField(tt.name, dyn.New(ops, placeholderNode(tt.inner, ops, path))).Value

	case productType:
		v := dyn.New(ops, ops.Empty())
		for _, m := range tt.members {
			if ft, ok := m.(fieldType); ok {
				v = v.SetField(ft.name, dyn.New(ops, placeholderNode(ft.inner, ops, path)))
			}
		}
		return v.Value

	case listType:
		// empty, keeps recursive shapes finite
		return ops.EmptyList()

	case choiceType:
		if len(tt.tags) == 0 {
			return ops.Empty()
		}
		tag := tt.tags[0]
		member, _ := tt.Choice(tag)
		v := dyn.New(ops, placeholderNode(member, ops, path))
		if !ops.IsMap(v.Value) {
			v = dyn.New(ops, ops.Empty())
		}
		return v.SetField(tt.key, dyn.New(ops, ops.CreateString(tag))).Value

	case pointType:
		k := pointKey{fam: tt.fam, index: tt.index}
		if path[k] {
			return ops.Empty()
		}
		member, err := tt.Checked()
		if err != nil {
			return ops.Empty()
		}
		path[k] = true
		n := placeholderNode(member, ops, path)
		delete(path, k)
		return n
	}

	// remainder
	return ops.Empty()
}

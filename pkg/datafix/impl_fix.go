/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package datafix

import (
	"fmt"
	"sync"

	"github.com/voedger/datafix/pkg/dsl"
	"github.com/voedger/datafix/pkg/dyn"
	"github.com/voedger/datafix/pkg/schemas"
)

type dataFix struct {
	name     string
	key      schemas.VersionKey
	makeRule func() (dsl.RewriteRule, error)

	once sync.Once
	rule dsl.RewriteRule
	err  error
}

func (f *dataFix) Name() string { return f.name }

func (f *dataFix) VersionKey() schemas.VersionKey { return f.key }

func (f *dataFix) Rule() (dsl.RewriteRule, error) {
	f.once.Do(func() {
		f.rule, f.err = f.makeRule()
		if f.err != nil {
			f.err = fmt.Errorf("fix %q at %v: %w", f.name, f.key, f.err)
		}
	})
	return f.rule, f.err
}

// inputSchema returns the generation whose shapes the fix consumes: the
// parent of the output schema, the output schema itself for the first
// generation.
func inputSchema(out *schemas.Schema) *schemas.Schema {
	if p := out.Parent(); p != nil {
		return p
	}
	return out
}

// valueRule gates fn on the named type: fn runs at every occurrence of the
// input generation's shape of the type, the shape advances to the output
// generation's one.
func valueRule(out *schemas.Schema, typeName string, fn func(dyn.Dynamic) (dyn.Dynamic, error)) (dsl.RewriteRule, error) {
	target, err := inputSchema(out).GetType(typeName)
	if err != nil {
		return nil, err
	}
	result, err := out.GetType(typeName)
	if err != nil {
		return nil, err
	}
	return dsl.IfSame(target, result, fn), nil
}

func renameField(from, to string) func(dyn.Dynamic) (dyn.Dynamic, error) {
	return func(v dyn.Dynamic) (dyn.Dynamic, error) {
		fv, ok := v.Field(from)
		if !ok {
			return v, nil
		}
		return v.RemoveField(from).SetField(to, fv), nil
	}
}

// retagRule rewrites the discriminant of a tagged union from one declared
// value to another, optionally reworking the payload afterwards. Both tags
// are checked against their generations when the rule is composed.
func retagRule(out *schemas.Schema, typeName, fromTag, toTag string, payloadFn func(dyn.Dynamic) (dyn.Dynamic, error)) (dsl.RewriteRule, error) {
	in := inputSchema(out)
	inChoice, err := in.FindChoiceType(typeName)
	if err != nil {
		return nil, err
	}
	if _, ok := inChoice.Choice(fromTag); !ok {
		return nil, schemas.ErrUnknownChoice("choice %q is not declared for type %q in schema %s", fromTag, typeName, in.VersionKey())
	}
	outChoice, err := out.FindChoiceType(typeName)
	if err != nil {
		return nil, err
	}
	if _, ok := outChoice.Choice(toTag); !ok {
		return nil, schemas.ErrUnknownChoice("choice %q is not declared for type %q in schema %s", toTag, typeName, out.VersionKey())
	}

	key := inChoice.KeyName()
	fn := func(v dyn.Dynamic) (dyn.Dynamic, error) {
		tagField, ok := v.Field(key)
		if !ok {
			return v, nil
		}
		tag, err := v.Ops.GetString(tagField.Value)
		if err != nil || tag != fromTag {
			return v, nil
		}
		v = v.SetField(key, dyn.New(v.Ops, v.Ops.CreateString(toTag)))
		if payloadFn != nil {
			return payloadFn(v)
		}
		return v, nil
	}
	return valueRule(out, typeName, fn)
}

/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package datafix

import (
	"github.com/voedger/datafix/pkg/dsl"
	"github.com/voedger/datafix/pkg/dyn"
	"github.com/voedger/datafix/pkg/schemas"
)

// NewBuilder returns a builder assembling the fixer of one data version.
// Fixes registered above the maximum version are dropped with a warning.
func NewBuilder(maxVersion schemas.VersionKey) *Builder {
	return &Builder{
		maxVersion: maxVersion,
		byKey:      make(map[schemas.VersionKey]*schemas.Schema),
	}
}

// NewFix returns a fix with a custom rule composed against the output
// schema. The rule is composed lazily, once, on first use.
func NewFix(out *schemas.Schema, name string, makeRule func(out *schemas.Schema) (dsl.RewriteRule, error)) IDataFix {
	return &dataFix{
		name:     name,
		key:      out.VersionKey(),
		makeRule: func() (dsl.RewriteRule, error) { return makeRule(out) },
	}
}

// NewValueFix returns a fix transforming the value at every occurrence of
// the named type. The transformation consumes values shaped per the parent
// generation and produces values shaped per the output one.
func NewValueFix(out *schemas.Schema, name, typeName string, fn func(dyn.Dynamic) (dyn.Dynamic, error)) IDataFix {
	return NewFix(out, name, func(out *schemas.Schema) (dsl.RewriteRule, error) {
		return valueRule(out, typeName, fn)
	})
}

// NewRenameFieldFix returns a fix moving a field of the named type under a
// new key. Values without the field pass unchanged.
func NewRenameFieldFix(out *schemas.Schema, name, typeName, fromField, toField string) IDataFix {
	return NewValueFix(out, name, typeName, renameField(fromField, toField))
}

// NewRetagFix returns a fix moving values of the named tagged union from one
// discriminant to another, optionally reworking the payload with payloadFn
// after the discriminant is replaced. Values under other discriminants pass
// unchanged. Rule composition fails unless fromTag is declared by the parent
// generation and toTag by the output one.
func NewRetagFix(out *schemas.Schema, name, typeName, fromTag, toTag string, payloadFn func(dyn.Dynamic) (dyn.Dynamic, error)) IDataFix {
	return NewFix(out, name, func(out *schemas.Schema) (dsl.RewriteRule, error) {
		return retagRule(out, typeName, fromTag, toTag, payloadFn)
	})
}

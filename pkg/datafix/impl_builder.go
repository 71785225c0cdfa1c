/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package datafix

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/voedger/datafix/pkg/coreutils"
	"github.com/voedger/datafix/pkg/dsl"
	"github.com/voedger/datafix/pkg/objcache"
	"github.com/voedger/datafix/pkg/schemas"
)

// Builder accumulates the schema chain and the fix list of one data version,
// then builds the frozen fixer. Assembly is a single-writer startup activity
// and needs no locking; the built fixer does not observe later mutations.
type Builder struct {
	maxVersion schemas.VersionKey
	keys       []schemas.VersionKey
	byKey      map[schemas.VersionKey]*schemas.Schema
	fixes      []IDataFix
}

// AddSchema constructs the schema of one generation through the factory and
// registers it. The parent passed to the factory is the already registered
// schema with the greatest key at or below key−1; a key preceding the whole
// chain gets the first schema; the first registered schema gets none.
func (b *Builder) AddSchema(major, minor int, factory SchemaFactory) (*schemas.Schema, error) {
	key := schemas.MakeKey(major, minor)
	var parent *schemas.Schema
	if len(b.keys) > 0 {
		parent = floorSchema(b.keys, b.byKey, key-1)
	}
	s, err := factory(key, parent)
	if err != nil {
		return nil, err
	}
	if _, ok := b.byKey[key]; !ok {
		at, _ := slices.BinarySearch(b.keys, key)
		b.keys = slices.Insert(b.keys, at, key)
	}
	b.byKey[key] = s
	return s, nil
}

// AddFixer appends the fix to the ordered fix list. A fix whose major version
// exceeds the builder's maximum is dropped with a warning, not an error: one
// fix set can serve builders targeting earlier data versions.
func (b *Builder) AddFixer(fix IDataFix) {
	if fix.VersionKey().Major() > b.maxVersion.Major() {
		logger.Warning(fmt.Sprintf("ignored fix %q for version %v: the current data version is %v", fix.Name(), fix.VersionKey(), b.maxVersion))
		return
	}
	b.fixes = append(b.fixes, fix)
}

// Build constructs the frozen fixer and runs the validation sweep: for every
// version with at least one fix and every type of that version's schema, the
// rule migrating that version's data onward to the maximum version is
// composed and probed on a placeholder instance of the type. Sweep failures
// are joined and returned together with the fixer, which stays usable; the
// caller decides whether to proceed.
func (b *Builder) Build(ctx context.Context) (IDataFixer, error) {
	f := b.newFixer()

	var units []sweepUnit
	for _, key := range f.fixKeys {
		s, err := f.Schema(key)
		if err != nil {
			return f, err
		}
		for _, name := range s.Types() {
			units = append(units, sweepUnit{key: key, typeName: name})
		}
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("validating %d composed rules over %d fix versions", len(units), len(f.fixKeys)))
	}

	var failures []error
	err := coreutils.ScatterGather(ctx, units, runtime.NumCPU(),
		func(u sweepUnit) (failure error, _ error) {
			// a failed unit is gathered, it must not cancel the sweep
			return f.validate(u.key, u.typeName), nil
		},
		func(failure error) {
			if failure != nil {
				failures = append(failures, failure)
			}
		},
	)
	if err != nil {
		return f, err
	}
	return f, errors.Join(failures...)
}

func (b *Builder) newFixer() *fixer {
	fixKeys := make([]schemas.VersionKey, 0, len(b.fixes))
	for _, fix := range b.fixes {
		if !slices.Contains(fixKeys, fix.VersionKey()) {
			fixKeys = append(fixKeys, fix.VersionKey())
		}
	}
	slices.Sort(fixKeys)
	return &fixer{
		maxVersion: b.maxVersion,
		keys:       slices.Clone(b.keys),
		byKey:      maps.Clone(b.byKey),
		fixes:      slices.Clone(b.fixes),
		fixKeys:    fixKeys,
		rules:      objcache.New[ruleKey, dsl.RewriteRule](rulesCacheSize, nil),
	}
}

type sweepUnit struct {
	key      schemas.VersionKey
	typeName string
}

// floorSchema returns the schema with the greatest key at or below the given
// one; keys preceding the whole chain resolve to the first schema.
func floorSchema(keys []schemas.VersionKey, byKey map[schemas.VersionKey]*schemas.Schema, key schemas.VersionKey) *schemas.Schema {
	if len(keys) == 0 {
		return nil
	}
	at, found := slices.BinarySearch(keys, key)
	switch {
	case found:
		return byKey[key]
	case at == 0:
		return byKey[keys[0]]
	}
	return byKey[keys[at-1]]
}

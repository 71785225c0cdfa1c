/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package datafix

import (
	"errors"
	"fmt"

	"github.com/untillpro/goutils/logger"
	"golang.org/x/exp/slices"

	"github.com/voedger/datafix/pkg/dsl"
	"github.com/voedger/datafix/pkg/dyn"
	"github.com/voedger/datafix/pkg/objcache"
	"github.com/voedger/datafix/pkg/schemas"
)

const rulesCacheSize = 64

type ruleKey struct {
	from schemas.VersionKey
	to   schemas.VersionKey
}

// fixer is the frozen migration engine: a read-only schema chain and fix
// list plus the concurrency safe composed rule cache. Racing callers may
// compose the same range twice; both results are equivalent and either may
// end up cached.
type fixer struct {
	maxVersion schemas.VersionKey
	keys       []schemas.VersionKey
	byKey      map[schemas.VersionKey]*schemas.Schema
	fixes      []IDataFix
	fixKeys    []schemas.VersionKey
	rules      objcache.ICache[ruleKey, dsl.RewriteRule]
}

func (f *fixer) Schema(key schemas.VersionKey) (*schemas.Schema, error) {
	s := floorSchema(f.keys, f.byKey, key)
	if s == nil {
		return nil, ErrUnknownSchema("no schema covers version %v", key)
	}
	return s, nil
}

func (f *fixer) Update(typeName string, input dyn.Dynamic, from, to schemas.VersionKey) (dyn.Dynamic, error) {
	if from >= to {
		return input, nil
	}
	s, err := f.Schema(from)
	if err != nil {
		return input, err
	}
	t, err := s.GetType(typeName)
	if err != nil {
		return input, err
	}
	rule, err := f.rule(from, to)
	if err != nil {
		return input, err
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("updating %q from %v to %v", typeName, from, to))
	}
	return dsl.ApplyRule(rule, t, input)
}

// normalizeFrom lowers the range start to the nearest fix version at or
// below it, so every range spanning the same fix set shares one cache entry.
func (f *fixer) normalizeFrom(from schemas.VersionKey) schemas.VersionKey {
	at, found := slices.BinarySearch(f.fixKeys, from)
	switch {
	case found:
		return from
	case at == 0:
		return -1
	}
	return f.fixKeys[at-1]
}

// rule returns the composed, optimized rewrite rule covering every fix with
// version key in (from, to]: version order, insertion order among equals.
// Zero covered fixes compose to the identity.
func (f *fixer) rule(from, to schemas.VersionKey) (dsl.RewriteRule, error) {
	if from >= to {
		return dsl.Nop(), nil
	}
	key := ruleKey{from: f.normalizeFrom(from), to: to}
	if rule, ok := f.rules.Get(key); ok {
		return rule, nil
	}

	var picked []IDataFix
	for _, fix := range f.fixes {
		if k := fix.VersionKey(); k > key.from && k <= to {
			picked = append(picked, fix)
		}
	}
	slices.SortStableFunc(picked, func(a, b IDataFix) bool { return a.VersionKey() < b.VersionKey() })

	rules := make([]dsl.RewriteRule, 0, len(picked))
	var errs []error
	for _, fix := range picked {
		r, err := fix.Rule()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, r)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	rule := dsl.Optimize(dsl.Seq(rules...))
	f.rules.Put(key, rule)
	return rule, nil
}

// validate composes the rule covering the keyed version's fixes onward and
// probes it on a placeholder instance of the named type. The range starts
// just below the version so the version's own fixes are composed too.
func (f *fixer) validate(key schemas.VersionKey, typeName string) error {
	s, err := f.Schema(key)
	if err != nil {
		return err
	}
	t, err := s.GetType(typeName)
	if err != nil {
		return err
	}
	rule, err := f.rule(key-1, f.maxVersion)
	if err != nil {
		return fmt.Errorf("validate %q at %v: %w", typeName, key, err)
	}
	if _, err := dsl.ApplyRule(rule, t, dsl.Placeholder(t, dyn.MapOps())); err != nil {
		return fmt.Errorf("validate %q at %v: %w", typeName, key, err)
	}
	return nil
}

/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package schemas

import (
	"fmt"

	"github.com/voedger/datafix/pkg/dsl"
)

// VersionKey identifies one schema generation: a major version paired with a
// minor slot, so a hotfix schema can be inserted between two majors without
// renumbering. Keys order naturally, major first.
type VersionKey int

const (
	versionKeyFactor = 10
	maxMinorVersion  = versionKeyFactor - 1
)

// MakeKey pairs major and minor into an ordered key. Panics when major is
// negative or minor does not fit the [0, 9] slot: version keys are
// construction time constants, an invalid one is a declaration bug.
func MakeKey(major, minor int) VersionKey {
	if major < 0 {
		panic(ErrOutOfBounds("negative major version %d", major))
	}
	if minor < 0 || minor > maxMinorVersion {
		panic(ErrOutOfBounds("minor version %d does not fit [0, %d]", minor, maxMinorVersion))
	}
	return VersionKey(major*versionKeyFactor + minor)
}

// Major returns the major version of the key.
func (k VersionKey) Major() int { return int(k) / versionKeyFactor }

// Minor returns the minor version of the key.
func (k VersionKey) Minor() int { return int(k) % versionKeyFactor }

// Name returns the display name, `V2` or `V2.1`.
func (k VersionKey) Name() string {
	if m := k.Minor(); m != 0 {
		return fmt.Sprintf("V%d.%d", k.Major(), m)
	}
	return fmt.Sprintf("V%d", k.Major())
}

func (k VersionKey) String() string { return k.Name() }

// Group is a named set of template factories: one well-known registry
// (entities, block entities) of a schema generation.
type Group map[string]func() dsl.Template

// Register puts a template factory under name, replacing an earlier one.
func (g Group) Register(name string, f func() dsl.Template) { g[name] = f }

// RegisterSimple registers the pass-through remainder template under name.
func (g Group) RegisterSimple(name string) { g.Register(name, dsl.Remainder) }

// Templates resolves every factory of the group.
func (g Group) Templates() map[string]dsl.Template {
	out := make(map[string]dsl.Template, len(g))
	for name, f := range g {
		out[name] = f()
	}
	return out
}

// TypesFunc declares the type set of one schema generation: it registers
// templates against the builder, typically folding the resolved entity and
// block entity groups into tagged unions.
type TypesFunc func(b *Builder, entities, blockEntities Group)

// GroupFunc declares one well-known type group.
type GroupFunc func(b *Builder) Group

// Declarations carries the three declaration capabilities of a schema
// generation. A nil capability inherits the parent's one, resolved once at
// construction; inheriting without a parent fails with ErrNoParentError.
type Declarations struct {
	Types         TypesFunc
	Entities      GroupFunc
	BlockEntities GroupFunc
}

// capabilities is the resolved, own-or-inherited form of Declarations kept
// on the built schema, so grandchildren inherit the same functions without
// walking the chain.
type capabilities struct {
	types         TypesFunc
	entities      GroupFunc
	blockEntities GroupFunc
}

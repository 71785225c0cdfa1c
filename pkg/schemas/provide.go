/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package schemas

import (
	"golang.org/x/exp/slices"
)

// New builds the frozen schema of one data version.
//
// Construction runs in five steps: resolve the declaration capabilities
// (own or inherited from parent), run the group hooks and the types hook
// against a mutable builder, build the fixed point family when recursive
// names were declared, resolve every declared name to a concrete type, and
// freeze the result.
func New(key VersionKey, parent *Schema, d Declarations) (*Schema, error) {
	caps, err := resolveCapabilities(key, parent, d)
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	entities := caps.entities(b)
	blockEntities := caps.blockEntities(b)
	caps.types(b, entities, blockEntities)

	fam, err := buildFamily(key, b)
	if err != nil {
		return nil, err
	}

	types, templates, err := resolveTypes(b, fam)
	if err != nil {
		return nil, err
	}

	names := slices.Clone(b.names)
	slices.Sort(names)

	recursive := make(map[string]int, len(b.recursive))
	for name, id := range b.recursive {
		recursive[name] = id
	}

	return &Schema{
		key:       key,
		parent:    parent,
		caps:      caps,
		names:     names,
		types:     types,
		templates: templates,
		recursive: recursive,
		family:    fam,
	}, nil
}

/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

// MapOps returns the Ops of the canonical in-memory representation
// (map[string]any, []any, Go scalars).
func MapOps() Ops {
	return mapOps{}
}

// YamlOps returns the Ops over yaml.v3 node trees.
func YamlOps() Ops {
	return yamlOps{}
}

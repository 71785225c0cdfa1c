/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

// Ops abstracts one concrete representation of the generic value tree
// (scalars, sequences, keyed mappings). Migration code never touches a
// representation directly; it goes through the Ops of the Dynamic that
// carries the value.
//
// Node values are opaque to callers. A node obtained from one Ops must not
// be fed to another; use Convert to cross representations.
type Ops interface {
	// Name returns the representation name, e.g. «map» or «yaml».
	Name() string

	// Empty returns the canonical empty mapping node.
	Empty() any

	// EmptyList returns the canonical empty sequence node.
	EmptyList() any

	// Null returns the canonical null node.
	Null() any

	CreateString(v string) any
	CreateBool(v bool) any
	CreateInt(v int64) any
	CreateFloat(v float64) any
	CreateList(items []any) any
	CreateMap(entries []MapEntry) any

	// GetString returns the string scalar held by node.
	// ErrUnexpectedKindError if node is not a string scalar.
	GetString(node any) (string, error)

	// GetBool returns the boolean scalar held by node.
	// ErrUnexpectedKindError if node is not a boolean scalar.
	GetBool(node any) (bool, error)

	// GetInt returns the integer scalar held by node.
	// ErrUnexpectedKindError if node is not an integral number.
	GetInt(node any) (int64, error)

	// GetFloat returns the numeric scalar held by node.
	// ErrUnexpectedKindError if node is not a number.
	GetFloat(node any) (float64, error)

	// GetList returns the elements of a sequence node.
	// ErrUnexpectedKindError if node is not a sequence.
	GetList(node any) ([]any, error)

	// MapEntries returns the entries of a mapping node in representation
	// order. ErrUnexpectedKindError if node is not a mapping.
	MapEntries(node any) ([]MapEntry, error)

	IsMap(node any) bool
	IsList(node any) bool
	IsNil(node any) bool
}

// MapEntry is one key-value pair of a mapping node. Keys are strings in
// every supported representation.
type MapEntry struct {
	Key   string
	Value any
}

/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"fmt"

	"github.com/voedger/datafix/pkg/dyn"
)

// Template is a composable description of a value shape, not yet bound to a
// recursive type family. Templates are built with the package constructors
// (Product, Field, List, TaggedChoice, …) and resolved into concrete types
// by Apply.
type Template interface {
	fmt.Stringer

	// Apply resolves the template against the family at the given member
	// index. Pass a nil family and index −1 outside a fixed point; then any
	// recursion reference inside the template fails with
	// ErrInvalidRecursiveStateError.
	Apply(fam *Family, index int) (Type, error)
}

// Type is a resolved, immutable value shape. Types are comparable through
// structural equality and safe for unsynchronized concurrent reads.
type Type interface {
	fmt.Stringer

	// Equal reports structural equality.
	Equal(Type) bool
}

// ChoiceType is the resolved shape of a tagged union: a keyed mapping whose
// member shape is selected by the string discriminant stored under KeyName.
type ChoiceType interface {
	Type

	// KeyName returns the discriminant field name.
	KeyName() string

	// Choices returns the sorted discriminant values.
	Choices() []string

	// Choice returns the member shape for the given discriminant value.
	Choice(tag string) (Type, bool)
}

// Rewrite is one applicable node transformation: the shape the node has
// after the transformation and the function producing the new value.
type Rewrite struct {
	Type Type
	Fn   func(v dyn.Dynamic) (dyn.Dynamic, error)
}

// RewriteRule decides, node shape by node shape, whether a transformation
// applies. A rule that matches nothing is the identity.
//
// Rules must be safe for concurrent use; ApplyRule calls Rewrite from the
// traversal without synchronization.
type RewriteRule interface {
	// Rewrite returns the transformation for a node of the given shape,
	// or false if the rule does not apply there.
	Rewrite(t Type) (Rewrite, bool)
}

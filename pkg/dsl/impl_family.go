/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"golang.org/x/exp/slices"
)

// Member is one fixed point member: a recursive type name and its raw
// template. The member index is its position in the slice passed to
// NewFamily.
type Member struct {
	Name     string
	Template Template
}

// Family is the fixed point of a set of mutually recursive templates. All
// recursive names of one schema generation share one family, so recursion
// references among them resolve to final member shapes.
//
// A family is immutable once built and safe for unsynchronized concurrent
// reads.
type Family struct {
	name    string
	members []Member
	or      Template
	points  []Type
	arena   []Type
}

// NewFamily builds the fixed point in two phases. First every member keeps
// the index of its registration position and gets a raw handle; then each
// member template, wrapped as a named checked alternative and reduced with
// the or combinator, is resolved at its own index into the member arena.
// Recursion references resolve to handles, so member shapes stay finite.
func NewFamily(name string, members []Member) (*Family, error) {
	if len(members) == 0 {
		return nil, ErrInvalidRecursiveState("family %q has no members", name)
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m.Name] {
			return nil, ErrInvalidRecursiveState("duplicate member %q in family %q", m.Name, name)
		}
		seen[m.Name] = true
	}

	f := &Family{name: name, members: slices.Clone(members)}

	for i, m := range f.members {
		chk := Check(m.Name, i, Named(m.Name, m.Template))
		if f.or == nil {
			f.or = chk
		} else {
			f.or = Or(f.or, chk)
		}
	}

	f.points = make([]Type, len(f.members))
	for i := range f.members {
		f.points[i] = pointType{fam: f, index: i}
	}

	f.arena = make([]Type, len(f.members))
	for i := range f.members {
		typ, ok, err := applyMatch(f.or, f, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidRecursiveState("no member of family %q matches index %d", name, i)
		}
		f.arena[i] = typ
	}

	return f, nil
}

func (f *Family) Name() string { return f.name }

// Len returns the member count.
func (f *Family) Len() int { return len(f.members) }

// Point returns the raw member handle. Panics on an out of range index:
// indices are assigned by the registering code, so an unknown index is a
// construction bug.
func (f *Family) Point(index int) Type {
	if index < 0 || index >= len(f.points) {
		panic(ErrInvalidRecursiveState("family %q has no member %d", f.name, index))
	}
	return f.points[index]
}

// Member returns the checked member type at the given index.
func (f *Family) Member(index int) (Type, error) {
	if index < 0 || index >= len(f.arena) {
		return nil, ErrInvalidRecursiveState("family %q has no member %d", f.name, index)
	}
	return f.arena[index], nil
}

func (f *Family) memberName(index int) string {
	if index < 0 || index >= len(f.members) {
		return "?"
	}
	return f.members[index].Name
}

/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Unfold resolves a recursion handle to its checked member type. Any other
// type is returned unchanged.
func Unfold(t Type) (Type, error) {
	if pt, ok := t.(pointType); ok {
		return pt.Checked()
	}
	return t, nil
}

// AsChoice finds the tagged union within t, unwrapping name tags and
// recursion handles.
func AsChoice(t Type) (ChoiceType, bool) {
	for {
		switch tt := t.(type) {
		case choiceType:
			return tt, true
		case namedType:
			t = tt.inner
		case pointType:
			inner, err := tt.Checked()
			if err != nil {
				return nil, false
			}
			t = inner
		default:
			return nil, false
		}
	}
}

type remainderType struct{}

func (remainderType) Equal(o Type) bool {
	_, ok := o.(remainderType)
	return ok
}

func (remainderType) String() string { return "remainder" }

type scalarType struct{ kind scalarKind }

func (t scalarType) Equal(o Type) bool {
	ot, ok := o.(scalarType)
	return ok && t.kind == ot.kind
}

func (t scalarType) String() string { return t.kind.String() }

type namedType struct {
	name  string
	inner Type
}

func (t namedType) Equal(o Type) bool {
	ot, ok := o.(namedType)
	return ok && t.name == ot.name && t.inner.Equal(ot.inner)
}

func (t namedType) String() string { return fmt.Sprintf("Named[%s, %s]", t.name, t.inner) }

type fieldType struct {
	name     string
	optional bool
	inner    Type
}

func (t fieldType) Equal(o Type) bool {
	ot, ok := o.(fieldType)
	return ok && t.name == ot.name && t.optional == ot.optional && t.inner.Equal(ot.inner)
}

func (t fieldType) String() string {
	if t.optional {
		return fmt.Sprintf("%s?: %s", t.name, t.inner)
	}
	return fmt.Sprintf("%s: %s", t.name, t.inner)
}

type productType struct{ members []Type }

func (t productType) Equal(o Type) bool {
	ot, ok := o.(productType)
	if !ok || len(t.members) != len(ot.members) {
		return false
	}
	for i := range t.members {
		if !t.members[i].Equal(ot.members[i]) {
			return false
		}
	}
	return true
}

func (t productType) String() string {
	ss := make([]string, len(t.members))
	for i, m := range t.members {
		ss[i] = m.String()
	}
	return "(" + strings.Join(ss, ", ") + ")"
}

type listType struct{ elem Type }

func (t listType) Equal(o Type) bool {
	ot, ok := o.(listType)
	return ok && t.elem.Equal(ot.elem)
}

func (t listType) String() string { return fmt.Sprintf("List[%s]", t.elem) }

type choiceType struct {
	key     string
	tags    []string
	choices map[string]Type
}

func (t choiceType) KeyName() string { return t.key }

func (t choiceType) Choices() []string { return slices.Clone(t.tags) }

func (t choiceType) Choice(tag string) (Type, bool) {
	m, ok := t.choices[tag]
	return m, ok
}

func (t choiceType) Equal(o Type) bool {
	ot, ok := o.(choiceType)
	if !ok || t.key != ot.key || !slices.Equal(t.tags, ot.tags) {
		return false
	}
	for _, tag := range t.tags {
		if !t.choices[tag].Equal(ot.choices[tag]) {
			return false
		}
	}
	return true
}

func (t choiceType) String() string {
	return fmt.Sprintf("TaggedChoice[%s; %s]", t.key, strings.Join(t.tags, "|"))
}

// pointType is the raw handle of a fixed point member. Equality is by member
// position and name, not by family identity, so shapes referring to the same
// member across schema generations compare equal.
type pointType struct {
	fam   *Family
	index int
}

// Checked unfolds the handle to the member type built into the family arena.
func (t pointType) Checked() (Type, error) { return t.fam.Member(t.index) }

func (t pointType) Equal(o Type) bool {
	ot, ok := o.(pointType)
	return ok && t.index == ot.index && t.fam.memberName(t.index) == ot.fam.memberName(ot.index)
}

func (t pointType) String() string {
	return fmt.Sprintf("Point[%d:%s]", t.index, t.fam.memberName(t.index))
}

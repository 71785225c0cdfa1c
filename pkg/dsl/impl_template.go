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

// Remainder returns the pass-through template: any value conforms and is
// carried unchanged. It is the default shape for loosely specified data.
func Remainder() Template { return remainderT{} }

// String returns the string scalar template.
func String() Template { return scalarT{stringKind} }

// Bool returns the boolean scalar template.
func Bool() Template { return scalarT{boolKind} }

// Int returns the integer scalar template.
func Int() Template { return scalarT{intKind} }

// Float returns the floating point scalar template.
func Float() Template { return scalarT{floatKind} }

// Field returns a required keyed member of a product.
func Field(name string, t Template) Template { return fieldT{name: name, t: t} }

// Optional returns an optional keyed member of a product.
func Optional(name string, t Template) Template { return fieldT{name: name, t: t, optional: true} }

// Product combines keyed members over one mapping value.
func Product(members ...Template) Template { return productT{members: members} }

// List returns the homogeneous sequence template.
func List(elem Template) Template { return listT{elem: elem} }

// Named tags a template with a registered type name.
func Named(name string, t Template) Template { return namedT{name: name, t: t} }

// TaggedChoice returns a tagged union dispatching on the string discriminant
// stored under key within the value itself.
func TaggedChoice(key string, choices map[string]Template) Template {
	return taggedT{key: key, choices: choices}
}

// Check marks a fixed point member: the template resolves only when applied
// at its own member index.
func Check(name string, index int, t Template) Template {
	return checkT{name: name, index: index, t: t}
}

// Or combines two alternatives; the first one matching the applied index
// wins.
func Or(a, b Template) Template { return orT{a: a, b: b} }

// Id returns a bare recursion reference to the family member with the given
// index. Unlike re-expanding the member template, the reference keeps
// self-referential shapes finite.
func Id(index int) Template { return idT{index: index} }

// applyMatch resolves t at the given member index, reporting whether some
// alternative matched the index. Non-checked templates match any index.
func applyMatch(t Template, fam *Family, index int) (Type, bool, error) {
	switch tt := t.(type) {
	case checkT:
		if tt.index != index {
			return nil, false, nil
		}
		typ, err := tt.t.Apply(fam, index)
		return typ, err == nil, err
	case orT:
		typ, ok, err := applyMatch(tt.a, fam, index)
		if ok || err != nil {
			return typ, ok, err
		}
		return applyMatch(tt.b, fam, index)
	}
	typ, err := t.Apply(fam, index)
	return typ, err == nil, err
}

type remainderT struct{}

func (remainderT) Apply(*Family, int) (Type, error) { return remainderType{}, nil }
func (remainderT) String() string                   { return "remainder" }

type scalarKind uint8

const (
	stringKind scalarKind = iota
	boolKind
	intKind
	floatKind
)

func (k scalarKind) String() string {
	switch k {
	case stringKind:
		return "string"
	case boolKind:
		return "bool"
	case intKind:
		return "int"
	case floatKind:
		return "float"
	}
	return fmt.Sprintf("scalarKind(%d)", k)
}

type scalarT struct{ kind scalarKind }

func (t scalarT) Apply(*Family, int) (Type, error) { return scalarType{kind: t.kind}, nil }
func (t scalarT) String() string                   { return t.kind.String() }

type fieldT struct {
	name     string
	t        Template
	optional bool
}

func (t fieldT) Apply(fam *Family, index int) (Type, error) {
	inner, err := t.t.Apply(fam, index)
	if err != nil {
		return nil, err
	}
	return fieldType{name: t.name, optional: t.optional, inner: inner}, nil
}

func (t fieldT) String() string {
	if t.optional {
		return fmt.Sprintf("%s?: %s", t.name, t.t)
	}
	return fmt.Sprintf("%s: %s", t.name, t.t)
}

type productT struct{ members []Template }

func (t productT) Apply(fam *Family, index int) (Type, error) {
	members := make([]Type, len(t.members))
	for i, m := range t.members {
		inner, err := m.Apply(fam, index)
		if err != nil {
			return nil, err
		}
		members[i] = inner
	}
	return productType{members: members}, nil
}

func (t productT) String() string {
	ss := make([]string, len(t.members))
	for i, m := range t.members {
		ss[i] = m.String()
	}
	return "(" + strings.Join(ss, ", ") + ")"
}

type listT struct{ elem Template }

func (t listT) Apply(fam *Family, index int) (Type, error) {
	elem, err := t.elem.Apply(fam, index)
	if err != nil {
		return nil, err
	}
	return listType{elem: elem}, nil
}

func (t listT) String() string { return fmt.Sprintf("List[%s]", t.elem) }

type namedT struct {
	name string
	t    Template
}

func (t namedT) Apply(fam *Family, index int) (Type, error) {
	inner, err := t.t.Apply(fam, index)
	if err != nil {
		return nil, err
	}
	return namedType{name: t.name, inner: inner}, nil
}

func (t namedT) String() string { return fmt.Sprintf("Named[%s, %s]", t.name, t.t) }

type taggedT struct {
	key     string
	choices map[string]Template
}

func (t taggedT) Apply(fam *Family, index int) (Type, error) {
	tags := make([]string, 0, len(t.choices))
	for tag := range t.choices {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	choices := make(map[string]Type, len(t.choices))
	for _, tag := range tags {
		inner, err := t.choices[tag].Apply(fam, index)
		if err != nil {
			return nil, err
		}
		choices[tag] = inner
	}
	return choiceType{key: t.key, tags: tags, choices: choices}, nil
}

func (t taggedT) String() string {
	tags := make([]string, 0, len(t.choices))
	for tag := range t.choices {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return fmt.Sprintf("TaggedChoice[%s; %s]", t.key, strings.Join(tags, "|"))
}

type checkT struct {
	name  string
	index int
	t     Template
}

func (t checkT) Apply(fam *Family, index int) (Type, error) {
	if t.index != index {
		return nil, ErrInvalidRecursiveState("checked template %q (member %d) applied at index %d", t.name, t.index, index)
	}
	return t.t.Apply(fam, index)
}

func (t checkT) String() string { return fmt.Sprintf("Check[%s, %d, %s]", t.name, t.index, t.t) }

type orT struct{ a, b Template }

func (t orT) Apply(fam *Family, index int) (Type, error) {
	typ, ok, err := applyMatch(t, fam, index)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidRecursiveState("no alternative of %s matches index %d", t, index)
	}
	return typ, nil
}

func (t orT) String() string { return fmt.Sprintf("(%s | %s)", t.a, t.b) }

type idT struct{ index int }

func (t idT) Apply(fam *Family, _ int) (Type, error) {
	if fam == nil {
		return nil, ErrInvalidRecursiveState("recursion reference Id[%d] outside a type family", t.index)
	}
	if t.index < 0 || t.index >= fam.Len() {
		return nil, ErrInvalidRecursiveState("recursion reference Id[%d] out of family %q range", t.index, fam.Name())
	}
	return fam.Point(t.index), nil
}

func (t idT) String() string { return fmt.Sprintf("Id[%d]", t.index) }

/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package schemas

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/voedger/datafix/pkg/dsl"
)

// Schema is the frozen type registry of one data version. Every declared
// name is resolved to a concrete type at construction; the schema exposes
// no mutation operations and is safe for unsynchronized concurrent reads.
type Schema struct {
	key       VersionKey
	parent    *Schema
	caps      capabilities
	names     []string
	types     map[string]dsl.Type
	templates map[string]dsl.Template
	recursive map[string]int
	family    *dsl.Family
}

// VersionKey returns the schema generation key.
func (s *Schema) VersionKey() VersionKey { return s.key }

// Parent returns the previous schema in the chain, nil for the root.
func (s *Schema) Parent() *Schema { return s.parent }

// Types returns the sorted declared type names.
func (s *Schema) Types() []string { return slices.Clone(s.names) }

// GetTypeRaw returns the resolved type declared under name. For a fixed
// point member this is the raw recursion handle.
func (s *Schema) GetTypeRaw(name string) (dsl.Type, error) {
	t, ok := s.types[name]
	if !ok {
		return nil, ErrUnknownType("type %q is not declared in schema %s", name, s.key)
	}
	return t, nil
}

// GetType returns the resolved type declared under name, with a fixed point
// member unfolded to its checked shape.
func (s *Schema) GetType(name string) (dsl.Type, error) {
	t, err := s.GetTypeRaw(name)
	if err != nil {
		return nil, err
	}
	return dsl.Unfold(t)
}

// ResolveTemplate returns the raw template registered under name.
func (s *Schema) ResolveTemplate(name string) (dsl.Template, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return nil, ErrUnknownType("type %q is not declared in schema %s", name, s.key)
	}
	return tmpl, nil
}

// TemplateFor returns the reference template for name: a bare recursion
// reference for fixed point members (re-expanding the template there would
// never terminate), the named template otherwise.
func (s *Schema) TemplateFor(name string) (dsl.Template, error) {
	if id, ok := s.recursive[name]; ok {
		return dsl.Id(id), nil
	}
	tmpl, err := s.ResolveTemplate(name)
	if err != nil {
		return nil, err
	}
	return dsl.Named(name, tmpl), nil
}

// FindChoiceType returns the tagged union resolved under name.
func (s *Schema) FindChoiceType(name string) (dsl.ChoiceType, error) {
	t, err := s.GetType(name)
	if err != nil {
		return nil, err
	}
	c, ok := dsl.AsChoice(t)
	if !ok {
		return nil, ErrNotChoiceType("type %q in schema %s is not a tagged choice", name, s.key)
	}
	return c, nil
}

// GetChoiceType returns the member of the tagged union under name selected
// by the discriminant value.
func (s *Schema) GetChoiceType(name, choiceName string) (dsl.Type, error) {
	c, err := s.FindChoiceType(name)
	if err != nil {
		return nil, err
	}
	m, ok := c.Choice(choiceName)
	if !ok {
		return nil, ErrUnknownChoice("choice %q is not declared for type %q in schema %s", choiceName, name, s.key)
	}
	return m, nil
}

func resolveCapabilities(key VersionKey, parent *Schema, d Declarations) (capabilities, error) {
	caps := capabilities{types: d.Types, entities: d.Entities, blockEntities: d.BlockEntities}
	var errs []error
	inherit := func(name string, own bool) bool {
		if own {
			return false
		}
		if parent == nil {
			errs = append(errs, ErrNoParent("schema %s inherits %s declarations without a parent", key, name))
			return false
		}
		return true
	}
	if inherit("types", caps.types != nil) {
		caps.types = parent.caps.types
	}
	if inherit("entities", caps.entities != nil) {
		caps.entities = parent.caps.entities
	}
	if inherit("block entities", caps.blockEntities != nil) {
		caps.blockEntities = parent.caps.blockEntities
	}
	return caps, errors.Join(errs...)
}

func buildFamily(key VersionKey, b *Builder) (*dsl.Family, error) {
	if len(b.recOrder) == 0 {
		// no recursive declarations, a legal terminal case
		return nil, nil
	}
	members := make([]dsl.Member, len(b.recOrder))
	var errs []error
	for i, name := range b.recOrder {
		raw, err := b.raw(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		members[i] = dsl.Member{Name: name, Template: raw}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return dsl.NewFamily(key.Name(), members)
}

func resolveTypes(b *Builder, fam *dsl.Family) (map[string]dsl.Type, map[string]dsl.Template, error) {
	types := make(map[string]dsl.Type, len(b.names))
	templates := make(map[string]dsl.Template, len(b.names))
	var errs []error
	for _, name := range b.names {
		raw, err := b.raw(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		templates[name] = raw
		if id, ok := b.recursive[name]; ok {
			types[name] = fam.Point(id)
			continue
		}
		typ, err := dsl.Named(name, raw).Apply(fam, -1)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		types[name] = typ
	}
	return types, templates, errors.Join(errs...)
}

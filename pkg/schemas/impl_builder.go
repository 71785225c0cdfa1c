/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package schemas

import (
	"github.com/voedger/datafix/pkg/dsl"
)

// Builder accumulates type declarations while the schema hooks run. New
// hands it to the hooks and discards it once the schema is frozen; hooks
// must not retain it.
type Builder struct {
	names     []string
	factories map[string]func() dsl.Template
	recursive map[string]int
	recOrder  []string

	rawCache  map[string]dsl.Template
	resolving map[string]bool
}

func newBuilder() *Builder {
	return &Builder{
		factories: make(map[string]func() dsl.Template),
		recursive: make(map[string]int),
		rawCache:  make(map[string]dsl.Template),
		resolving: make(map[string]bool),
	}
}

// RegisterType declares a type template under name. A recursive type joins
// the fixed point family of this schema generation; its member id is
// assigned at first registration and kept when the name is registered again.
func (b *Builder) RegisterType(recursive bool, name string, f func() dsl.Template) {
	if _, ok := b.factories[name]; !ok {
		b.names = append(b.names, name)
	}
	b.factories[name] = f
	if recursive {
		if _, ok := b.recursive[name]; !ok {
			b.recursive[name] = len(b.recOrder)
			b.recOrder = append(b.recOrder, name)
		}
	}
}

// Id returns the reference template for a registered name: a bare recursion
// reference for fixed point members, the named template otherwise. The bare
// reference is what keeps self-referential declarations finite.
//
// Call it from inside template factories only; by then every declared name
// is registered. Panics on unknown names and on cyclic references among
// non-recursive types: both are declaration bugs.
func (b *Builder) Id(name string) dsl.Template {
	if id, ok := b.recursive[name]; ok {
		return dsl.Id(id)
	}
	tmpl, err := b.named(name)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// raw resolves the registered factory for name, memoized.
func (b *Builder) raw(name string) (dsl.Template, error) {
	if tmpl, ok := b.rawCache[name]; ok {
		return tmpl, nil
	}
	f, ok := b.factories[name]
	if !ok {
		return nil, ErrUnknownType("type %q is not registered", name)
	}
	if b.resolving[name] {
		return nil, dsl.ErrInvalidRecursiveState("cyclic reference through non-recursive type %q", name)
	}
	b.resolving[name] = true
	tmpl := f()
	delete(b.resolving, name)
	b.rawCache[name] = tmpl
	return tmpl, nil
}

func (b *Builder) named(name string) (dsl.Template, error) {
	raw, err := b.raw(name)
	if err != nil {
		return nil, err
	}
	return dsl.Named(name, raw), nil
}

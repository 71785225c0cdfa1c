/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package schemas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/datafix/pkg/dsl"
)

// worldDecl declares a small but complete generation: two entity groups,
// a three-member fixed point and two plain types.
func worldDecl() Declarations {
	return Declarations{
		Entities: func(b *Builder) Group {
			g := Group{}
			g.RegisterSimple("creeper")
			g.Register("pig", func() dsl.Template {
				return dsl.Product(dsl.Optional("saddle", dsl.Bool()))
			})
			return g
		},
		BlockEntities: func(b *Builder) Group {
			g := Group{}
			g.Register("chest", func() dsl.Template {
				return dsl.Product(dsl.Field("items", dsl.List(b.Id("item_stack"))))
			})
			g.RegisterSimple("furnace")
			return g
		},
		Types: func(b *Builder, entities, blockEntities Group) {
			b.RegisterType(true, "entity", func() dsl.Template {
				return dsl.TaggedChoice("id", entities.Templates())
			})
			b.RegisterType(true, "block_entity", func() dsl.Template {
				return dsl.TaggedChoice("id", blockEntities.Templates())
			})
			b.RegisterType(true, "item_stack", func() dsl.Template {
				return dsl.Product(
					dsl.Optional("id", dsl.String()),
					dsl.Optional("tag", dsl.Product(dsl.Optional("items", dsl.List(b.Id("item_stack"))))),
				)
			})
			b.RegisterType(false, "player", func() dsl.Template {
				return dsl.Product(dsl.Optional("inventory", dsl.List(b.Id("item_stack"))))
			})
			b.RegisterType(false, "level", dsl.Remainder)
		},
	}
}

func Test_Schema_New(t *testing.T) {
	require := require.New(t)

	v1, err := New(MakeKey(1, 0), nil, worldDecl())
	require.NoError(err)
	require.Equal(MakeKey(1, 0), v1.VersionKey())
	require.Nil(v1.Parent())

	t.Run("must declare all names sorted", func(t *testing.T) {
		require.Equal([]string{"block_entity", "entity", "item_stack", "level", "player"}, v1.Types())
	})

	t.Run("must assign recursive ids in first-registration order", func(t *testing.T) {
		for name, want := range map[string]string{
			"entity":       "Id[0]",
			"block_entity": "Id[1]",
			"item_stack":   "Id[2]",
		} {
			tmpl, err := v1.TemplateFor(name)
			require.NoError(err)
			require.Equal(want, tmpl.String())
		}
	})

	t.Run("must keep raw handles in GetTypeRaw and unfold in GetType", func(t *testing.T) {
		raw, err := v1.GetTypeRaw("entity")
		require.NoError(err)
		require.Contains(raw.String(), "Point[0:entity]")

		typ, err := v1.GetType("entity")
		require.NoError(err)
		require.Contains(typ.String(), "Named[entity")

		t.Run("must resolve plain types directly", func(t *testing.T) {
			raw, err := v1.GetTypeRaw("player")
			require.NoError(err)
			typ, err := v1.GetType("player")
			require.NoError(err)
			require.True(raw.Equal(typ))
		})
	})

	t.Run("must reference fixed point members from plain types", func(t *testing.T) {
		typ, err := v1.GetType("player")
		require.NoError(err)
		require.Contains(typ.String(), "Point[2:item_stack]")
	})

	t.Run("must return named templates for plain names", func(t *testing.T) {
		tmpl, err := v1.TemplateFor("level")
		require.NoError(err)
		require.Equal("Named[level, remainder]", tmpl.String())

		raw, err := v1.ResolveTemplate("level")
		require.NoError(err)
		require.Equal("remainder", raw.String())
	})

	t.Run("must be ErrUnknownTypeError on unknown names", func(t *testing.T) {
		_, err := v1.GetType("ghost")
		require.ErrorIs(err, ErrUnknownTypeError)
		_, err = v1.GetTypeRaw("ghost")
		require.ErrorIs(err, ErrUnknownTypeError)
		_, err = v1.ResolveTemplate("ghost")
		require.ErrorIs(err, ErrUnknownTypeError)
		_, err = v1.TemplateFor("ghost")
		require.ErrorIs(err, ErrUnknownTypeError)
	})
}

func Test_Schema_Choices(t *testing.T) {
	require := require.New(t)

	v1, err := New(MakeKey(1, 0), nil, worldDecl())
	require.NoError(err)

	t.Run("must find tagged choices", func(t *testing.T) {
		choice, err := v1.FindChoiceType("entity")
		require.NoError(err)
		require.Equal("id", choice.KeyName())
		require.Equal([]string{"creeper", "pig"}, choice.Choices())
	})

	t.Run("must select members by discriminant", func(t *testing.T) {
		pig, err := v1.GetChoiceType("entity", "pig")
		require.NoError(err)
		require.Equal("(saddle?: bool)", pig.String())
	})

	t.Run("must be ErrUnknownChoiceError on unknown discriminant", func(t *testing.T) {
		_, err := v1.GetChoiceType("entity", "witch")
		require.ErrorIs(err, ErrUnknownChoiceError)

		t.Run("must keep schema state intact after failed lookup", func(t *testing.T) {
			pig, err := v1.GetChoiceType("entity", "pig")
			require.NoError(err)
			require.Equal("(saddle?: bool)", pig.String())
		})
	})

	t.Run("must be ErrNotChoiceTypeError on plain types", func(t *testing.T) {
		_, err := v1.FindChoiceType("player")
		require.ErrorIs(err, ErrNotChoiceTypeError)
		_, err = v1.GetChoiceType("level", "any")
		require.ErrorIs(err, ErrNotChoiceTypeError)
	})
}

func Test_Schema_Inherit(t *testing.T) {
	require := require.New(t)

	v1, err := New(MakeKey(1, 0), nil, worldDecl())
	require.NoError(err)

	t.Run("must inherit all capabilities from parent", func(t *testing.T) {
		v11, err := New(MakeKey(1, 1), v1, Declarations{})
		require.NoError(err)
		require.Same(v1, v11.Parent())

		for _, name := range v1.Types() {
			want, err := v1.GetType(name)
			require.NoError(err)
			got, err := v11.GetType(name)
			require.NoError(err)
			require.True(got.Equal(want), "type %q must resolve identically", name)
		}

		t.Run("must inherit across generations", func(t *testing.T) {
			v2, err := New(MakeKey(2, 0), v11, Declarations{})
			require.NoError(err)
			got, err := v2.GetType("entity")
			require.NoError(err)
			want, _ := v1.GetType("entity")
			require.True(got.Equal(want))
		})
	})

	t.Run("must override one capability and inherit the rest", func(t *testing.T) {
		v2, err := New(MakeKey(2, 0), v1, Declarations{
			Entities: func(b *Builder) Group {
				g := Group{}
				g.RegisterSimple("creeper")
				g.RegisterSimple("pig")
				g.RegisterSimple("horse")
				return g
			},
		})
		require.NoError(err)

		choice, err := v2.FindChoiceType("entity")
		require.NoError(err)
		require.Equal([]string{"creeper", "horse", "pig"}, choice.Choices())

		blocks, err := v2.FindChoiceType("block_entity")
		require.NoError(err)
		require.Equal([]string{"chest", "furnace"}, blocks.Choices())
	})

	t.Run("must be ErrNoParentError when the root inherits", func(t *testing.T) {
		_, err := New(MakeKey(1, 0), nil, Declarations{Types: worldDecl().Types})
		require.ErrorIs(err, ErrNoParentError)
	})
}

func Test_Schema_NoRecursiveTypes(t *testing.T) {
	require := require.New(t)

	s, err := New(MakeKey(1, 0), nil, Declarations{
		Entities:      func(b *Builder) Group { return Group{} },
		BlockEntities: func(b *Builder) Group { return Group{} },
		Types: func(b *Builder, entities, blockEntities Group) {
			b.RegisterType(false, "level", dsl.Remainder)
			b.RegisterType(false, "options", func() dsl.Template {
				return dsl.Product(dsl.Field("difficulty", dsl.Int()))
			})
		},
	})
	require.NoError(err)

	for _, name := range []string{"level", "options"} {
		typ, err := s.GetType(name)
		require.NoError(err)
		raw, err := s.GetTypeRaw(name)
		require.NoError(err)
		require.True(typ.Equal(raw))
	}
}

func Test_Schema_IdempotentRegistration(t *testing.T) {
	require := require.New(t)

	s, err := New(MakeKey(1, 0), nil, Declarations{
		Entities:      func(b *Builder) Group { return Group{} },
		BlockEntities: func(b *Builder) Group { return Group{} },
		Types: func(b *Builder, entities, blockEntities Group) {
			b.RegisterType(true, "entity", dsl.Remainder)
			b.RegisterType(true, "item_stack", dsl.Remainder)
			// re-registration replaces the template and keeps the id
			b.RegisterType(true, "entity", func() dsl.Template {
				return dsl.Product(dsl.Field("hp", dsl.Int()))
			})
		},
	})
	require.NoError(err)

	entity, err := s.TemplateFor("entity")
	require.NoError(err)
	require.Equal("Id[0]", entity.String())

	stack, err := s.TemplateFor("item_stack")
	require.NoError(err)
	require.Equal("Id[1]", stack.String())

	typ, err := s.GetType("entity")
	require.NoError(err)
	require.Equal("Named[entity, (hp: int)]", typ.String())
}

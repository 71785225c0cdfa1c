/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, tpl Template) Type {
	typ, err := tpl.Apply(nil, -1)
	require.NoError(t, err)
	return typ
}

func Test_Templates_Apply(t *testing.T) {
	require := require.New(t)

	t.Run("must resolve structural templates outside a family", func(t *testing.T) {
		tpl := Named("player", Product(
			Field("name", String()),
			Optional("score", Int()),
			Field("flags", List(Bool())),
		))
		typ := mustApply(t, tpl)
		require.Equal("Named[player, (name: string, score?: int, flags: List[bool])]", typ.String())

		t.Run("must resolve equal templates to equal types", func(t *testing.T) {
			require.True(typ.Equal(mustApply(t, tpl)))
		})
	})

	t.Run("must resolve tagged choice with sorted alternatives", func(t *testing.T) {
		typ := mustApply(t, TaggedChoice("id", map[string]Template{
			"zombie":  Remainder(),
			"creeper": Remainder(),
		}))
		choice, ok := AsChoice(typ)
		require.True(ok)
		require.Equal("id", choice.KeyName())
		require.Equal([]string{"creeper", "zombie"}, choice.Choices())

		member, ok := choice.Choice("creeper")
		require.True(ok)
		require.True(member.Equal(mustApply(t, Remainder())))

		_, ok = choice.Choice("pig")
		require.False(ok)
	})

	t.Run("must find choice through name tags", func(t *testing.T) {
		typ := mustApply(t, Named("entity", TaggedChoice("id", map[string]Template{"pig": Remainder()})))
		choice, ok := AsChoice(typ)
		require.True(ok)
		require.Equal([]string{"pig"}, choice.Choices())

		_, ok = AsChoice(mustApply(t, Remainder()))
		require.False(ok)
	})

	t.Run("must distinguish scalar kinds", func(t *testing.T) {
		require.False(mustApply(t, Int()).Equal(mustApply(t, Float())))
		require.False(mustApply(t, String()).Equal(mustApply(t, Remainder())))
		require.False(mustApply(t, Field("x", Int())).Equal(mustApply(t, Optional("x", Int()))))
	})

	t.Run("must be error on recursion reference outside a family", func(t *testing.T) {
		_, err := Id(0).Apply(nil, -1)
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
	})

	t.Run("must be error on checked template applied at foreign index", func(t *testing.T) {
		_, err := Check("stack", 0, Remainder()).Apply(nil, -1)
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
	})

	t.Run("must be error on choice with unmatched alternatives", func(t *testing.T) {
		_, err := Or(Check("a", 0, Remainder()), Check("b", 1, Remainder())).Apply(nil, 5)
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
	})
}

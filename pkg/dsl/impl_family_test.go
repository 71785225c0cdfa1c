/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dsl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Family(t *testing.T) {
	require := require.New(t)

	fam, err := NewFamily("V1", []Member{
		{Name: "entity", Template: Product(Optional("rider", Id(0)), Optional("item", Id(1)))},
		{Name: "item_stack", Template: Product(Optional("id", String()), Optional("tag", Product(Optional("items", List(Id(1))))))},
	})
	require.NoError(err)
	require.Equal("V1", fam.Name())
	require.Equal(2, fam.Len())

	t.Run("must resolve members to named checked types", func(t *testing.T) {
		entity, err := fam.Member(0)
		require.NoError(err)
		require.Contains(entity.String(), "Named[entity")

		stack, err := fam.Member(1)
		require.NoError(err)
		require.Contains(stack.String(), "Named[item_stack")
	})

	t.Run("must see final member shapes through cross references", func(t *testing.T) {
		entity, err := fam.Member(0)
		require.NoError(err)
		// the item reference inside entity unfolds to the full item_stack shape
		named, ok := entity.(namedType)
		require.True(ok)
		prod, ok := named.inner.(productType)
		require.True(ok)
		itemRef, ok := prod.members[1].(fieldType)
		require.True(ok)
		point, ok := itemRef.inner.(pointType)
		require.True(ok)
		unfolded, err := point.Checked()
		require.NoError(err)
		stack, err := fam.Member(1)
		require.NoError(err)
		require.True(unfolded.Equal(stack))
	})

	t.Run("must return raw handles from Point", func(t *testing.T) {
		p := fam.Point(1)
		unfolded, err := Unfold(p)
		require.NoError(err)
		stack, err := fam.Member(1)
		require.NoError(err)
		require.True(unfolded.Equal(stack))

		t.Run("must be unchanged by Unfold for plain types", func(t *testing.T) {
			typ := mustApply(t, Remainder())
			same, err := Unfold(typ)
			require.NoError(err)
			require.True(same.Equal(typ))
		})
	})

	t.Run("must compare handles by member position and name", func(t *testing.T) {
		other, err := NewFamily("V2", []Member{
			{Name: "entity", Template: Remainder()},
			{Name: "item_stack", Template: Remainder()},
		})
		require.NoError(err)
		require.True(fam.Point(1).Equal(other.Point(1)))
		require.False(fam.Point(0).Equal(other.Point(1)))
	})

	t.Run("must be error on out of range member", func(t *testing.T) {
		_, err := fam.Member(2)
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
		_, err = fam.Member(-1)
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
	})

	t.Run("must panic on out of range point", func(t *testing.T) {
		require.Panics(func() { fam.Point(2) })
	})
}

func Test_Family_Construction(t *testing.T) {
	require := require.New(t)

	t.Run("must be error on empty member set", func(t *testing.T) {
		_, err := NewFamily("V1", nil)
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
	})

	t.Run("must be error on duplicate member names", func(t *testing.T) {
		_, err := NewFamily("V1", []Member{
			{Name: "entity", Template: Remainder()},
			{Name: "entity", Template: Remainder()},
		})
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
	})

	t.Run("must be error on dangling recursion reference", func(t *testing.T) {
		_, err := NewFamily("V1", []Member{
			{Name: "entity", Template: Field("next", Id(7))},
		})
		require.ErrorIs(err, ErrInvalidRecursiveStateError)
	})
}

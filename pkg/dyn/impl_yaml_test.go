/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Nikolay Nikitin
 */

package dyn

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseYaml(t *testing.T, src string) Dynamic {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	return New(YamlOps(), &doc)
}

func Test_YamlOps(t *testing.T) {
	require := require.New(t)

	ops := YamlOps()
	v := parseYaml(t, "id: zombie\nhp: 20\nspeed: 0.5\nhostile: !!bool yes\nowner: null\nloot: [bone, flesh]\n")

	t.Run("must unwrap document node to mapping", func(t *testing.T) {
		require.True(ops.IsMap(v.Value))
	})

	t.Run("must read scalars through yaml tags", func(t *testing.T) {
		f, ok := v.Field("id")
		require.True(ok)
		s, err := ops.GetString(f.Value)
		require.NoError(err)
		require.Equal("zombie", s)

		f, ok = v.Field("hp")
		require.True(ok)
		i, err := ops.GetInt(f.Value)
		require.NoError(err)
		require.EqualValues(20, i)

		f, ok = v.Field("speed")
		require.True(ok)
		fl, err := ops.GetFloat(f.Value)
		require.NoError(err)
		require.InDelta(0.5, fl, 1e-9)

		f, ok = v.Field("hostile")
		require.True(ok)
		b, err := ops.GetBool(f.Value)
		require.NoError(err)
		require.True(b)

		f, ok = v.Field("owner")
		require.True(ok)
		require.True(ops.IsNil(f.Value))
	})

	t.Run("must read integers as floats too", func(t *testing.T) {
		f, ok := v.Field("hp")
		require.True(ok)
		fl, err := ops.GetFloat(f.Value)
		require.NoError(err)
		require.InDelta(20, fl, 1e-9)
	})

	t.Run("must list sequence elements", func(t *testing.T) {
		f, ok := v.Field("loot")
		require.True(ok)
		items, err := ops.GetList(f.Value)
		require.NoError(err)
		require.Len(items, 2)
		s, err := ops.GetString(items[0])
		require.NoError(err)
		require.Equal("bone", s)
	})

	t.Run("must be ErrUnexpectedKindError on kind mismatch", func(t *testing.T) {
		f, ok := v.Field("hp")
		require.True(ok)
		_, err := ops.GetString(f.Value)
		require.ErrorIs(err, ErrUnexpectedKindError)
		_, err = ops.GetList(f.Value)
		require.ErrorIs(err, ErrUnexpectedKindError)
		_, err = ops.MapEntries(f.Value)
		require.ErrorIs(err, ErrUnexpectedKindError)
	})

	t.Run("must be ErrUnsupportedNodeError on foreign node", func(t *testing.T) {
		_, err := ops.GetString("not a yaml node")
		require.ErrorIs(err, ErrUnsupportedNodeError)
	})
}

func Test_YamlOps_Aliases(t *testing.T) {
	require := require.New(t)

	ops := YamlOps()
	v := parseYaml(t, "base: &b\n  hp: 10\ncopy: *b\n")

	f, ok := v.Field("copy")
	require.True(ok)
	require.True(ops.IsMap(f.Value))

	hp, ok := f.Field("hp")
	require.True(ok)
	i, err := ops.GetInt(hp.Value)
	require.NoError(err)
	require.EqualValues(10, i)
}

func Test_YamlOps_Create(t *testing.T) {
	require := require.New(t)

	ops := YamlOps()
	m := ops.CreateMap([]MapEntry{
		{Key: "id", Value: ops.CreateString("pig")},
		{Key: "hp", Value: ops.CreateInt(10)},
		{Key: "tame", Value: ops.CreateBool(false)},
		{Key: "w", Value: ops.CreateFloat(1.25)},
		{Key: "l", Value: ops.CreateList([]any{ops.Null()})},
	})

	want := New(MapOps(), map[string]any{
		"id":   "pig",
		"hp":   int64(10),
		"tame": false,
		"w":    1.25,
		"l":    []any{nil},
	})
	require.True(New(ops, m).Equal(want))
}

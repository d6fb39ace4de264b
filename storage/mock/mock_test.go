package mock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_InMemory(t *testing.T) {
	b := New(Config{Seed: map[string]string{"a": "1"}})

	v, ok, err := b.GetItem("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	require.NoError(t, b.SetItem("b", "2"))
	require.NoError(t, b.RemoveItem("a"))
	require.NoError(t, b.RemoveItem("missing"))
	assert.Equal(t, map[string]string{"b": "2"}, b.Items())

	require.NoError(t, b.Clear())
	assert.Empty(t, b.Items())

	assert.Equal(t, []Call{
		{Op: OpGetItem, Key: "a"},
		{Op: OpSetItem, Key: "b", Value: "2"},
		{Op: OpRemoveItem, Key: "a"},
		{Op: OpRemoveItem, Key: "missing"},
		{Op: OpClear},
	}, b.Calls())
	assert.Equal(t, 2, b.Count(OpRemoveItem))
}

func TestBackend_SeedIsCopied(t *testing.T) {
	seed := map[string]string{"a": "1"}
	b := New(Config{Seed: seed})
	seed["a"] = "changed"

	v, _, _ := b.GetItem("a")
	assert.Equal(t, "1", v)
}

func TestBackend_GetStubs(t *testing.T) {
	errBoom := errors.New("boom")
	b := New(Config{Seed: map[string]string{"hidden": "stored"}})
	b.OnGetItem("raw").Return("not: json")
	b.OnGetItem("hidden").Missing()
	b.OnGetItem("fail").Error(errBoom)

	v, ok, err := b.GetItem("raw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "not: json", v)

	_, ok, err = b.GetItem("hidden")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = b.GetItem("fail")
	assert.ErrorIs(t, err, errBoom)
}

func TestBackend_FailOn(t *testing.T) {
	errBoom := errors.New("boom")
	b := New(Config{}).FailOn(OpSetItem, errBoom)

	assert.ErrorIs(t, b.SetItem("a", "1"), errBoom)
	assert.Empty(t, b.Items())
	assert.Equal(t, 1, b.Count(OpSetItem))

	b.FailOn(OpSetItem, nil)
	require.NoError(t, b.SetItem("a", "1"))
	assert.Equal(t, map[string]string{"a": "1"}, b.Items())
}

func TestBackend_Reset(t *testing.T) {
	b := New(Config{})
	require.NoError(t, b.SetItem("a", "1"))
	b.Reset()

	assert.Empty(t, b.Calls())
	assert.Equal(t, map[string]string{"a": "1"}, b.Items())
}

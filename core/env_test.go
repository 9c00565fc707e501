package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeDefine(t *testing.T) {
	s := NewScope()
	s.Define("x", TypeInt, IntValue(1))
	s.Define("x", TypeStr, StringValue("a"))

	v, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, StringValue("a"), v)

	tag, _ := s.TypeOf("x")
	assert.Equal(t, TypeStr, tag)
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get("y")
	assert.False(t, ok)
	_, ok = s.TypeOf("y")
	assert.False(t, ok)
}

func TestScopeChild(t *testing.T) {
	parent := NewScope()
	parent.Define("a", TypeInt, IntValue(1))
	parent.Define("b", TypeInt, IntValue(2))

	child := parent.Child()
	child.Define("a", TypeBool, BoolValue(true))
	child.Define("c", "", IntValue(3))

	v, _ := child.Get("a")
	assert.Equal(t, BoolValue(true), v)
	v, _ = child.Get("b")
	assert.Equal(t, IntValue(2), v)
	tag, _ := child.TypeOf("c")
	assert.Equal(t, "", tag)

	assert.Equal(t, []string{"a", "b", "c"}, child.Names())

	v, _ = parent.Get("a")
	assert.Equal(t, IntValue(1), v)
	tag, _ = parent.TypeOf("a")
	assert.Equal(t, TypeInt, tag)
	_, ok := parent.Get("c")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, parent.Names())
}

func TestScopeBind(t *testing.T) {
	parent := NewScope()
	parent.Define("a", TypeInt, IntValue(1))

	bound := parent.Bind("n", TypeInt, IntValue(7))
	v, _ := bound.Get("n")
	assert.Equal(t, IntValue(7), v)
	v, _ = bound.Get("a")
	assert.Equal(t, IntValue(1), v)

	bound.Define("b", TypeStr, StringValue("x"))
	assert.Equal(t, 1, bound.Len())
	v, ok := parent.Get("b")
	require.True(t, ok)
	assert.Equal(t, StringValue("x"), v)

	_, ok = parent.Get("n")
	assert.False(t, ok)
}

func TestContextModules(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	ctx.LoadModule("a", "1")
	ctx.LoadModule("b", "2")
	ctx.LoadModule("a", "3")

	assert.Equal(t, []string{"a", "b"}, ctx.ModuleNames())

	source, ok := ctx.Module("a")
	require.True(t, ok)
	assert.Equal(t, "3", source)

	_, ok = ctx.Module("c")
	assert.False(t, ok)
}

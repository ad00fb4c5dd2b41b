package opctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext(t *testing.T) {
	var nilCtx *Context
	assert.False(t, nilCtx.IsEmpty())
	_, found := nilCtx.Extra("x")
	assert.False(t, found)
	assert.Equal(t, "Context(nil)", nilCtx.String())

	ctx := New("reduce_sum_0")
	assert.False(t, ctx.IsEmpty())
	ctx.WithMode(ModeEmpty).SetExtra("max_groups", 16).SetExtra("tag", "x")
	assert.True(t, ctx.IsEmpty())
	assert.True(t, New("op").WithMode("EMPTY").IsEmpty())

	value, found := ctx.Extra("tag")
	require.True(t, found)
	assert.Equal(t, "x", value)
	assert.Equal(t, 16, ctx.ExtraInt("max_groups", 1))
	assert.Equal(t, 1, ctx.ExtraInt("tag", 1))
	assert.Equal(t, 7, ctx.ExtraInt("missing", 7))
	assert.Equal(t, `Context("reduce_sum_0", mode=empty, max_groups=16, tag=x)`, ctx.String())
}

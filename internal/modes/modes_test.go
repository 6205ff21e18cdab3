package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/trimlight/internal/trimlight"
)

func TestCatalogSize(t *testing.T) {
	assert.Len(t, Builtin(), trimlight.MaxBuiltinMode+1)
	assert.Len(t, CustomModes(), trimlight.MaxCustomMode+1)
}

func TestCatalogIDsAreIndexes(t *testing.T) {
	for i, m := range Builtin() {
		assert.Equal(t, i, m.ID)
		assert.Equal(t, BuiltIn, m.Category)
		assert.NotEmpty(t, m.Name)
	}
	for i, m := range CustomModes() {
		assert.Equal(t, i, m.ID)
		assert.Equal(t, Custom, m.Category)
	}
}

func TestLookup(t *testing.T) {
	m, ok := Lookup(BuiltIn, 0)
	require.True(t, ok)
	assert.Equal(t, "Rainbow Gradual Chase", m.Name)

	m, ok = Lookup(BuiltIn, 179)
	require.True(t, ok)
	assert.Equal(t, "Full Color Strobe", m.Name)

	m, ok = Lookup(Custom, 16)
	require.True(t, ok)
	assert.Equal(t, "Solid Fade", m.Name)

	_, ok = Lookup(BuiltIn, 180)
	assert.False(t, ok)
	_, ok = Lookup(Custom, -1)
	assert.False(t, ok)
	_, ok = Lookup(Category("Other"), 1)
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	all := Search("", false, false)
	assert.Len(t, all, 180+17)
	assert.Equal(t, BuiltIn, all[0].Category)
	assert.Equal(t, Custom, all[len(all)-1].Category)

	rainbow := Search("RAINBOW", false, false)
	require.NotEmpty(t, rainbow)
	for _, m := range rainbow {
		assert.Contains(t, m.Name, "Rainbow")
	}

	custom := Search("", false, true)
	assert.Len(t, custom, 17)

	builtin := Search("static", true, false)
	assert.Empty(t, builtin)

	static := Search("static", false, false)
	require.Len(t, static, 1)
	assert.Equal(t, Mode{ID: 0, Name: "Static", Category: Custom}, static[0])

	wave := Search("wave", false, false)
	var sawBuiltIn, sawCustom bool
	for _, m := range wave {
		if m.Category == BuiltIn {
			assert.False(t, sawCustom, "built-in results come first")
			sawBuiltIn = true
		} else {
			sawCustom = true
		}
	}
	assert.True(t, sawBuiltIn)
	assert.True(t, sawCustom)
}

package clifun

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/clifun/internal/logging"
	"github.com/aretw0/clifun/interpret"
	"github.com/aretw0/clifun/source"
)

func sourceFrom(t *testing.T, argv []string) *source.Source {
	t.Helper()
	src, err := source.FromArgv(argv, source.WithLookupEnv(func(string) (string, bool) {
		return "", false
	}))
	require.NoError(t, err)
	return src
}

func TestResolveOutcomesAreExclusive(t *testing.T) {
	leaves, err := Discover(reflect.TypeFor[bar](), interpret.Default())
	require.NoError(t, err)

	src := sourceFrom(t, []string{"--f.a", "nonsense"})
	res := Resolve(leaves, src, interpret.Default(), logging.NewNop())

	// f.a was supplied but rejected, c was never supplied, f.b is an
	// absent optional. One outcome each.
	assert.False(t, res.OK())
	assert.Equal(t, []string{"c"}, res.Missing)
	require.Len(t, res.Invalid, 1)
	assert.Equal(t, "f.a", res.Invalid[0].Name)
	value, ok := res.Values["f.b"]
	require.True(t, ok)
	assert.Nil(t, value)
	assert.NotContains(t, res.Values, "f.a")
	assert.NotContains(t, res.Values, "c")
}

func TestResolveDefaultsAreInterpreted(t *testing.T) {
	type cfg struct {
		N int `default:"5"`
	}
	leaves, err := Discover(reflect.TypeFor[cfg](), interpret.Default())
	require.NoError(t, err)

	res := Resolve(leaves, sourceFrom(t, nil), interpret.Default(), logging.NewNop())
	require.True(t, res.OK())
	assert.Equal(t, 5, res.Values["n"])
}

func TestResolveOptionalWrapsPointer(t *testing.T) {
	type cfg struct {
		B *int
	}
	leaves, err := Discover(reflect.TypeFor[cfg](), interpret.Default())
	require.NoError(t, err)

	res := Resolve(leaves, sourceFrom(t, []string{"--b", "4"}), interpret.Default(), logging.NewNop())
	require.True(t, res.OK())
	ptr, ok := res.Values["b"].(*int)
	require.True(t, ok)
	assert.Equal(t, 4, *ptr)
}

func TestUnknownArguments(t *testing.T) {
	leaves, err := Discover(reflect.TypeFor[basic](), interpret.Default())
	require.NoError(t, err)

	unknown := unknownArguments(map[string]string{"c": "1", "a": "2"}, leaves)
	assert.Equal(t, []string{"c"}, unknown)

	assert.Empty(t, unknownArguments(map[string]string{"a": "2"}, leaves))
}

func TestUnflatten(t *testing.T) {
	nested := unflatten(map[string]any{
		"f.a": 1,
		"f.b": "x",
		"c":   2,
		"nil": nil,
	})
	assert.Equal(t, map[string]any{
		"f": map[string]any{"a": 1, "b": "x"},
		"c": 2,
	}, nested)
}

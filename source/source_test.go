package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestPrecedenceFlagsOverFilesOverEnv(t *testing.T) {
	fileA := writeFile(t, "a.json", `{"x": "fromA", "y": "fromA", "z": "fromA"}`)
	fileB := writeFile(t, "b.json", `{"x": "fromB", "y": "fromB"}`)

	src, err := FromArgv([]string{fileA, fileB, "--x", "fromFlag"},
		WithLookupEnv(envOf(map[string]string{"X": "fromEnv", "Y": "fromEnv", "Z": "fromEnv", "W": "fromEnv"})),
	)
	require.NoError(t, err)

	// Flag beats everything.
	v, ok := src.Get("x")
	require.True(t, ok)
	assert.Equal(t, "fromFlag", v)

	// Later-listed file beats earlier one.
	v, ok = src.Get("y")
	require.True(t, ok)
	assert.Equal(t, "fromB", v)

	// A key only in the earlier file still resolves there.
	v, ok = src.Get("z")
	require.True(t, ok)
	assert.Equal(t, "fromA", v)

	// Environment only when no flag or file has the key.
	v, ok = src.Get("w")
	require.True(t, ok)
	assert.Equal(t, "fromEnv", v)
}

func TestEnvKeyIsUppercasedWithDotsPreserved(t *testing.T) {
	var asked []string
	src, err := FromArgv(nil, WithLookupEnv(func(key string) (string, bool) {
		asked = append(asked, key)
		return "", false
	}))
	require.NoError(t, err)

	_, ok := src.Get("f.a")
	assert.False(t, ok)
	assert.Equal(t, []string{"F.A"}, asked)
}

func TestExplicitEmptyStringIsAHit(t *testing.T) {
	src, err := FromArgv([]string{"--b", ""}, WithLookupEnv(noEnv))
	require.NoError(t, err)

	v, ok := src.Get("b")
	require.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = src.Get("absent")
	assert.False(t, ok)
}

func TestMissingConfigFileFailsConstruction(t *testing.T) {
	_, err := FromArgv([]string{"no-such-file.json"}, WithLookupEnv(noEnv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find config file")
}

func TestHelp(t *testing.T) {
	src, err := FromArgv([]string{"--help"}, WithLookupEnv(noEnv))
	require.NoError(t, err)
	assert.True(t, src.Help())
	assert.Empty(t, src.Keyword())
}

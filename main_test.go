package clifun

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMain drives Main with captured streams and a recording exit hook.
// code is -1 when Main never tried to exit.
func runMain[A any](t *testing.T, fn func(A) error, argv []string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = -1
	Main(fn,
		WithArgs(argv),
		WithLookupEnv(noEnv),
		WithProgramName("prog"),
		WithOutput(&out),
		Option(func(s *settings) { s.errOut = &errOut }),
		withExit(func(c int) {
			if code == -1 {
				code = c
			}
		}),
	)
	return out.String(), errOut.String(), code
}

func notCalled[A any](t *testing.T) func(A) error {
	return func(A) error {
		t.Error("callable should not have been invoked")
		return nil
	}
}

func TestMainHelpPrintsUsageAndExitsZero(t *testing.T) {
	stdout, stderr, code := runMain(t, notCalled[basic](t), []string{"--help"})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage: prog [config_file] [--key value]...")
	assert.Contains(t, stdout, " --a: int")
	assert.Empty(t, stderr)
}

func TestMainUnknownArgumentsExitOne(t *testing.T) {
	stdout, stderr, code := runMain(t, notCalled[basic](t), []string{"--a", "1", "--zz", "2"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Unknown arguments: {zz}")
	assert.Contains(t, stdout, "Usage: prog")
	assert.Empty(t, stderr)
}

func TestMainMissingArgumentsExitOne(t *testing.T) {
	stdout, stderr, code := runMain(t, notCalled[basic](t), nil)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Missing arguments: {a}")
	assert.Contains(t, stdout, "Usage: prog")
	assert.Empty(t, stderr)
}

func TestMainConfigErrorGoesToStderr(t *testing.T) {
	stdout, stderr, code := runMain(t, notCalled[basic](t), []string{"no-such.json", "--a", "1"})
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "could not find config file")
}

func TestMainInvokesCallableOnSuccess(t *testing.T) {
	var got basic
	stdout, stderr, code := runMain(t, func(in basic) error {
		got = in
		return nil
	}, []string{"--a", "1"})
	assert.Equal(t, -1, code, "exit should never be called on success")
	assert.Equal(t, basic{A: 1, B: "not provided"}, got)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestMainCallableErrorExitsOne(t *testing.T) {
	stdout, stderr, code := runMain(t, func(basic) error {
		return errors.New("boom")
	}, []string{"--a", "1"})
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	require.Contains(t, stderr, "boom")
}

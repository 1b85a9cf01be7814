package main

import (
	"bytes"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paraglidehq/shortcode"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shortcode.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEncodeCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Default", []string{"encode", "0", "1", "61", "62"}, "a\nb\n9\nba\n"},
		{"Offset", []string{"encode", "--offset", "10000", "0"}, "cLs\n"},
		{"Secondary", []string{"encode", "-s", "0", "62"}, "G\nwG\n"},
		{"Preset", []string{"encode", "--preset", "base58", "0", "58"}, "1\n21\n"},
		{"Alphabet", []string{"encode", "--alphabet", "01", "5"}, "101\n"},
		{"AlphabetOverridesPreset", []string{"encode", "-p", "base58", "-a", "xyz", "3"}, "yx\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEncodeStdin(t *testing.T) {
	out, err := run(t, "1\n\n  62 \n", "encode")
	require.NoError(t, err)
	assert.Equal(t, "b\nba\n", out)
}

func TestEncodeErrors(t *testing.T) {
	_, err := run(t, "", "encode", "--", "-1")
	assert.ErrorIs(t, err, shortcode.ErrInvalidInput)

	_, err = run(t, "", "encode", "12abc")
	assert.ErrorContains(t, err, "not an integer")

	_, err = run(t, "", "encode", "--offset=-10", "5")
	assert.ErrorIs(t, err, shortcode.ErrInvalidInput)
}

func TestDecodeCmd(t *testing.T) {
	out, err := run(t, "", "decode", "a", "ba", "cLs")
	require.NoError(t, err)
	assert.Equal(t, "0\n62\n10000\n", out)

	out, err = run(t, "wG\n", "decode", "--use-secondary")
	require.NoError(t, err)
	assert.Equal(t, "62\n", out)

	_, err = run(t, "", "decode", "a!")
	assert.ErrorIs(t, err, shortcode.ErrInvalidCharacter)

	_, err = run(t, "", "decode", "--offset", "100", "b")
	assert.ErrorIs(t, err, shortcode.ErrNegativeResult)

	_, err = run(t, "", "decode", "--strict", "ab")
	assert.ErrorIs(t, err, shortcode.ErrNonCanonical)
}

func TestBigRoundTrip(t *testing.T) {
	const huge = "123456789012345678901234567890"
	code, err := run(t, "", "encode", huge)
	require.NoError(t, err)

	out, err := run(t, "", "decode", strings.TrimSpace(code))
	require.NoError(t, err)
	assert.Equal(t, huge+"\n", out)
}

func TestEncodeOffsetPastMaxInt64(t *testing.T) {
	const maxInt64 = "9223372036854775807"
	code, err := run(t, "", "encode", "--offset", "1", maxInt64)
	require.NoError(t, err)

	want, err := shortcode.Default().WithOffset(1).EncodeBig(new(big.Int).SetInt64(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, want+"\n", code)

	out, err := run(t, "", "decode", "--offset", "1", strings.TrimSpace(code))
	require.NoError(t, err)
	assert.Equal(t, maxInt64+"\n", out)
}

func TestConfigLayering(t *testing.T) {
	path := writeConfig(t, "offset = 10000\n")

	t.Run("File", func(t *testing.T) {
		out, err := run(t, "", "encode", "--config", path, "0")
		require.NoError(t, err)
		assert.Equal(t, "cLs\n", out)
	})
	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("SHORTCODE_OFFSET", "62")
		out, err := run(t, "", "encode", "--config", path, "0")
		require.NoError(t, err)
		assert.Equal(t, "ba\n", out)
	})
	t.Run("FlagOverridesEnv", func(t *testing.T) {
		t.Setenv("SHORTCODE_OFFSET", "62")
		out, err := run(t, "", "encode", "--config", path, "--offset", "0", "0")
		require.NoError(t, err)
		assert.Equal(t, "a\n", out)
	})
	t.Run("EnvConfigPath", func(t *testing.T) {
		t.Setenv("SHORTCODE_CONFIG", path)
		t.Setenv("SHORTCODE_USE_SECONDARY", "true")
		out, err := run(t, "", "encode", "5")
		require.NoError(t, err)
		want := shortcode.Default().UseSecondary(true).MustEncode(10005)
		assert.Equal(t, want+"\n", out)
	})
}

func TestConfigErrors(t *testing.T) {
	_, err := run(t, "", "encode", "--alphabet", "aa", "1")
	assert.ErrorIs(t, err, shortcode.ErrDuplicateSymbol)

	_, err = run(t, "", "encode", "--preset", "nope", "1")
	assert.ErrorContains(t, err, "unknown alphabet preset")

	_, err = run(t, "", "encode", "--config", writeConfig(t, "bogus = 1\n"), "1")
	assert.Error(t, err)

	_, err = run(t, "", "encode", "--log-level", "loud", "1")
	assert.ErrorContains(t, err, "failed initializing log")
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "", "config", "--preset", "base36", "--offset", "7", "--strict")
	require.NoError(t, err)

	cfg, err := shortcode.ParseConfig([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, shortcode.Config{
		Alphabet:          shortcode.Base36Alphabet,
		SecondaryAlphabet: shortcode.Shuffled62Alphabet,
		Offset:            7,
		Strict:            true,
	}, cfg)
}

func TestAlphabetCmd(t *testing.T) {
	out, err := run(t, "", "alphabet", "base58")
	require.NoError(t, err)
	assert.Equal(t, shortcode.Base58Alphabet+"\n", out)

	out, err = run(t, "", "alphabet", "--use-secondary")
	require.NoError(t, err)
	for _, name := range shortcode.PresetNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "active")
	assert.Contains(t, out, shortcode.Shuffled62Alphabet)

	_, err = run(t, "", "alphabet", "base64")
	assert.ErrorContains(t, err, "unknown alphabet preset")
}

func TestMigrateRequiresDSN(t *testing.T) {
	_, err := run(t, "", "migrate")
	assert.ErrorContains(t, err, "--dsn is required")
}

func TestFlagNameToUpper(t *testing.T) {
	assert.Equal(t, "USE_SECONDARY", flagNameToUpper("use-secondary"))
	assert.Equal(t, "OFFSET", flagNameToUpper("offset"))
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pinkeepr-keys/protocol/nip19"
	"pinkeepr-keys/protocol/nip49"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := newApp(&buf).Run(append([]string{"gen_keys"}, args...))
	return buf.String(), err
}

// valueAfter returns the text following prefix on the single line that starts with it.
func valueAfter(t *testing.T, out, prefix string) string {
	t.Helper()
	var found []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			found = append(found, strings.TrimSpace(strings.TrimPrefix(line, prefix)))
		}
	}
	require.Len(t, found, 1, "expected exactly one line starting with %q", prefix)
	return found[0]
}

func TestNoArguments(t *testing.T) {
	out, err := runApp(t)
	require.NoError(t, err)

	nsec := valueAfter(t, out, "nsec (PRIVATE - keep secret!):")
	npub := valueAfter(t, out, "npub (PUBLIC - share this):")
	assert.NotEmpty(t, nsec)
	assert.NotEmpty(t, npub)

	assert.Equal(t, nsec, valueAfter(t, out, "PINKEEPR_NSEC="))
	assert.Equal(t, npub+"  # (for reference)", valueAfter(t, out, "# PINKEEPR_NPUB="))

	secret, err := nip19.DecodePrivateKey(nsec)
	require.NoError(t, err)
	public, err := secret.Public()
	require.NoError(t, err)
	decoded, err := nip19.DecodePublicKey(npub)
	require.NoError(t, err)
	assert.Equal(t, public, decoded)
}

func TestRunsDiffer(t *testing.T) {
	first, err := runApp(t)
	require.NoError(t, err)
	second, err := runApp(t)
	require.NoError(t, err)

	assert.NotEqual(t,
		valueAfter(t, first, "PINKEEPR_NSEC="),
		valueAfter(t, second, "PINKEEPR_NSEC="))
}

func TestDerive(t *testing.T) {
	const (
		hexSecret = "67dea2ed018072d675f5415ecfaed7d2597555e202d85b3d65ea4e58d2d92ffa"
		nsec      = "nsec1vl029mgpspedva04g90vltkh6fvh240zqtv9k0t9af8935ke9laqsnlfe5"
	)

	tests := []struct {
		name  string
		input string
	}{
		{"From nsec", nsec},
		{"From hex", hexSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, "--name", "relay", "--derive", tt.input)
			require.NoError(t, err)
			assert.Contains(t, out, "RELAY (Bot) Identity")
			assert.Equal(t, nsec, valueAfter(t, out, "RELAY_NSEC="))
		})
	}

	_, err := runApp(t, "--derive", "npub10elfcs4fr0l0r8af98jlmgdh9c8tcxjvz9qkw038js35mp4dma8qzvjptg")
	assert.ErrorIs(t, err, nip19.ErrWrongPrefix)
}

func TestEncryptWithEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("NCRYPTSEC_PASSWORD=from-env-file\n"), 0o600))
	t.Setenv("NCRYPTSEC_PASSWORD", "")
	os.Unsetenv("NCRYPTSEC_PASSWORD")

	out, err := runApp(t, "--encrypt", "--log-n", "4", "--env-file", envFile)
	require.NoError(t, err)

	nsec := valueAfter(t, out, "PINKEEPR_NSEC=")
	ncryptsec := valueAfter(t, out, "ncryptsec (ENCRYPTED - password protected):")

	secret, _, err := nip49.Decrypt(ncryptsec, "from-env-file")
	require.NoError(t, err)
	expected, err := nip19.DecodePrivateKey(nsec)
	require.NoError(t, err)
	assert.Equal(t, expected, secret)
}

func TestEncryptErrors(t *testing.T) {
	t.Setenv("NCRYPTSEC_PASSWORD", "")

	_, err := runApp(t, "--encrypt", "--log-n", "4")
	assert.ErrorIs(t, err, nip49.ErrEmptyPassword)

	_, err = runApp(t, "--encrypt", "--password", "x", "--log-n", "64")
	assert.Error(t, err)

	_, err = runApp(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

package nip19

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"pinkeepr-keys/crypto"
	"pinkeepr-keys/crypto/key_secp256k1"
)

const (
	// PrivateKeyPrefix marks a secret key. Never share a string carrying it.
	PrivateKeyPrefix = "nsec"
	// PublicKeyPrefix marks a public key, safe to share.
	PublicKeyPrefix = "npub"
)

var (
	ErrWrongPrefix   = errors.New("wrong bech32 prefix")
	ErrInvalidLength = errors.New("invalid decoded data length")
)

// Encode converts data to 5-bit words and encodes them under prefix.
func Encode(prefix string, data []byte) (string, error) {
	words, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert data to 5-bit words: %w", err)
	}
	return bech32.Encode(prefix, words)
}

// Decode returns the prefix and the 8-bit payload of a bech32 string.
// Encrypted keys exceed the BIP-173 90 character limit so the limit is not enforced.
func Decode(s string) (string, []byte, error) {
	prefix, words, err := bech32.DecodeNoLimit(strings.TrimSpace(s))
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode bech32 string: %w", err)
	}
	data, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("failed to convert 5-bit words to bytes: %w", err)
	}
	return prefix, data, nil
}

func EncodePrivateKey(priv key_secp256k1.PrivateKey) (string, error) {
	if len(priv) != crypto.SecretKeySize {
		return "", fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(priv), crypto.SecretKeySize)
	}
	return Encode(PrivateKeyPrefix, priv)
}

func EncodePublicKey(pub key_secp256k1.PublicKey) (string, error) {
	if len(pub) != crypto.PublicKeySize {
		return "", fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(pub), crypto.PublicKeySize)
	}
	return Encode(PublicKeyPrefix, pub)
}

func DecodePrivateKey(s string) (key_secp256k1.PrivateKey, error) {
	data, err := decodeExpecting(s, PrivateKeyPrefix, crypto.SecretKeySize)
	if err != nil {
		return nil, err
	}
	return key_secp256k1.FromBytes(data)
}

func DecodePublicKey(s string) (key_secp256k1.PublicKey, error) {
	data, err := decodeExpecting(s, PublicKeyPrefix, crypto.PublicKeySize)
	if err != nil {
		return nil, err
	}
	pub := key_secp256k1.PublicKey(data)
	if _, err := pub.ToPoint(); err != nil {
		return nil, fmt.Errorf("decoded public key is not on the curve: %w", err)
	}
	return pub, nil
}

func decodeExpecting(s, wantPrefix string, wantLen int) ([]byte, error) {
	prefix, data, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if prefix != wantPrefix {
		return nil, fmt.Errorf("%w: expected '%s', got '%s'", ErrWrongPrefix, wantPrefix, prefix)
	}
	if len(data) != wantLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLength, wantLen, len(data))
	}
	return data, nil
}

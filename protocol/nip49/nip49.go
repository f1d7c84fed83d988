package nip49

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"
	"pinkeepr-keys/crypto"
	"pinkeepr-keys/crypto/key_secp256k1"
	"pinkeepr-keys/protocol/nip19"
)

// Prefix is the bech32 prefix of a password-encrypted secret key.
const Prefix = "ncryptsec"

const (
	version    = 0x02
	saltSize   = 16
	scryptR    = 8
	scryptP    = 1
	keySize    = 32
	payloadLen = 1 + 1 + saltSize + chacha20poly1305.NonceSizeX + 1 + crypto.SecretKeySize + chacha20poly1305.Overhead
)

// KeySecurity records how the secret key was handled before it was encrypted.
type KeySecurity byte

const (
	KnownInsecure    KeySecurity = 0x00
	NotKnownInsecure KeySecurity = 0x01
	Unknown          KeySecurity = 0x02
)

var (
	ErrWrongPrefix        = errors.New("not an ncryptsec string")
	ErrUnsupportedVersion = errors.New("unsupported ncryptsec version")
	ErrInvalidPayload     = errors.New("invalid ncryptsec payload")
	ErrDecryptionFailed   = errors.New("ncryptsec decryption failed")
	ErrEmptyPassword      = errors.New("password is empty")
)

// Encrypt seals priv under a key derived from password with scrypt(N = 2^logN, r = 8, p = 1).
func Encrypt(priv key_secp256k1.PrivateKey, password string, logN uint8, security KeySecurity) (string, error) {
	if _, err := key_secp256k1.FromBytes(priv); err != nil {
		return "", err
	}

	var salt [saltSize]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return "", err
	}
	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}

	aead, err := newAEAD(password, salt[:], logN)
	if err != nil {
		return "", err
	}

	payload := make([]byte, 0, payloadLen)
	payload = append(payload, version, logN)
	payload = append(payload, salt[:]...)
	payload = append(payload, nonce[:]...)
	payload = append(payload, byte(security))
	payload = aead.Seal(payload, nonce[:], priv, []byte{byte(security)})

	return nip19.Encode(Prefix, payload)
}

// Decrypt opens an ncryptsec string and returns the secret key together with its recorded security byte.
func Decrypt(encoded, password string) (key_secp256k1.PrivateKey, KeySecurity, error) {
	prefix, payload, err := nip19.Decode(encoded)
	if err != nil {
		return nil, 0, err
	}
	if prefix != Prefix {
		return nil, 0, fmt.Errorf("%w: got '%s'", ErrWrongPrefix, prefix)
	}
	if len(payload) != payloadLen {
		return nil, 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPayload, payloadLen, len(payload))
	}
	if payload[0] != version {
		return nil, 0, fmt.Errorf("%w: %#x", ErrUnsupportedVersion, payload[0])
	}

	logN := payload[1]
	salt := payload[2 : 2+saltSize]
	nonce := payload[2+saltSize : 2+saltSize+chacha20poly1305.NonceSizeX]
	security := payload[2+saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := payload[3+saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := newAEAD(password, salt, logN)
	if err != nil {
		return nil, 0, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte{security})
	if err != nil {
		return nil, 0, ErrDecryptionFailed
	}

	priv, err := key_secp256k1.FromBytes(plaintext)
	if err != nil {
		return nil, 0, err
	}
	return priv, KeySecurity(security), nil
}

func newAEAD(password string, salt []byte, logN uint8) (cipher.AEAD, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if logN == 0 || logN > 30 {
		return nil, fmt.Errorf("%w: log_n %d out of range", ErrInvalidPayload, logN)
	}
	key, err := scrypt.Key([]byte(norm.NFKC.String(password)), salt, 1<<logN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}

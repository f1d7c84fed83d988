package keygen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"pinkeepr-keys/configs"
	"pinkeepr-keys/crypto/key_secp256k1"
	"pinkeepr-keys/crypto/signer_schnorr"
	"pinkeepr-keys/protocol/nip19"
	"pinkeepr-keys/protocol/nip49"
)

// Identity is a Nostr keypair together with its display encodings.
type Identity struct {
	Name string
	Role string

	Secret key_secp256k1.PrivateKey
	Public key_secp256k1.PublicKey

	Nsec      string
	Npub      string
	Ncryptsec string
}

// Generate creates a fresh identity from the system CSPRNG.
func Generate(name, role string) (*Identity, error) {
	secret, err := key_secp256k1.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret key: %w", err)
	}
	return FromSecret(name, role, secret)
}

// FromSecret derives and encodes the identity for an existing secret key.
func FromSecret(name, role string, secret key_secp256k1.PrivateKey) (*Identity, error) {
	public, err := secret.Public()
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}

	nsec, err := nip19.EncodePrivateKey(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to encode secret key: %w", err)
	}
	npub, err := nip19.EncodePublicKey(public)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}

	id := &Identity{
		Name:   name,
		Role:   role,
		Secret: secret,
		Public: public,
		Nsec:   nsec,
		Npub:   npub,
	}
	if err := id.SelfCheck(); err != nil {
		return nil, err
	}
	return id, nil
}

// SelfCheck signs and verifies a probe message and decodes both encodings back to raw bytes.
func (id *Identity) SelfCheck() error {
	sig, err := signer_schnorr.Sign(id.Secret, configs.SelfCheckMessage)
	if err != nil {
		return fmt.Errorf("self-check sign: %w", err)
	}
	if err := signer_schnorr.Verify(id.Public, configs.SelfCheckMessage, sig); err != nil {
		return fmt.Errorf("self-check verify: %w", err)
	}

	secret, err := nip19.DecodePrivateKey(id.Nsec)
	if err != nil {
		return fmt.Errorf("self-check decode nsec: %w", err)
	}
	if !bytes.Equal(secret, id.Secret) {
		return fmt.Errorf("self-check: nsec does not round-trip")
	}
	public, err := nip19.DecodePublicKey(id.Npub)
	if err != nil {
		return fmt.Errorf("self-check decode npub: %w", err)
	}
	if !bytes.Equal(public, id.Public) {
		return fmt.Errorf("self-check: npub does not round-trip")
	}
	return nil
}

// Encrypt attaches a password-protected ncryptsec form of the secret key.
func (id *Identity) Encrypt(password string, logN uint8) error {
	encoded, err := nip49.Encrypt(id.Secret, password, logN, nip49.NotKnownInsecure)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret key: %w", err)
	}
	id.Ncryptsec = encoded
	return nil
}

// EnvPrefix is the identity name upper-cased, with anything not a letter or digit replaced by '_'.
func (id *Identity) EnvPrefix() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, id.Name)
}

func (id *Identity) PrivateKeyEnvVar() string {
	return id.EnvPrefix() + configs.PrivateKeyEnvSuffix
}

func (id *Identity) PublicKeyEnvVar() string {
	return id.EnvPrefix() + configs.PublicKeyEnvSuffix
}

func (id *Identity) EncryptedKeyEnvVar() string {
	return id.EnvPrefix() + configs.EncryptedKeyEnvSuffix
}

package crypto

import "crypto/sha256"

var (
	DefaultHashFunc = sha256.New
)

const (
	// SecretKeySize is the length of a serialized secp256k1 secret scalar.
	SecretKeySize = 32
	// PublicKeySize is the length of a BIP-340 x-only public key.
	PublicKeySize = 32
	// SignatureSize is the length of a BIP-340 Schnorr signature.
	SignatureSize = 64
)

package key_secp256k1

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"pinkeepr-keys/crypto"
)

type (
	// PrivateKey is a 32-byte secp256k1 secret scalar
	PrivateKey []byte
	// PublicKey is a 32-byte BIP-340 x-only public key
	PublicKey []byte
	Pair      struct {
		Priv PrivateKey
		Pub  PublicKey
	}
)

var (
	ErrInvalidKeyLength = errors.New("invalid key length")
	ErrInvalidScalar    = errors.New("secret key out of range")
)

func New() (PrivateKey, error) {
	privK, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return privK.Serialize(), nil
}

// FromBytes copies b into a PrivateKey after checking it is a valid scalar in [1, n-1].
func FromBytes(b []byte) (PrivateKey, error) {
	if len(b) != crypto.SecretKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(b), crypto.SecretKeySize)
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, ErrInvalidScalar
	}
	privB := make(PrivateKey, crypto.SecretKeySize)
	copy(privB, b)
	return privB, nil
}

func FromHex(s string) (PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex secret key: %w", err)
	}
	return FromBytes(b)
}

func NewPair() (*Pair, error) {
	priv, err := New()
	if err != nil {
		return nil, err
	}
	pub, err := priv.Public()
	if err != nil {
		return nil, err
	}
	return &Pair{Priv: priv, Pub: pub}, nil
}

func (privB PrivateKey) Public() (PublicKey, error) {
	privK, err := privB.ToScalar()
	if err != nil {
		return nil, err
	}
	return schnorr.SerializePubKey(privK.PubKey()), nil
}

func (privB PrivateKey) ToScalar() (*btcec.PrivateKey, error) {
	if _, err := FromBytes(privB); err != nil {
		return nil, err
	}
	privK, _ := btcec.PrivKeyFromBytes(privB)
	return privK, nil
}

func (privB PrivateKey) Hex() string {
	return hex.EncodeToString(privB)
}

func (pubB PublicKey) ToPoint() (*btcec.PublicKey, error) {
	if len(pubB) != crypto.PublicKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(pubB), crypto.PublicKeySize)
	}
	return schnorr.ParsePubKey(pubB)
}

func (pubB PublicKey) Hex() string {
	return hex.EncodeToString(pubB)
}

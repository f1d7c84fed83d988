package signer_schnorr

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"pinkeepr-keys/crypto/key_secp256k1"
	"pinkeepr-keys/crypto/sha256"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
)

// Sign produces a BIP-340 signature over sha256(msg).
func Sign(privKey key_secp256k1.PrivateKey, msg []byte) ([]byte, error) {
	privScalar, err := privKey.ToScalar()
	if err != nil {
		return nil, err
	}
	sig, err := schnorr.Sign(privScalar, sha256.Hash(msg))
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

func Verify(pubKey key_secp256k1.PublicKey, msg, sig []byte) error {
	pubPoint, err := pubKey.ToPoint()
	if err != nil {
		return err
	}
	parsed, err := schnorr.ParseSignature(sig)
	if err != nil {
		return err
	}
	if !parsed.Verify(sha256.Hash(msg), pubPoint) {
		return ErrInvalidSignature
	}
	return nil
}

package sha256

import "pinkeepr-keys/crypto"

func Hash(data []byte) []byte {
	hash := crypto.DefaultHashFunc()
	hash.Write(data)
	return hash.Sum(nil)
}

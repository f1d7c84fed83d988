package configs

var (
	IdentityName = "Pinkeepr"
	IdentityRole = "Bot"
	EnvFile      = ".env"

	SeparatorChar  = "="
	SeparatorWidth = 60

	// Env var suffixes appended to the upper-cased identity name

	PrivateKeyEnvSuffix   = "_NSEC"
	PublicKeyEnvSuffix    = "_NPUB"
	EncryptedKeyEnvSuffix = "_NCRYPTSEC"

	PasswordEnvVar = "NCRYPTSEC_PASSWORD"

	// scrypt work factor for ncryptsec, N = 2^16
	DefaultLogN uint8 = 16

	SelfCheckMessage = []byte("pinkeepr keypair self-check")
)

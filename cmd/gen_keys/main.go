package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"pinkeepr-keys/configs"
	"pinkeepr-keys/crypto"
	"pinkeepr-keys/crypto/key_secp256k1"
	"pinkeepr-keys/keygen"
	"pinkeepr-keys/protocol/nip19"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var logger = logrus.New()

func main() {
	logger.SetOutput(os.Stderr)

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logger.Fatalf("Failed to generate keypair: %v", err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "gen_keys",
		Usage:  "Generate a Nostr keypair and print it for a .env file.",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Value: configs.IdentityName,
				Usage: "identity name, also used as the env var prefix",
			},
			&cli.StringFlag{
				Name:  "role",
				Value: configs.IdentityRole,
				Usage: "role shown next to the identity name",
			},
			&cli.StringFlag{
				Name:  "derive",
				Usage: "re-print the identity of an existing secret key (nsec or 64 hex characters)",
			},
			&cli.BoolFlag{
				Name:  "encrypt",
				Usage: "also print a password-encrypted ncryptsec form of the secret key",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: fmt.Sprintf("ncryptsec password (default: $%s)", configs.PasswordEnvVar),
			},
			&cli.UintFlag{
				Name:  "log-n",
				Value: uint(configs.DefaultLogN),
				Usage: "scrypt work factor for ncryptsec, N = 2^log-n",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the password",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log self-check steps",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	if envFile := c.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		logger.Debugf("Loaded %s", envFile)
	}

	id, err := identity(c)
	if err != nil {
		return err
	}
	logger.Debug("Self-check passed")

	if c.Bool("encrypt") {
		password := c.String("password")
		if password == "" {
			password = os.Getenv(configs.PasswordEnvVar)
		}
		logN := c.Uint("log-n")
		if logN < 1 || logN > 30 {
			return fmt.Errorf("log-n must be between 1 and 30, got %d", logN)
		}
		if err := id.Encrypt(password, uint8(logN)); err != nil {
			return err
		}
		logger.Debugf("Encrypted secret key with log_n=%d", logN)
	}

	if err := id.Print(c.App.Writer); err != nil {
		return fmt.Errorf("failed to print keypair: %w", err)
	}
	logger.WithField("npub", id.Npub).Info("Keypair ready")
	return nil
}

func identity(c *cli.Context) (*keygen.Identity, error) {
	name, role := c.String("name"), c.String("role")

	derive := strings.TrimSpace(c.String("derive"))
	if derive == "" {
		return keygen.Generate(name, role)
	}

	var (
		secret key_secp256k1.PrivateKey
		err    error
	)
	if len(derive) == 2*crypto.SecretKeySize {
		secret, err = key_secp256k1.FromHex(derive)
	} else {
		secret, err = nip19.DecodePrivateKey(derive)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid secret key to derive from: %w", err)
	}
	return keygen.FromSecret(name, role, secret)
}

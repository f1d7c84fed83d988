package keygen

import (
	"fmt"
	"io"
	"strings"

	"pinkeepr-keys/configs"
)

// Print writes the banner, the labelled encodings and the .env block.
func (id *Identity) Print(w io.Writer) error {
	p := &printer{w: w}
	separator := strings.Repeat(configs.SeparatorChar, configs.SeparatorWidth)

	p.linef("\n🔐 Generating Nostr Keypair for %s...\n", id.Name)
	p.line(separator)
	p.linef("%s (%s) Identity", strings.ToUpper(id.Name), id.Role)
	p.line(separator)
	p.linef("nsec (PRIVATE - keep secret!): %s", id.Nsec)
	p.linef("npub (PUBLIC - share this):    %s", id.Npub)
	if id.Ncryptsec != "" {
		p.linef("ncryptsec (ENCRYPTED - password protected): %s", id.Ncryptsec)
	}
	p.line(separator)

	p.linef("\n📋 Copy these to your %s file:\n", configs.EnvFile)
	p.linef("%s=%s", id.PrivateKeyEnvVar(), id.Nsec)
	p.linef("# %s=%s  # (for reference)", id.PublicKeyEnvVar(), id.Npub)
	if id.Ncryptsec != "" {
		p.linef("# %s=%s  # (encrypted backup)", id.EncryptedKeyEnvVar(), id.Ncryptsec)
	}
	p.line("")

	return p.err
}

// printer keeps the first write error so Print can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

package client

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/correlator"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/proof"
)

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*$`)

// Config contains the configuration required to initialize the client.
type Config struct {
	// ManifestURL is the public URL of the app's tonconnect-manifest.json.
	ManifestURL string
	// ReturnScheme is the app's own URL scheme; callbacks arrive as
	// <ReturnScheme>://tonconnect?<payload>.
	ReturnScheme string

	StoragePrefix   string
	PreferredWallet string

	// RequestProof adds a ton_proof item with a random nonce to connect requests.
	RequestProof bool
	ProofMode    proof.Mode
	// ProofDomain, when set, must match the domain inside the proof.
	ProofDomain string

	// Network is copied into transaction requests that leave it empty.
	Network               string
	StrictAddressChecksum bool

	Timeouts correlator.Timeouts
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.ManifestURL == "" {
		return errors.New("manifest_url is required")
	}
	u, err := url.Parse(c.ManifestURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("manifest_url %q is not an absolute url", c.ManifestURL)
	}
	if c.ReturnScheme == "" {
		return errors.New("return_scheme is required")
	}
	if !schemePattern.MatchString(c.ReturnScheme) {
		return fmt.Errorf("return_scheme %q is not a valid url scheme", c.ReturnScheme)
	}
	if _, err := proof.ParseMode(string(c.ProofMode)); err != nil {
		return err
	}
	return nil
}

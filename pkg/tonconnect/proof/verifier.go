package proof

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/internal/metrics"
	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// Mode controls how a connect response without a proof is treated.
type Mode string

const (
	// ModeCompatible accepts responses that omit the proof and logs a warning.
	// Some wallets never send one; a proof that is present must still verify.
	ModeCompatible Mode = "compatible"
	// ModeStrict rejects responses that omit the proof.
	ModeStrict Mode = "strict"
)

// ParseMode maps a config value to a Mode. Empty selects ModeCompatible.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCompatible:
		return ModeCompatible, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("unknown proof mode %q", s)
	}
}

type settings struct {
	logger *zap.Logger
	domain string
}

// Option configures the Verifier.
type Option func(*settings)

// WithLogger sets a custom logger for the verifier.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithDomain requires the proof domain to equal domain.
func WithDomain(domain string) Option {
	return func(s *settings) { s.domain = domain }
}

func applyOptions(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Verifier checks connect responses before a session is accepted.
type Verifier struct {
	mode   Mode
	domain string
	logger *zap.Logger
}

// NewVerifier creates a Verifier running in mode.
func NewVerifier(mode Mode, opts ...Option) *Verifier {
	s := applyOptions(opts)
	if mode == "" {
		mode = ModeCompatible
	}
	return &Verifier{mode: mode, domain: s.domain, logger: s.logger}
}

// Mode returns the configured mode.
func (v *Verifier) Mode() Mode {
	return v.mode
}

// Verify validates the proof in resp, if any. A failure is a PROOF_INVALID error.
func (v *Verifier) Verify(resp *tonconnect.ConnectResponse) error {
	if !resp.HasProof() {
		if v.mode == ModeStrict {
			metrics.ProofVerifications.WithLabelValues("missing_rejected").Inc()
			return apperrors.ProofError(ErrMissingProof, "wallet did not send a connection proof")
		}
		metrics.ProofVerifications.WithLabelValues("missing_accepted").Inc()
		v.logger.Warn("connect response has no proof, accepting in compatible mode",
			zap.String("address", resp.Address),
			zap.String("wallet", resp.AppName))
		return nil
	}

	p, err := ParseProof(resp.Proof)
	if err != nil {
		metrics.ProofVerifications.WithLabelValues("malformed").Inc()
		return apperrors.ProofError(err, "connection proof is malformed")
	}
	if v.domain != "" && p.Domain.Value != v.domain {
		metrics.ProofVerifications.WithLabelValues("domain_mismatch").Inc()
		return apperrors.ProofError(fmt.Errorf("%w: got %q", ErrDomainMismatch, p.Domain.Value),
			"connection proof was issued for another domain")
	}
	if !VerifySignature(resp.PublicKey, p.Signature, Message(p, resp.Address, resp.PublicKey)) {
		metrics.ProofVerifications.WithLabelValues("invalid").Inc()
		return apperrors.ProofError(ErrInvalidSignature, "connection proof signature is invalid")
	}

	metrics.ProofVerifications.WithLabelValues("valid").Inc()
	return nil
}

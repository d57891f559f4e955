// Package proof verifies the ton_proof attestation a wallet attaches to a connect response.
package proof

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

var (
	ErrMalformedProof   = errors.New("malformed proof")
	ErrInvalidSignature = errors.New("proof signature does not verify")
	ErrMissingProof     = errors.New("proof is required")
	ErrDomainMismatch   = errors.New("proof domain mismatch")
)

type wireProof struct {
	Timestamp *int64 `json:"timestamp"`
	Domain    *struct {
		LengthBytes *uint32 `json:"lengthBytes"`
		Value       *string `json:"value"`
	} `json:"domain"`
	Signature *string `json:"signature"`
	Payload   string  `json:"payload"`
}

// ParseProof decodes a raw proof object. Missing fields, a non-numeric
// timestamp or a domain length that does not match the value are errors.
func ParseProof(raw json.RawMessage) (*tonconnect.Proof, error) {
	var w wireProof
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProof, err)
	}
	switch {
	case w.Timestamp == nil:
		return nil, fmt.Errorf("%w: missing timestamp", ErrMalformedProof)
	case w.Domain == nil || w.Domain.LengthBytes == nil || w.Domain.Value == nil:
		return nil, fmt.Errorf("%w: missing domain", ErrMalformedProof)
	case w.Signature == nil || *w.Signature == "":
		return nil, fmt.Errorf("%w: missing signature", ErrMalformedProof)
	}
	if int(*w.Domain.LengthBytes) != len(*w.Domain.Value) {
		return nil, fmt.Errorf("%w: domain length %d does not match value", ErrMalformedProof, *w.Domain.LengthBytes)
	}

	return &tonconnect.Proof{
		Timestamp: *w.Timestamp,
		Domain: tonconnect.ProofDomain{
			LengthBytes: *w.Domain.LengthBytes,
			Value:       *w.Domain.Value,
		},
		Signature: *w.Signature,
		Payload:   w.Payload,
	}, nil
}

// Message rebuilds the signed message:
// "<timestamp>.<lengthBytes>.<domain>.<address>.<publicKey>".
func Message(p *tonconnect.Proof, address, publicKey string) string {
	return strings.Join([]string{
		strconv.FormatInt(p.Timestamp, 10),
		strconv.FormatUint(uint64(p.Domain.LengthBytes), 10),
		p.Domain.Value,
		address,
		publicKey,
	}, ".")
}

// VerifySignature checks a detached ed25519 signature. The key is hex and must
// decode to 32 bytes, the signature is base64 and must decode to 64 bytes.
// Any decoding problem is reported as a failed verification.
func VerifySignature(publicKeyHex, signatureB64, message string) bool {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return false
	}
	sig, err := decodeSignature(signatureB64)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(key), []byte(message), sig)
}

func decodeSignature(s string) ([]byte, error) {
	var lastErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

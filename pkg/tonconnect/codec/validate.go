package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/address"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// MaxMessages is the largest number of messages accepted in one transaction request.
const MaxMessages = 255

// MaxAmountNano is the exclusive ceiling for a single message amount.
var MaxAmountNano = decimal.RequireFromString("5000000000000000000")

var (
	friendlyURLAddress = regexp.MustCompile(`^[A-Za-z0-9_-]{48}$`)
	friendlyStdAddress = regexp.MustCompile(`^[A-Za-z0-9+/]{48}$`)
	rawAddress         = regexp.MustCompile(`^-?[0-9]+:[0-9a-fA-F]{64}$`)
	amountPattern      = regexp.MustCompile(`^[1-9][0-9]*$`)
)

// Validation failures. Exported wrappers return them inside an INVALID_REQUEST error.
var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidBase64   = errors.New("invalid base64")
	ErrExpired         = errors.New("validUntil is not in the future")
	ErrNoMessages      = errors.New("transaction has no messages")
	ErrTooManyMessages = errors.New("transaction has too many messages")
)

type validateSettings struct {
	strictChecksum bool
}

// ValidateOption tunes request validation.
type ValidateOption func(*validateSettings)

// WithStrictChecksum also verifies the CRC of user-friendly addresses and the
// workchain of raw ones.
func WithStrictChecksum(strict bool) ValidateOption {
	return func(s *validateSettings) { s.strictChecksum = strict }
}

func applyValidateOptions(opts []ValidateOption) validateSettings {
	var s validateSettings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// ValidateAddress checks addr against the TON address grammar: a 48 char
// user-friendly form in either base64 alphabet, or <workchain>:<64 hex>.
func ValidateAddress(addr string, opts ...ValidateOption) error {
	s := applyValidateOptions(opts)

	switch {
	case friendlyURLAddress.MatchString(addr), friendlyStdAddress.MatchString(addr):
		if s.strictChecksum {
			if _, err := address.ParseAddr(addr); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
			}
		}
		return nil
	case rawAddress.MatchString(addr):
		if s.strictChecksum {
			if _, err := address.ParseRawAddr(addr); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
}

// ValidateAmount checks that amount is a positive integer nanoton string below MaxAmountNano.
func ValidateAmount(amount string) error {
	if !amountPattern.MatchString(amount) {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if d.Cmp(MaxAmountNano) >= 0 {
		return fmt.Errorf("%w: %s exceeds ceiling", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateBase64 accepts standard or URL-safe base64, padded or not.
func ValidateBase64(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidBase64)
	}
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		if _, err := enc.DecodeString(s); err == nil {
			return nil
		}
	}
	return ErrInvalidBase64
}

// ValidateTransactionRequest checks a request before anything is sent to the wallet.
func ValidateTransactionRequest(req tonconnect.TransactionRequest, now time.Time, opts ...ValidateOption) error {
	if req.ValidUntil <= now.UnixMilli() {
		return apperrors.BadRequestError(ErrExpired, "transaction validUntil must be in the future")
	}
	if len(req.Messages) == 0 {
		return apperrors.BadRequestError(ErrNoMessages, "transaction must contain at least one message")
	}
	if len(req.Messages) > MaxMessages {
		return apperrors.BadRequestError(ErrTooManyMessages,
			fmt.Sprintf("transaction must contain at most %d messages", MaxMessages))
	}
	if req.From != "" {
		if err := ValidateAddress(req.From, opts...); err != nil {
			return apperrors.BadRequestError(err, "invalid sender address")
		}
	}

	for i, msg := range req.Messages {
		if err := ValidateAddress(msg.Address, opts...); err != nil {
			return apperrors.BadRequestError(err, fmt.Sprintf("message %d: invalid address", i))
		}
		if err := ValidateAmount(msg.Amount); err != nil {
			return apperrors.BadRequestError(err, fmt.Sprintf("message %d: invalid amount", i))
		}
		if msg.Payload != "" {
			if err := ValidateBase64(msg.Payload); err != nil {
				return apperrors.BadRequestError(err, fmt.Sprintf("message %d: payload must be base64", i))
			}
		}
		if msg.StateInit != "" {
			if err := ValidateBase64(msg.StateInit); err != nil {
				return apperrors.BadRequestError(err, fmt.Sprintf("message %d: stateInit must be base64", i))
			}
		}
	}
	return nil
}

package codec

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// NanoPerTon is the number of decimal places in one TON.
const NanoPerTon = 9

// DefaultTransferTTL is how long a transfer built by BuildTransferTransaction stays valid.
const DefaultTransferTTL = 5 * time.Minute

// TonToNano converts a TON amount to a nanoton integer string, truncating
// anything below one nanoton.
func TonToNano(amount float64) string {
	return decimal.NewFromFloat(amount).Shift(NanoPerTon).Truncate(0).String()
}

// NanoToTon converts a nanoton integer string to TON.
func NanoToTon(nano string) (float64, error) {
	d, err := decimal.NewFromString(nano)
	if err != nil {
		return 0, fmt.Errorf("parse nano amount: %w", err)
	}
	f, _ := d.Shift(-NanoPerTon).Float64()
	return f, nil
}

type transferSettings struct {
	now     func() time.Time
	ttl     time.Duration
	payload string
	network string
}

// TransferOption customizes BuildTransferTransaction.
type TransferOption func(*transferSettings)

// WithTransferTTL overrides DefaultTransferTTL.
func WithTransferTTL(ttl time.Duration) TransferOption {
	return func(s *transferSettings) { s.ttl = ttl }
}

// WithTransferPayload attaches a base64 payload (e.g. a comment cell) to the message.
func WithTransferPayload(payload string) TransferOption {
	return func(s *transferSettings) { s.payload = payload }
}

// WithTransferNetwork pins the request to a network id.
func WithTransferNetwork(network string) TransferOption {
	return func(s *transferSettings) { s.network = network }
}

// WithTransferClock replaces time.Now.
func WithTransferClock(now func() time.Time) TransferOption {
	return func(s *transferSettings) { s.now = now }
}

// BuildTransferTransaction builds a single-message request sending amountTON to "to".
func BuildTransferTransaction(to string, amountTON float64, opts ...TransferOption) (tonconnect.TransactionRequest, error) {
	s := transferSettings{now: time.Now, ttl: DefaultTransferTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	if err := ValidateAddress(to); err != nil {
		return tonconnect.TransactionRequest{}, apperrors.BadRequestError(err, "invalid recipient address")
	}
	amount := TonToNano(amountTON)
	if err := ValidateAmount(amount); err != nil {
		return tonconnect.TransactionRequest{}, apperrors.BadRequestError(err, "invalid transfer amount")
	}

	return tonconnect.TransactionRequest{
		ValidUntil: s.now().Add(s.ttl).UnixMilli(),
		Network:    s.network,
		Messages: []tonconnect.Message{{
			Address: to,
			Amount:  amount,
			Payload: s.payload,
		}},
	}, nil
}

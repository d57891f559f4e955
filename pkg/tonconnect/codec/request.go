package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// Wallet sub-paths appended to the universal link.
const (
	SendTransactionPath = "/send-transaction"
	SignDataPath        = "/sign-data"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ConnectionParams describes an outbound connect link.
type ConnectionParams struct {
	ManifestURL   string `validate:"required,url"`
	UniversalLink string `validate:"required,url"`
	ReturnScheme  string
	// IncludeReturnScheme embeds ReturnScheme in the payload. Some wallets
	// cannot route the callback without it.
	IncludeReturnScheme bool
	ReturnStrategy      tonconnect.ReturnStrategy `validate:"omitempty,oneof=back post_redirect none"`
	// ProofPayload adds a ton_proof item with this nonce when non-empty.
	ProofPayload string
}

// TransactionParams describes an outbound send-transaction link.
type TransactionParams struct {
	UniversalLink       string `validate:"required,url"`
	Request             tonconnect.TransactionRequest
	ReturnScheme        string
	IncludeReturnScheme bool
	ReturnStrategy      tonconnect.ReturnStrategy `validate:"omitempty,oneof=back post_redirect none"`
}

// SignDataParams describes an outbound sign-data link.
type SignDataParams struct {
	UniversalLink       string `validate:"required,url"`
	Request             tonconnect.SignDataRequest
	ReturnScheme        string
	IncludeReturnScheme bool
	ReturnStrategy      tonconnect.ReturnStrategy `validate:"omitempty,oneof=back post_redirect none"`
}

type transactionPayload struct {
	tonconnect.TransactionRequest
	ReturnStrategy tonconnect.ReturnStrategy `json:"returnStrategy,omitempty"`
	ReturnScheme   string                    `json:"returnScheme,omitempty"`
}

type signDataPayload struct {
	tonconnect.SignDataRequest
	ReturnStrategy tonconnect.ReturnStrategy `json:"returnStrategy,omitempty"`
	ReturnScheme   string                    `json:"returnScheme,omitempty"`
}

// BuildConnectionRequest returns <universalLink>?<payload>.
// The ton_addr item is always requested.
func BuildConnectionRequest(p ConnectionParams) (string, error) {
	if err := validateParams(p, p.IncludeReturnScheme, p.ReturnScheme); err != nil {
		return "", err
	}

	req := tonconnect.ConnectRequest{
		ManifestURL:    p.ManifestURL,
		Items:          []tonconnect.DataItem{{Name: tonconnect.ItemTonAddr}},
		ReturnStrategy: p.ReturnStrategy,
	}
	if p.ProofPayload != "" {
		req.Items = append(req.Items, tonconnect.DataItem{Name: tonconnect.ItemTonProof, Payload: p.ProofPayload})
	}
	if p.IncludeReturnScheme {
		req.ReturnScheme = p.ReturnScheme
	}

	return buildLink(p.UniversalLink, "", req)
}

// BuildTransactionRequest returns <universalLink>/send-transaction?<payload>.
// The request itself is expected to be validated by the caller.
func BuildTransactionRequest(p TransactionParams) (string, error) {
	if err := validateParams(p, p.IncludeReturnScheme, p.ReturnScheme); err != nil {
		return "", err
	}

	payload := transactionPayload{TransactionRequest: p.Request, ReturnStrategy: p.ReturnStrategy}
	if p.IncludeReturnScheme {
		payload.ReturnScheme = p.ReturnScheme
	}
	return buildLink(p.UniversalLink, SendTransactionPath, payload)
}

// BuildSignDataRequest returns <universalLink>/sign-data?<payload>.
func BuildSignDataRequest(p SignDataParams) (string, error) {
	if err := validateParams(p, p.IncludeReturnScheme, p.ReturnScheme); err != nil {
		return "", err
	}
	if err := ValidateBase64(p.Request.Data); err != nil {
		return "", apperrors.BadRequestError(err, "sign data payload must be base64")
	}

	payload := signDataPayload{SignDataRequest: p.Request, ReturnStrategy: p.ReturnStrategy}
	if p.IncludeReturnScheme {
		payload.ReturnScheme = p.ReturnScheme
	}
	return buildLink(p.UniversalLink, SignDataPath, payload)
}

func validateParams(p any, includeScheme bool, scheme string) error {
	if err := validate.Struct(p); err != nil {
		return apperrors.BadRequestError(err, fmt.Sprintf("invalid link parameters: %v", err))
	}
	if includeScheme && scheme == "" {
		return apperrors.BadRequestError(errors.New("return scheme is required"), "wallet requires a return scheme")
	}
	return nil
}

func buildLink(universalLink, subPath string, payload any) (string, error) {
	enc, err := EncodeBase64URL(payload)
	if err != nil {
		return "", apperrors.BadRequestError(err, "failed to encode request payload")
	}
	return strings.TrimRight(universalLink, "/") + subPath + "?" + enc, nil
}

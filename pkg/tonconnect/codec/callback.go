package codec

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// Callback size limits.
const (
	MaxCallbackLength = 10000
	MaxPayloadLength  = 5000
)

// CallbackKind is the structural shape of a decoded callback payload.
// The wire format carries no type tag, so the kind is inferred from fields.
type CallbackKind string

const (
	CallbackUnrecognized CallbackKind = "unrecognized"
	CallbackError        CallbackKind = "error"
	CallbackConnect      CallbackKind = "connect"
	// CallbackSigned carries {boc, signature}; transaction and sign-data
	// replies share it and are told apart by which operation is pending.
	CallbackSigned CallbackKind = "signed"
	// CallbackSignature is a signature-only sign-data reply.
	CallbackSignature CallbackKind = "signature"
)

// Callback is the parsed form of an inbound callback link.
type Callback struct {
	Kind      CallbackKind
	Connect   *tonconnect.ConnectResponse
	Error     *tonconnect.WalletError
	Signed    *tonconnect.TransactionResult
	Signature *tonconnect.SignDataResult
	// Reason explains why a link was unrecognized.
	Reason string
}

var payloadAlphabet = regexp.MustCompile(`^[A-Za-z0-9_-]+={0,2}$`)

// CallbackPrefix returns the exact prefix a callback for scheme must start with.
func CallbackPrefix(scheme string) string {
	return scheme + "://tonconnect?"
}

// ParseCallbackURL decodes a callback link addressed to scheme.
// It never fails: anything that does not pass every gate is reported as
// CallbackUnrecognized with a Reason.
func ParseCallbackURL(raw, scheme string) Callback {
	if len(raw) > MaxCallbackLength {
		return unrecognized("callback too long")
	}
	if scheme == "" {
		return unrecognized("empty scheme")
	}
	prefix := CallbackPrefix(scheme)
	if !strings.HasPrefix(raw, prefix) {
		return unrecognized("prefix mismatch")
	}

	encoded := raw[len(prefix):]
	if len(encoded) == 0 || len(encoded) > MaxPayloadLength {
		return unrecognized("payload length out of range")
	}
	// wallets disagree on percent-encoding the payload
	if unescaped, err := url.PathUnescape(encoded); err == nil {
		encoded = unescaped
	}
	if len(encoded) == 0 || len(encoded) > MaxPayloadLength {
		return unrecognized("payload length out of range")
	}
	if !payloadAlphabet.MatchString(encoded) {
		return unrecognized("payload is not base64url")
	}

	var obj map[string]json.RawMessage
	if err := DecodeBase64URL(encoded, &obj); err != nil || obj == nil {
		return unrecognized("payload is not a JSON object")
	}

	return classify(obj)
}

func classify(obj map[string]json.RawMessage) Callback {
	if werr, ok := walletError(obj); ok {
		return Callback{Kind: CallbackError, Error: werr}
	}

	_, hasSession := stringField(obj, "session")
	_, hasAddress := stringField(obj, "address")
	_, hasKey := stringField(obj, "publicKey")
	if hasSession && hasAddress && hasKey {
		resp, err := connectResponse(obj)
		if err != nil {
			return unrecognized("malformed connect response")
		}
		return Callback{Kind: CallbackConnect, Connect: resp}
	}

	signature, hasSignature := stringField(obj, "signature")
	boc, hasBOC := stringField(obj, "boc")
	if hasSignature && hasBOC {
		return Callback{Kind: CallbackSigned, Signed: &tonconnect.TransactionResult{BOC: boc, Signature: signature}}
	}
	if _, present := obj["boc"]; hasSignature && !present {
		res := &tonconnect.SignDataResult{Signature: signature}
		if ts, ok := obj["timestamp"]; ok {
			_ = json.Unmarshal(ts, &res.Timestamp)
		}
		return Callback{Kind: CallbackSignature, Signature: res}
	}

	return unrecognized("unknown payload shape")
}

func walletError(obj map[string]json.RawMessage) (*tonconnect.WalletError, bool) {
	raw, ok := obj["error"]
	if !ok {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	codeRaw, messageRaw := fields["code"], fields["message"]
	if isNull(codeRaw) || isNull(messageRaw) {
		return nil, false
	}
	var code float64
	if err := json.Unmarshal(codeRaw, &code); err != nil {
		return nil, false
	}
	var message string
	if err := json.Unmarshal(messageRaw, &message); err != nil {
		return nil, false
	}
	return &tonconnect.WalletError{Code: int(code), Message: message}, true
}

// connectResponse decodes the known string fields and keeps the proof raw.
func connectResponse(obj map[string]json.RawMessage) (*tonconnect.ConnectResponse, error) {
	resp := &tonconnect.ConnectResponse{Proof: obj["proof"]}
	targets := map[string]*string{
		"session":   &resp.Session,
		"name":      &resp.Name,
		"appName":   &resp.AppName,
		"version":   &resp.Version,
		"platform":  &resp.Platform,
		"address":   &resp.Address,
		"publicKey": &resp.PublicKey,
		"icon":      &resp.Icon,
	}
	for key, dst := range targets {
		raw, ok := obj[key]
		if !ok || isNull(raw) {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func unrecognized(reason string) Callback {
	return Callback{Kind: CallbackUnrecognized, Reason: reason}
}

package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

const (
	testAddress   = "EQD0vdSA_NedR9uvbgN9EikRX-suesDxGeFg69XQMavfLqIo"
	testPublicKey = "82a0b2543d06fec0aac952e9ec738be56ab1b6027fc0c1aa817ae14b4d1ed2fb"
	testLink      = "https://app.tonkeeper.com/ton-connect"
)

func mustEncode(t *testing.T, v any) string {
	t.Helper()
	enc, err := EncodeBase64URL(v)
	if err != nil {
		t.Fatalf("EncodeBase64URL() failed: %v", err)
	}
	return enc
}

func TestBase64URL_RoundTrip(t *testing.T) {
	payloads := []any{
		tonconnect.ConnectRequest{
			ManifestURL: "https://example.com/tonconnect-manifest.json",
			Items:       []tonconnect.DataItem{{Name: tonconnect.ItemTonAddr}},
		},
		tonconnect.TransactionRequest{
			ValidUntil: 1700000000000,
			Messages:   []tonconnect.Message{{Address: testAddress, Amount: "10000000"}},
		},
		map[string]any{"nested": map[string]any{"list": []any{1.0, "two", true}}, "unicode": "ü→✓"},
	}

	for _, p := range payloads {
		enc := mustEncode(t, p)
		if strings.ContainsAny(enc, "+/=") {
			t.Fatalf("encoded payload %q is not unpadded base64url", enc)
		}

		out := reflect.New(reflect.TypeOf(p))
		if err := DecodeBase64URL(enc, out.Interface()); err != nil {
			t.Fatalf("DecodeBase64URL() failed: %v", err)
		}
		if !reflect.DeepEqual(out.Elem().Interface(), p) {
			t.Fatalf("round trip mismatch: got %#v, want %#v", out.Elem().Interface(), p)
		}
	}
}

func TestDecodeBase64URL_ToleratesPadding(t *testing.T) {
	enc := mustEncode(t, map[string]string{"a": "b"})
	for len(enc)%4 != 0 {
		enc += "="
	}

	var out map[string]string
	if err := DecodeBase64URL(enc, &out); err != nil {
		t.Fatalf("DecodeBase64URL() failed: %v", err)
	}
	if out["a"] != "b" {
		t.Fatalf("unexpected decode result %v", out)
	}
}

func TestParseCallbackURL_Connect(t *testing.T) {
	enc := mustEncode(t, map[string]any{
		"session":   "s1",
		"address":   testAddress,
		"publicKey": testPublicKey,
		"name":      "Tonkeeper",
	})

	cb := ParseCallbackURL("app://tonconnect?"+enc, "app")
	if cb.Kind != CallbackConnect {
		t.Fatalf("expected connect callback, got %s (%s)", cb.Kind, cb.Reason)
	}
	if cb.Connect.Session != "s1" || cb.Connect.Address != testAddress || cb.Connect.PublicKey != testPublicKey {
		t.Fatalf("connect fields not preserved: %+v", cb.Connect)
	}
	if cb.Connect.HasProof() {
		t.Fatal("expected no proof")
	}
}

func TestParseCallbackURL_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    CallbackKind
	}{
		{
			name:    "user rejection",
			payload: map[string]any{"error": map[string]any{"code": 300, "message": "User declined the request"}},
			want:    CallbackError,
		},
		{
			name:    "error with string code",
			payload: map[string]any{"error": map[string]any{"code": "300", "message": "declined"}},
			want:    CallbackUnrecognized,
		},
		{
			name:    "signed transaction",
			payload: map[string]any{"boc": "te6ccgEBAQEAAgAAAA==", "signature": "c2ln"},
			want:    CallbackSigned,
		},
		{
			name:    "signature only",
			payload: map[string]any{"signature": "c2ln", "timestamp": 1700000000},
			want:    CallbackSignature,
		},
		{
			name:    "empty session",
			payload: map[string]any{"session": "", "address": testAddress, "publicKey": testPublicKey},
			want:    CallbackUnrecognized,
		},
		{
			name:    "empty boc",
			payload: map[string]any{"boc": "", "signature": "c2ln"},
			want:    CallbackUnrecognized,
		},
		{
			name:    "unknown object",
			payload: map[string]any{"hello": "world"},
			want:    CallbackUnrecognized,
		},
		{
			name:    "array",
			payload: []int{1, 2},
			want:    CallbackUnrecognized,
		},
		{
			name:    "null",
			payload: nil,
			want:    CallbackUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := ParseCallbackURL("app://tonconnect?"+mustEncode(t, tt.payload), "app")
			if cb.Kind != tt.want {
				t.Fatalf("expected %s, got %s (%s)", tt.want, cb.Kind, cb.Reason)
			}
		})
	}
}

func TestParseCallbackURL_ErrorFields(t *testing.T) {
	enc := mustEncode(t, map[string]any{"error": map[string]any{"code": 300, "message": "User declined"}})
	cb := ParseCallbackURL("app://tonconnect?"+enc, "app")
	if cb.Error == nil || cb.Error.Code != tonconnect.UserRejectedCode || cb.Error.Message != "User declined" {
		t.Fatalf("unexpected error payload %+v", cb.Error)
	}
}

func TestParseCallbackURL_Rejects(t *testing.T) {
	enc := mustEncode(t, map[string]any{"session": "s1", "address": testAddress, "publicKey": testPublicKey})

	tests := []struct {
		name string
		url  string
	}{
		{"wrong scheme", "other://tonconnect?" + enc},
		{"scheme case", "App://tonconnect?" + enc},
		{"extra path segment", "app://tonconnect/extra?" + enc},
		{"host case", "app://TonConnect?" + enc},
		{"too long", "app://tonconnect?" + strings.Repeat("A", MaxCallbackLength)},
		{"empty payload", "app://tonconnect?"},
		{"payload too long", "app://tonconnect?" + strings.Repeat("A", MaxPayloadLength+1)},
		{"bad characters", "app://tonconnect?" + enc[:10] + "$" + enc[10:]},
		{"standard alphabet", "app://tonconnect?abc+def/ghi"},
		{"query parameter", "app://tonconnect?payload=" + enc},
		{"broken percent escape", "app://tonconnect?%zz" + enc},
		{"not json", "app://tonconnect?" + "bm90IGpzb24"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := ParseCallbackURL(tt.url, "app")
			if cb.Kind != CallbackUnrecognized {
				t.Fatalf("expected unrecognized, got %s", cb.Kind)
			}
			if cb.Reason == "" {
				t.Fatal("expected a reason")
			}
		})
	}

	if cb := ParseCallbackURL("app://tonconnect?"+enc, ""); cb.Kind != CallbackUnrecognized {
		t.Fatalf("expected empty scheme to be rejected, got %s", cb.Kind)
	}
}

func TestParseCallbackURL_PercentEncoded(t *testing.T) {
	enc := mustEncode(t, map[string]any{"session": "s1", "address": testAddress, "publicKey": testPublicKey})

	cb := ParseCallbackURL("app://tonconnect?"+enc+"%3D", "app")
	if cb.Kind != CallbackConnect {
		t.Fatalf("expected connect from percent-encoded padding, got %s (%s)", cb.Kind, cb.Reason)
	}
}

func TestBuildConnectionRequest(t *testing.T) {
	params := ConnectionParams{
		ManifestURL:    "https://example.com/tonconnect-manifest.json",
		UniversalLink:  testLink,
		ReturnScheme:   "myapp",
		ReturnStrategy: tonconnect.ReturnBack,
	}

	link, err := BuildConnectionRequest(params)
	if err != nil {
		t.Fatalf("BuildConnectionRequest() failed: %v", err)
	}
	if !strings.HasPrefix(link, testLink+"?") {
		t.Fatalf("unexpected link %q", link)
	}

	var req tonconnect.ConnectRequest
	if err := DecodeBase64URL(strings.TrimPrefix(link, testLink+"?"), &req); err != nil {
		t.Fatalf("DecodeBase64URL() failed: %v", err)
	}
	if req.ReturnScheme != "" {
		t.Fatalf("return scheme embedded without wallet flag: %q", req.ReturnScheme)
	}
	if len(req.Items) != 1 || req.Items[0].Name != tonconnect.ItemTonAddr {
		t.Fatalf("expected only ton_addr item, got %+v", req.Items)
	}

	params.IncludeReturnScheme = true
	params.ProofPayload = "nonce"
	link, err = BuildConnectionRequest(params)
	if err != nil {
		t.Fatalf("BuildConnectionRequest() failed: %v", err)
	}
	req = tonconnect.ConnectRequest{}
	if err := DecodeBase64URL(strings.TrimPrefix(link, testLink+"?"), &req); err != nil {
		t.Fatalf("DecodeBase64URL() failed: %v", err)
	}
	if req.ReturnScheme != "myapp" {
		t.Fatalf("expected embedded return scheme, got %q", req.ReturnScheme)
	}
	if len(req.Items) != 2 || req.Items[1].Name != tonconnect.ItemTonProof || req.Items[1].Payload != "nonce" {
		t.Fatalf("expected ton_proof item, got %+v", req.Items)
	}
}

func TestBuildConnectionRequest_InvalidParams(t *testing.T) {
	_, err := BuildConnectionRequest(ConnectionParams{ManifestURL: "not a url", UniversalLink: testLink})
	if !apperrors.IsCode(err, apperrors.CodeInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}

	_, err = BuildConnectionRequest(ConnectionParams{
		ManifestURL:         "https://example.com/m.json",
		UniversalLink:       testLink,
		IncludeReturnScheme: true,
	})
	if !apperrors.IsCode(err, apperrors.CodeInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST for missing scheme, got %v", err)
	}
}

func TestBuildTransactionAndSignDataRequest(t *testing.T) {
	link, err := BuildTransactionRequest(TransactionParams{
		UniversalLink: testLink + "/",
		Request: tonconnect.TransactionRequest{
			ValidUntil: 1,
			Messages:   []tonconnect.Message{{Address: testAddress, Amount: "1"}},
		},
	})
	if err != nil {
		t.Fatalf("BuildTransactionRequest() failed: %v", err)
	}
	if !strings.HasPrefix(link, testLink+SendTransactionPath+"?") {
		t.Fatalf("unexpected transaction link %q", link)
	}

	link, err = BuildSignDataRequest(SignDataParams{
		UniversalLink: testLink,
		Request:       tonconnect.SignDataRequest{Data: EncodeSignDataString("hello")},
	})
	if err != nil {
		t.Fatalf("BuildSignDataRequest() failed: %v", err)
	}
	if !strings.HasPrefix(link, testLink+SignDataPath+"?") {
		t.Fatalf("unexpected sign-data link %q", link)
	}
}

func TestValidateAddress(t *testing.T) {
	valid := []string{
		testAddress,
		"EQD0vdSA+NedR9uvbgN9EikRX/suesDxGeFg69XQMavfLqIo",
		"0:" + testPublicKey,
		"-1:" + strings.ToUpper(testPublicKey),
	}
	for _, addr := range valid {
		if err := ValidateAddress(addr); err != nil {
			t.Errorf("ValidateAddress(%q) failed: %v", addr, err)
		}
	}

	invalid := []string{
		"",
		"EQ...",
		testAddress + "A",
		"EQD0vdSA_NedR9uvbgN9EikRX+suesDxGeFg69XQMavfLqIo",
		"0:" + testPublicKey[:63],
		"x:" + testPublicKey,
	}
	for _, addr := range invalid {
		if err := ValidateAddress(addr); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("ValidateAddress(%q) expected ErrInvalidAddress, got %v", addr, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	for _, amount := range []string{"1", "10000000", "4999999999999999999"} {
		if err := ValidateAmount(amount); err != nil {
			t.Errorf("ValidateAmount(%q) failed: %v", amount, err)
		}
	}
	for _, amount := range []string{"", "0", "-1", "1.5", "01", "1e9", "5000000000000000000", "abc"} {
		if err := ValidateAmount(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ValidateAmount(%q) expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestValidateTransactionRequest(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	msg := tonconnect.Message{Address: testAddress, Amount: "1000"}

	ok := tonconnect.TransactionRequest{ValidUntil: now.UnixMilli() + 1, Messages: []tonconnect.Message{msg}}
	if err := ValidateTransactionRequest(ok, now); err != nil {
		t.Fatalf("ValidateTransactionRequest() failed: %v", err)
	}

	tests := []struct {
		name string
		req  tonconnect.TransactionRequest
		want error
	}{
		{"expired now", tonconnect.TransactionRequest{ValidUntil: now.UnixMilli(), Messages: []tonconnect.Message{msg}}, ErrExpired},
		{"no messages", tonconnect.TransactionRequest{ValidUntil: now.UnixMilli() + 1000}, ErrNoMessages},
		{"too many messages", tonconnect.TransactionRequest{
			ValidUntil: now.UnixMilli() + 1000,
			Messages:   make([]tonconnect.Message, MaxMessages+1),
		}, ErrTooManyMessages},
		{"bad address", tonconnect.TransactionRequest{
			ValidUntil: now.UnixMilli() + 1000,
			Messages:   []tonconnect.Message{{Address: "nope", Amount: "1"}},
		}, ErrInvalidAddress},
		{"bad payload", tonconnect.TransactionRequest{
			ValidUntil: now.UnixMilli() + 1000,
			Messages:   []tonconnect.Message{{Address: testAddress, Amount: "1", Payload: "***"}},
		}, ErrInvalidBase64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransactionRequest(tt.req, now)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !apperrors.IsCode(err, apperrors.CodeInvalidRequest) {
				t.Fatalf("expected INVALID_REQUEST, got %v", err)
			}
		})
	}
}

func TestUnits(t *testing.T) {
	if got := TonToNano(1.5); got != "1500000000" {
		t.Fatalf("TonToNano(1.5) = %q", got)
	}
	if got := TonToNano(0.01); got != "10000000" {
		t.Fatalf("TonToNano(0.01) = %q", got)
	}
	got, err := NanoToTon("1500000000")
	if err != nil {
		t.Fatalf("NanoToTon() failed: %v", err)
	}
	if got != 1.5 {
		t.Fatalf("NanoToTon(1500000000) = %v", got)
	}
	if _, err := NanoToTon("many"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestBuildTransferTransaction(t *testing.T) {
	before := time.Now()
	req, err := BuildTransferTransaction(testAddress, 0.01)
	if err != nil {
		t.Fatalf("BuildTransferTransaction() failed: %v", err)
	}
	after := time.Now()

	if len(req.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(req.Messages))
	}
	if req.Messages[0].Amount != "10000000" || req.Messages[0].Address != testAddress {
		t.Fatalf("unexpected message %+v", req.Messages[0])
	}
	lo := before.Add(DefaultTransferTTL).UnixMilli()
	hi := after.Add(DefaultTransferTTL).UnixMilli()
	if req.ValidUntil < lo || req.ValidUntil > hi {
		t.Fatalf("validUntil %d not within [%d, %d]", req.ValidUntil, lo, hi)
	}

	if _, err := BuildTransferTransaction(testAddress, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero transfer, got %v", err)
	}
}

func TestEncodeSignData(t *testing.T) {
	if got := EncodeSignDataString("hello"); got != "aGVsbG8=" {
		t.Fatalf("EncodeSignDataString(hello) = %q", got)
	}
	if got := EncodeSignDataString("aGVsbG8="); got != "aGVsbG8=" {
		t.Fatalf("already encoded string was re-encoded: %q", got)
	}
	if got := EncodeSignData([]byte("aGVsbG8=")); got == "aGVsbG8=" {
		t.Fatal("raw bytes must always be encoded")
	}
}

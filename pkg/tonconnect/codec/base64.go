// Package codec builds outbound TON Connect deep links and parses the
// callback links wallets send back.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeBase64URL serializes v to JSON and encodes it as unpadded URL-safe base64.
func EncodeBase64URL(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeBase64URL reverses EncodeBase64URL into v.
// Padding and the standard alphabet are tolerated.
func DecodeBase64URL(s string, v any) error {
	raw, err := decodeBase64URLBytes(s)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

func decodeBase64URLBytes(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64url: %w", err)
	}
	return raw, nil
}

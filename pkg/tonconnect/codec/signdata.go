package codec

import "encoding/base64"

// EncodeSignData encodes raw bytes for a sign-data request. Bytes are always encoded.
func EncodeSignData(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeSignDataString encodes s unless it already is canonical padded base64,
// in which case it is passed through to avoid double encoding.
func EncodeSignDataString(s string) string {
	if looksLikeBase64(s) {
		return s
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func looksLikeBase64(s string) bool {
	if s == "" || len(s)%4 != 0 {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return false
	}
	return base64.StdEncoding.EncodeToString(raw) == s
}

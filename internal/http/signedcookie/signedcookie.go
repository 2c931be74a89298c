// Package signedcookie encodes JSON values as tamper-evident cookie strings.
package signedcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalid = errors.New("invalid signed value")

// Seal returns base64url(json(v)) + "." + base64url(hmac-sha256).
func Seal(secret []byte, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(secret, payload), nil
}

// Open verifies s and decodes its payload into v.
func Open(secret []byte, s string, v any) error {
	payload, sig, ok := strings.Cut(s, ".")
	if !ok || payload == "" || strings.Contains(sig, ".") {
		return ErrInvalid
	}
	if !hmac.Equal([]byte(sign(secret, payload)), []byte(sig)) {
		return ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return ErrInvalid
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrInvalid
	}
	return nil
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

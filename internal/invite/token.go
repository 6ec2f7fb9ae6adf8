package invite

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

type signedPayload struct {
	PreUserID string `json:"pid"`
	IssuedAt  int64  `json:"iat"`
}

// DecodedToken is what a token says about its invite
type DecodedToken struct {
	PreUserID string
	IssuedAt  time.Time
	Legacy    bool
}

// TokenCodec signs new invite tokens and reads both signed and legacy ones.
//
// Signed tokens are base64url(json payload) + "." + base64url(HMAC-SHA256).
// Legacy tokens are the pre-user id XORed with a repeating key, then standard Base64.
type TokenCodec struct {
	secret    []byte
	legacyKey []byte
	maxAge    time.Duration
	now       func() time.Time
}

// NewTokenCodec creates a codec. maxAge <= 0 disables expiry.
func NewTokenCodec(secret, legacyKey string, maxAge time.Duration) *TokenCodec {
	if legacyKey == "" {
		legacyKey = DefaultLegacyKey
	}
	return &TokenCodec{
		secret:    []byte(secret),
		legacyKey: []byte(legacyKey),
		maxAge:    maxAge,
		now:       time.Now,
	}
}

// Sign issues a token for preUserID
func (c *TokenCodec) Sign(preUserID string) (string, error) {
	body, err := json.Marshal(signedPayload{PreUserID: preUserID, IssuedAt: c.now().Unix()})
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgSignToken, err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(body)
	return encoded + signedTokenSeparator + base64.RawURLEncoding.EncodeToString(c.mac(encoded)), nil
}

func (c *TokenCodec) mac(encodedPayload string) []byte {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(encodedPayload))
	return h.Sum(nil)
}

// IsSigned reports whether token has the signed shape. Standard Base64 never contains '.'.
func IsSigned(token string) bool {
	return strings.Contains(token, signedTokenSeparator)
}

// Decode reads a token, trying the signed format before the legacy cipher.
// Any token that does not yield a valid pre-user id is domain.ErrInviteNotFound.
func (c *TokenCodec) Decode(token string) (*DecodedToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInviteNotFound
	}
	if IsSigned(token) {
		return c.decodeSigned(token)
	}
	id, ok := DecryptLegacy(string(c.legacyKey), token)
	if !ok || !validUUID(id) {
		return nil, domain.ErrInviteNotFound
	}
	return &DecodedToken{PreUserID: id, Legacy: true}, nil
}

func (c *TokenCodec) decodeSigned(token string) (*DecodedToken, error) {
	encoded, sig, ok := strings.Cut(token, signedTokenSeparator)
	if !ok {
		return nil, domain.ErrInviteNotFound
	}
	gotMAC, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(gotMAC, c.mac(encoded)) {
		return nil, domain.ErrInviteNotFound
	}
	body, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, domain.ErrInviteNotFound
	}
	var p signedPayload
	if err := json.Unmarshal(body, &p); err != nil || !validUUID(p.PreUserID) {
		return nil, domain.ErrInviteNotFound
	}
	return &DecodedToken{PreUserID: p.PreUserID, IssuedAt: time.Unix(p.IssuedAt, 0)}, nil
}

// Expired reports whether a signed token has outlived the codec's max age.
// Legacy tokens carry no issue time and never expire.
func (c *TokenCodec) Expired(d *DecodedToken) bool {
	if d == nil || d.Legacy || c.maxAge <= 0 {
		return false
	}
	now := c.now()
	if d.IssuedAt.After(now.Add(maxClockSkew)) {
		return true
	}
	return now.Sub(d.IssuedAt) > c.maxAge
}

// EncryptLegacy produces a legacy token. Only tests and link migration use it.
func EncryptLegacy(key, plaintext string) string {
	return base64.StdEncoding.EncodeToString(xorKey([]byte(plaintext), []byte(key)))
}

// DecryptLegacy reverses EncryptLegacy
func DecryptLegacy(key, token string) (string, bool) {
	if key == "" {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}
	return string(xorKey(raw, []byte(key))), true
}

func xorKey(data, key []byte) []byte {
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out
}

// validUUID accepts only the canonical 36-character hyphenated form
func validUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

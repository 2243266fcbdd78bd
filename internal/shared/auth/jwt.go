package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Token types carried in the typ claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims represents the identity contained in a JWT.
type Claims struct {
	Sub      string `json:"sub"`
	Username string `json:"username,omitempty"`
	Staff    bool   `json:"staff,omitempty"`
	Typ      string `json:"typ"`
	Jti      string `json:"jti,omitempty"`
	Exp      int64  `json:"exp,omitempty"`
	Iat      int64  `json:"iat,omitempty"`
}

// TokenPair bundles a fresh access/refresh token pair.
type TokenPair struct {
	Access  string
	Refresh string
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongType    = errors.New("wrong token type")
)

// Issuer signs and verifies HS256 tokens with a fixed secret and TTLs.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer constructs an Issuer. The secret must be non-empty.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// IssuePair signs an access and a refresh token for the given identity.
// The refresh token carries a jti so it can be revoked later.
func (i *Issuer) IssuePair(userID, username string, staff bool) (TokenPair, error) {
	access, err := i.IssueAccess(userID, username, staff)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(Claims{
		Sub:      userID,
		Username: username,
		Staff:    staff,
		Typ:      TypeRefresh,
		Jti:      uuid.NewString(),
	}, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess signs a short-lived access token.
func (i *Issuer) IssueAccess(userID, username string, staff bool) (string, error) {
	return i.sign(Claims{
		Sub:      userID,
		Username: username,
		Staff:    staff,
		Typ:      TypeAccess,
	}, i.accessTTL)
}

func (i *Issuer) sign(claims Claims, ttl time.Duration) (string, error) {
	if claims.Sub == "" {
		return "", errors.New("sub is required")
	}

	now := time.Now().UTC().Unix()
	claims.Iat = now
	claims.Exp = now + int64(ttl/time.Second)

	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	segments := []string{
		base64.RawURLEncoding.EncodeToString(headerJSON),
		base64.RawURLEncoding.EncodeToString(payloadJSON),
	}
	signingInput := strings.Join(segments, ".")

	sig := signHS256(signingInput, i.secret)
	segments = append(segments, sig)
	return strings.Join(segments, "."), nil
}

// Verify checks signature and expiry and returns the claims.
func (i *Issuer) Verify(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	signingInput := strings.Join(parts[0:2], ".")
	expectedSig := signHS256(signingInput, i.secret)
	if !hmac.Equal([]byte(parts[2]), []byte(expectedSig)) {
		return Claims{}, ErrInvalidToken
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}

	if claims.Sub == "" {
		return Claims{}, ErrInvalidToken
	}

	if claims.Exp > 0 && time.Now().UTC().Unix() > claims.Exp {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// VerifyType verifies the token and additionally checks the typ claim.
func (i *Issuer) VerifyType(token, typ string) (Claims, error) {
	claims, err := i.Verify(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.Typ != typ {
		return Claims{}, ErrWrongType
	}
	return claims, nil
}

func signHS256(input string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

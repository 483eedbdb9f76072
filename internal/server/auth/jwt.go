// Package auth issues and verifies the signed bearer tokens that represent
// an authenticated session. Tokens are compact JWTs signed with HMAC-SHA256
// using a process-wide symmetric secret.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/credkeeper/credkeeper/internal/common"
)

// signingMethod is the only algorithm accepted on both issue and verify.
// Tokens declaring anything else are rejected outright.
var signingMethod = jwt.SigningMethodHS256

// Claims carries the identity assertions embedded in a token: the subject
// (username) and role list, plus the registered issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// IssueToken mints a signed token for the given subject and roles, valid
// from now until now + validity. An empty secret is a configuration error;
// it should be caught at startup, not per request.
func IssueToken(subject string, roles []string, secretKey []byte, validity time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", errors.New("empty signing secret")
	}

	now := time.Now()
	token := jwt.NewWithClaims(signingMethod, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Roles: roles,
	})

	return token.SignedString(secretKey)
}

// VerifyToken validates the token's signature and expiry against the secret
// and returns the decoded claims. Failures map onto the sentinel errors in
// internal/common so callers can distinguish them for telemetry:
// common.ErrTokenExpired, common.ErrTokenSignatureInvalid,
// common.ErrTokenMalformed.
func VerifyToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, common.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignatureInvalid
		default:
			// Unexpected algorithm or otherwise unverifiable token.
			return nil, common.ErrTokenSignatureInvalid
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenSignatureInvalid
	}

	return claims, nil
}

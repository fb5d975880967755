package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // error values returned on invalid tokens
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are encoded in the Authorization
// header when calling protected endpoints; there is no refresh token in
// this system, clients simply log in again when the token expires.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned by ParseAccessToken when a token fails
// signature or claims validation.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID and a TTL in minutes.  The JWT carries the
// standard claims: subject (sub), expiration (exp) and issued at (iat).
// Role is intentionally not embedded; the auth middleware loads the user
// row on every request so role and status changes take effect immediately.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates the signature and expiry of a raw token string
// and returns the subject user ID.  Any parse or validation failure is
// reported as ErrInvalidToken; callers should not distinguish further.
func ParseAccessToken(secret, raw string) (uint64, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Only HMAC signatures are accepted; reject other methods.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, ErrInvalidToken
    }
    // The sub claim round-trips through JSON as float64.
    sub, ok := claims["sub"].(float64)
    if !ok || sub < 1 {
        return 0, ErrInvalidToken
    }
    return uint64(sub), nil
}

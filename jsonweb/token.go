// Package jsonweb issues and parses the signed bearer tokens that carry
// the authenticated principal between requests.
package jsonweb

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

// TokenParser produces and parses tokens signed with an HMAC secret.
type TokenParser struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenParser returns a parser for tokens signed with secret.
func NewTokenParser(secret []byte) *TokenParser {
	return &TokenParser{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Parse validates the provided token string and returns its claims.
func (t *TokenParser) Parse(v string) (*Token, error) {
	claims := &Token{}
	_, err := t.parser.ParseWithClaims(v, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, &errors.Error{
			Code: errors.EUnauthorized,
			Msg:  "token is invalid",
			Err:  err,
		}
	}
	return claims, nil
}

// Sign returns a signed token string carrying claims.
func (t *TokenParser) Sign(claims *Token) (string, error) {
	v, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", &errors.Error{Code: errors.EInternal, Err: err}
	}
	return v, nil
}

// Token is a typed JSON web token carrying an authenticated user ID as
// its subject.
type Token struct {
	jwt.RegisteredClaims
}

// NewToken returns a token for userID that expires after ttl.
func NewToken(userID orderly.ID, now time.Time, ttl time.Duration) *Token {
	return &Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// UserID returns the user ID the token was issued to.
func (t *Token) UserID() (orderly.ID, error) {
	var id orderly.ID
	if err := id.DecodeFromString(t.Subject); err != nil {
		return 0, &errors.Error{
			Code: errors.EUnauthorized,
			Msg:  "token subject is not a valid user id",
			Err:  err,
		}
	}
	return id, nil
}

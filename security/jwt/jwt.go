// Package jwt signs and verifies the HS256 bearer tokens handed out at login.
package jwt

import (
	"time"

	"github.com/ncobase/taskapi/utils/nanoid"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	DefaultAccessTokenExpire = time.Hour * 24

	SubjectAccess = "access"

	ErrNeedTokenProvider = TokenError("cannot sign token without token provider")
	ErrInvalidToken      = TokenError("invalid token")
	ErrTokenParsing      = TokenError("token parsing error")
)

// TokenManager handles JWT token operations
type TokenManager struct {
	key    string
	expire time.Duration
	now    func() time.Time
}

// NewTokenManager creates a new TokenManager instance.
// A zero expire falls back to DefaultAccessTokenExpire.
func NewTokenManager(key string, expire time.Duration) *TokenManager {
	if expire <= 0 {
		expire = DefaultAccessTokenExpire
	}
	return &TokenManager{key: key, expire: expire, now: time.Now}
}

// validateKey validates the token key
func (jtm *TokenManager) validateKey() error {
	if jtm.key == "" {
		return ErrNeedTokenProvider
	}
	return nil
}

// GenerateAccessToken generates an access token for the user
func (jtm *TokenManager) GenerateAccessToken(userID string) (string, error) {
	if err := jtm.validateKey(); err != nil {
		return "", err
	}

	now := jtm.now()
	claims := jwtstd.MapClaims{
		"jti":     nanoid.PrimaryKey(),
		"sub":     SubjectAccess,
		"payload": map[string]any{"user_id": userID},
		"iat":     now.Unix(),
		"exp":     now.Add(jtm.expire).Unix(),
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString([]byte(jtm.key))
}

// ValidateToken validates a JWT token
func (jtm *TokenManager) ValidateToken(tokenString string) (*jwtstd.Token, error) {
	if err := jtm.validateKey(); err != nil {
		return nil, err
	}

	return jwtstd.Parse(tokenString, func(token *jwtstd.Token) (any, error) {
		return []byte(jtm.key), nil
	},
		jwtstd.WithValidMethods([]string{jwtstd.SigningMethodHS256.Alg()}),
		jwtstd.WithTimeFunc(jtm.now),
		jwtstd.WithExpirationRequired(),
	)
}

// DecodeToken decodes a JWT token into its claims
func (jtm *TokenManager) DecodeToken(tokenString string) (map[string]any, error) {
	token, err := jtm.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwtstd.MapClaims)
	if !ok {
		return nil, ErrTokenParsing
	}
	return claims, nil
}

// ParseAccessToken verifies an access token and returns the user id it carries.
func (jtm *TokenManager) ParseAccessToken(tokenString string) (string, error) {
	claims, err := jtm.DecodeToken(tokenString)
	if err != nil {
		return "", err
	}
	if sub, _ := claims["sub"].(string); sub != SubjectAccess {
		return "", ErrInvalidToken
	}
	userID := GetUserIDFromToken(claims)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

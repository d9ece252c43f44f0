package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agrosilo/silosys/internal/config"
	"github.com/agrosilo/silosys/pkg/common/code"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type Claims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// NewAccessToken signs a short-lived access token for the user. Returns the
// token and its lifetime in seconds.
func NewAccessToken(userID int64) (string, int64, error) {
	conf := config.Global().Auth
	lifetime := time.Duration(conf.AccessTokenMinutes) * time.Minute
	token, err := signToken(userID, TokenAccess, lifetime, conf.SecretKey)
	return token, int64(lifetime.Seconds()), err
}

func NewRefreshToken(userID int64) (string, error) {
	conf := config.Global().Auth
	lifetime := time.Duration(conf.RefreshTokenDays) * 24 * time.Hour
	return signToken(userID, TokenRefresh, lifetime, conf.SecretKey)
}

func signToken(userID int64, kind TokenType, lifetime time.Duration, secret string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates signature, expiry and token kind, returning the user
// id carried in the subject.
func ParseToken(tokenStr string, want TokenType) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return []byte(config.Global().Auth.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, code.TokenInvalid.WithErr(err)
	}
	if claims.Type != want {
		return 0, code.TokenInvalid
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, code.TokenInvalid.WithErr(err)
	}
	return userID, nil
}

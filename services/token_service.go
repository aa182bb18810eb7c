package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"shop-api/apperrors"
	"shop-api/config"
)

// TokenService is responsible for creating and validating JWTs. Tokens are
// self-contained; there is no revocation list, a token stays valid until its
// embedded expiry.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		secretKey: []byte(cfg.JWTSecret),
		ttl:       cfg.TokenTTL,
	}
}

// Issue creates a signed access token for the given user.
func (s *TokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate parses a token string and returns the user ID it carries. Every
// failure mode on attacker-controlled input — malformed token, bad signature,
// expiry, missing or non-numeric subject — comes back as an authentication
// error, never a panic.
func (s *TokenService) Validate(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.Authentication("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperrors.Authentication("Invalid token payload")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, apperrors.Authentication("Invalid token payload")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, apperrors.Authentication("Invalid user in token")
	}
	return uint(userID), nil
}

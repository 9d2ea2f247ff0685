package services

import (
	"errors"
	"fmt"
	"time"

	"blog-platform/helper"
	"blog-platform/models"

	"github.com/golang-jwt/jwt/v4"
)

const tokenIssuer = "blog-platform"

type TokenService interface {
	Issue(userID uint) (string, error)
	Verify(token string) (uint, error)
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &jwtTokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token whose subject is the user id.
func (s *jwtTokenService) Issue(userID uint) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   helper.FormatID(userID),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id carried by token, or an ErrorUnauthorized with
// reason EXPIRED_TOKEN or INVALID_TOKEN.
func (s *jwtTokenService) Verify(token string) (uint, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, models.Unauthorized(models.ReasonExpiredToken, "Token expired")
		}
		return 0, models.Unauthorized(models.ReasonInvalidToken, "Invalid token")
	}

	if !parsed.Valid || claims.ExpiresAt == nil || !claims.VerifyIssuer(tokenIssuer, true) {
		return 0, models.Unauthorized(models.ReasonInvalidToken, "Invalid token")
	}

	userID, err := helper.ParseID(claims.Subject)
	if err != nil {
		return 0, models.Unauthorized(models.ReasonInvalidToken, "Invalid token")
	}
	return userID, nil
}

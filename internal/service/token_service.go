package service

import (
	"fmt"
	"time"
	"tourguide/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresIn is the fixed lifetime of an access token, in seconds.
const TokenExpiresIn = 86400

type TokenService interface {
	Generate(subject string) (string, error)
	Parse(tokenString string) (string, error)
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) TokenService {
	return newTokenService(secret, time.Now)
}

func newTokenService(secret string, now func() time.Time) *jwtTokenService {
	return &jwtTokenService{
		secret: []byte(secret),
		ttl:    TokenExpiresIn * time.Second,
		now:    now,
	}
}

func (s *jwtTokenService) Generate(subject string) (string, error) {
	issuedAt := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// Parse verifies the signature and expiry and returns the token subject.
func (s *jwtTokenService) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("ошибка парсинга токена: %v: %w", err, models.ErrInvalidToken)
	}

	if !token.Valid {
		return "", models.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("в токене нет subject: %w", models.ErrInvalidToken)
	}

	return claims.Subject, nil
}

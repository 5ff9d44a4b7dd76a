package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long issued tokens stay valid.
const DefaultTTL = 24 * time.Hour

var (
	ErrEmptySecret  = errors.New("auth: empty signing secret")
	ErrEmptySubject = errors.New("auth: empty token subject")
)

// Service issues and validates HS256 bearer tokens for API clients.
type Service struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(jwtSecret string) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		ttl:       DefaultTTL,
		now:       time.Now,
	}
}

// WithTTL returns a copy of s issuing tokens valid for ttl.
func (s *Service) WithTTL(ttl time.Duration) *Service {
	c := *s
	c.ttl = ttl
	return &c
}

func (s *Service) IssueToken(subject string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", ErrEmptySecret
	}
	if subject == "" {
		return "", ErrEmptySubject
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks the signature and expiry of tokenString and
// returns its subject.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", ErrEmptySecret
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", errors.New("invalid token subject")
	}

	return subject, nil
}

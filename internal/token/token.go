package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validity is the fixed lifetime of an issued token. There is no refresh
// mechanism; clients re-authenticate after expiry.
const Validity = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("token: invalid token")
	ErrExpiredToken = errors.New("token: expired token")
)

// Claims is the identity assertion carried by a session token.
type Claims struct {
	ID      int    `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256-signed session tokens. Tokens are
// stateless; revocation is not supported.
type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(secret []byte) *Service {
	return &Service{secret: secret, now: time.Now}
}

// Issue signs a token asserting the given identity, valid for Validity
// from now.
func (s *Service) Issue(id int, email string, isAdmin bool) (string, error) {
	now := s.now()
	claims := Claims{
		ID:      id,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Validity)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry of a token and returns its claims.
// It returns ErrExpiredToken past expiry and ErrInvalidToken for anything
// else that fails to verify.
func (s *Service) Verify(bearer string) (Claims, error) {
	claims := Claims{}

	parsed, err := jwt.ParseWithClaims(bearer, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// hmacMethods are the algorithms accepted when verifying. Tokens are always
// issued with HS256.
var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// Claims is the payload carried by session tokens.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Roles  []int  `json:"roles"`
	jwt.RegisteredClaims
}

// Identity is what a token is issued for.
type Identity struct {
	UserID string
	Email  string
	Roles  []int
}

// CreateJWT signs claims with HS256.
func CreateJWT(secretKey []byte, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyJWT checks the signature and time-based claims of tokenString and
// decodes its payload into claims. Only HMAC algorithms are accepted. Any
// failure is reported as ErrInvalidToken.
func VerifyJWT(secretKey []byte, tokenString string, claims jwt.Claims, now func() time.Time) error {
	opts := []jwt.ParserOption{jwt.WithValidMethods(hmacMethods)}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}

// Signature returns the signature segment of a compact JWT.
func Signature(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[2] == "" {
		return "", ErrInvalidToken
	}
	return parts[2], nil
}

func newClaims(id Identity, now time.Time, ttl time.Duration) Claims {
	return Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Roles:  id.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

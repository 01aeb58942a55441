package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// RoleAdmin is the role claim carried by back-office tokens.
const RoleAdmin = "admin"

var ErrInvalidToken = errors.New("invalid token")

// AdminClaims are the claims of a back-office token.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken creates a signed JWT for subject with the given role.
// The token expires after the specified duration.
func GenerateToken(subject, role string, secret []byte, duration time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string, secret []byte) (*AdminClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is not configured")
	}
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

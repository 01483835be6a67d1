package utils

import (
	"errors"
	"os"
	"time"

	"chequered/config"

	"github.com/golang-jwt/jwt"
)

// Operator roles carried in the "role" claim. Visitors never hold a token.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// OperatorClaims identifies the console operator behind a request.
type OperatorClaims struct {
	Subject string
	Role    string
}

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken creates a signed JWT for an operator with the given role.
// The token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	if len(secretKey()) == 0 {
		return "", errors.New("JWT_SECRET is not configured")
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key := secretKey()
	if len(key) == 0 {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ExtractOperator validates the token and returns its subject and role.
func ExtractOperator(tokenString string) (*OperatorClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return nil, errors.New("token does not carry 'sub' and 'role' claims")
	}
	return &OperatorClaims{Subject: sub, Role: role}, nil
}

// server/internal/auth/auth.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"vehicle-rental-api-server/config"
	"vehicle-rental-api-server/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// JWTClaims defines the payload for the JWT.
type JWTClaims struct {
	UserUID string `json:"userUID"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Hashing
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Service signs and validates tokens with the configured secret.
type Service struct {
	secret   []byte
	tokenExp time.Duration
}

func NewService(cfg config.JWTConfig) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	exp := 24 * time.Hour
	if cfg.Expiration != "" {
		parsed, err := time.ParseDuration(cfg.Expiration)
		if err != nil {
			return nil, err
		}
		exp = parsed
	}
	return &Service{secret: []byte(cfg.Secret), tokenExp: exp}, nil
}

func (s *Service) GenerateJWT(user *models.User) (string, error) {
	claims := &JWTClaims{
		UserUID: user.UserUID,
		Email:   user.Email,
		Role:    user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

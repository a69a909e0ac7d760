package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of token claims the client cares about.
type Claims struct {
	UserID            string
	Name              string
	Email             string
	PreferredUsername string
	ExpiresAt         time.Time
}

// JWTSigner issues and validates HS256 tokens with one shared secret.
type JWTSigner struct {
	secret []byte
}

func NewJWTSigner(secret string) (*JWTSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret not set")
	}
	return &JWTSigner{secret: []byte(secret)}, nil
}

func (s *JWTSigner) Generate(c Claims, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                c.UserID,
		"name":               c.Name,
		"email":              c.Email,
		"preferred_username": c.PreferredUsername,
		"iat":                now.Unix(),
		"exp":                now.Add(expiry).Unix(),
	})

	return token.SignedString(s.secret)
}

func (s *JWTSigner) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	claims.UserID, _ = mapClaims["sub"].(string)
	claims.Name, _ = mapClaims["name"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.PreferredUsername, _ = mapClaims["preferred_username"].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// ParseJWT verifies an HS256 token and returns the uid claim.
func ParseJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if uid, ok := claims["uid"].(string); ok && uid != "" {
			return uid, nil
		}
	}

	return "", fmt.Errorf("token has no uid claim")
}

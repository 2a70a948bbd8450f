package utils

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt"
)

func ExtractMemberIDFromToken(authHeader string) (string, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization header format")
	}

	tokenString := parts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret(), nil
	})

	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	memberID, ok := claims["member_id"].(string)
	if !ok || memberID == "" {
		return "", errors.New("invalid member ID in token")
	}

	return memberID, nil
}

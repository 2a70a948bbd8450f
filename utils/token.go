package utils

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     []byte
)

// JwtSecret loads the signing secret on first use.
func JwtSecret() []byte {
	jwtSecretOnce.Do(func() {
		// Load the .env file
		if err := godotenv.Load(); err != nil {
			// It's okay if the .env file isn't found; environment variables may be set elsewhere
			log.Println("No .env file found or error loading .env file:", err)
		}

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Fatal("JWT_SECRET is not set in the environment")
		}

		jwtSecret = []byte(secret)
	})
	return jwtSecret
}

// GenerateAccessToken creates a new JWT access token for a member
func GenerateAccessToken(memberID, role, tenantID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"member_id": memberID,
		"role":      role,
		"tenant_id": tenantID,
		"exp":       time.Now().Add(72 * time.Hour).Unix(),
	})

	return token.SignedString(JwtSecret())
}

// Command tokengen mints HS256 tokens for calling the protected admin API
// during development. The secret must match ADMIN_JWT_SECRET on the server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	secret := flag.String("secret", "admin-dev-secret-change-in-production", "Secret key for signing the token")
	issuer := flag.String("issuer", "simple-admin", "Issuer of the token")
	subject := flag.String("subject", "admin", "Subject of the token (usually user ID)")
	expiry := flag.Duration("expiry", 30*time.Minute, "Token expiry duration (e.g., 30m, 1h, 24h)")
	flag.Parse()

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": *issuer,
		"sub": *subject,
		"iat": now.Unix(),
		"exp": now.Add(*expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(*secret))
	if err != nil {
		slog.Error("Failed to sign token", "err", err)
		os.Exit(1)
	}

	fmt.Println(tokenStr)
}

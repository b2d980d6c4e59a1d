// Mints a dev JWT for a given author identifier, so the write path can be
// exercised locally without the real identity provider in the loop.
//
// Usage: JWT_SECRET=... go run ./cmd/tools -user user_2x4F -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"chirp-lab/auth"
)

func main() {
	user := flag.String("user", "", "author identifier to embed in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *user == "" {
		log.Fatal("-user is required")
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	token, err := auth.GenerateToken([]byte(secret), *user, *ttl)
	if err != nil {
		log.Fatalf("Failed to mint token: %v", err)
	}
	fmt.Println(token)
}

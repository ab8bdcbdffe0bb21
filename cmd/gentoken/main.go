// Generates a development JWT for exercising authenticated endpoints.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/planora/server/internal/auth"
)

func main() {
	userID := flag.Int64("user", 1, "numeric user id for the token subject")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: JWT_SECRET is not set")
		os.Exit(1)
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "planora"
	}

	manager := auth.NewJWTManager(secret, *expiry, issuer)
	token, err := manager.Generate(*userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("JWT Token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/v1/events/mine\n", token)
}

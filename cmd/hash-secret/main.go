package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-secret/main.go <admin-secret>")
		fmt.Println("Prints a bcrypt hash suitable for the ADMIN_SECRET_HASH environment variable.")
		os.Exit(1)
	}

	secret := os.Args[1]

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ADMIN_SECRET_HASH=%s\n", hash)
}

package main

import (
	"fmt"
	"log"
	"os"

	"bookhub.backend/pkg/crypto"
)

// Small helper to produce a bcrypt digest for seeding accounts by hand.

func resolvePassword(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "ChangeMe.2026"
}

func main() {
	password := resolvePassword(os.Args[1:])

	hash, err := crypto.NewHasher(crypto.DefaultCost).Hash(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(hash)
}

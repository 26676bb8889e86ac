package main

import (
	"fmt"
	"log"

	"github.com/dmitrymomot/twofactor/pkg/totp"
)

func main() {
	encodedKey, err := totp.GenerateEncodedEncryptionKey()
	if err != nil {
		log.Fatalf("Failed to generate encoded encryption key: %v", err)
	}

	fmt.Printf("Generated encryption key (for TOTP_ENCRYPTION_KEY env var):\n---\n%s\n---\n", encodedKey)
}

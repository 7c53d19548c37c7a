// chronicle-keygen generates API keys for clients and prints the config
// snippet to install them.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
)

var (
	clientID = flag.String("client", "", "Client identifier the key authenticates (required)")
	header   = flag.String("header", "X-API-Key", "Header name shown in the usage example")
)

// newAPIKey returns a URL-safe key with 32 bytes of randomness
func newAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func main() {
	flag.Parse()

	if *clientID == "" {
		fmt.Fprintln(os.Stderr, "Error: -client is required")
		flag.Usage()
		os.Exit(1)
	}

	apiKey, err := newAPIKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated API key for client %q\n\n", *clientID)
	fmt.Println("Add to chronicle.toml:")
	fmt.Println()
	fmt.Println("  [auth.keys]")
	fmt.Printf("  %q = %q\n", apiKey, *clientID)
	fmt.Println()
	fmt.Println("Example usage:")
	fmt.Println()
	fmt.Println("  curl -X POST http://localhost:8080/api/v1/logs \\")
	fmt.Printf("    -H '%s: %s' \\\n", *header, apiKey)
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Println(`    -d '{"environment": "production", "executed_at": "2026-01-02T10:30:00Z", "status": "SUCCESS"}'`)
	fmt.Println()
	fmt.Println("Store the key securely; it cannot be recovered from the server.")
}

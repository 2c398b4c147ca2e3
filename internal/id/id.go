// Package id generates the prefixed identifiers used for books, users,
// loans and accounts.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each entity kind.
const (
	PrefixBook    = "book"
	PrefixUser    = "user"
	PrefixLoan    = "loan"
	PrefixAccount = "acct"
	PrefixToken   = "token"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}


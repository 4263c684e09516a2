// Package id generates prefixed, URL-safe identifiers for string-keyed records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the records that use string identifiers.
const (
	PrefixUser    = "usr"
	PrefixSession = "ses"
)

// Generate returns prefix-<nanoid>, e.g. "usr-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	nano, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nano, nil
}

// MustGenerate is Generate that panics when the system has no entropy.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}

// Package id generates prefixed unique identifiers for domain entities.
//
// IDs look like "cat-V1StGXR8_Z5jdHi6B-myT": a short type prefix, a
// dash, then a nanoid. The prefix makes IDs self-describing in logs
// and API payloads.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes.
const (
	PrefixUser     = "usr"
	PrefixCategory = "cat"
	PrefixItem     = "itm"
	PrefixSession  = "ses"
	PrefixUpload   = "upl"
)

const idLength = 21

// Generate creates a new prefixed id, e.g. Generate("cat") returns
// "cat-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New(idLength)
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is like Generate but panics on failure. Nanoid only
// fails when the OS entropy source does, so this is safe for startup
// and test code.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(err)
	}
	return id
}

package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digest domains. The version suffix leaves room for changing the encoding.
const (
	DomainDocument = "rdftest/document/v1"
	DomainRun      = "rdftest/run/v1"
)

// Sum returns SHA256(domain + 0x00 + data) as lowercase hex.
// The separator keeps the domain and data boundary unambiguous.
func Sum(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest hashes the canonical JSON encoding of v under domain.
func Digest(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", domain, err)
	}
	return Sum(domain, data), nil
}

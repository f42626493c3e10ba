package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainRecord is the domain prefix for record fingerprints.
// The version suffix leaves room for a future algorithm change.
const DomainRecord = "circegen/record/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordHash computes a content-addressed fingerprint of a record.
// Two declarations that parse to the same record share a fingerprint,
// regardless of whitespace or line breaks in the source text.
func RecordHash(r *Record) (string, error) {
	canonical, err := MarshalCanonical(r.Canonical())
	if err != nil {
		return "", fmt.Errorf("RecordHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRecord, canonical), nil
}

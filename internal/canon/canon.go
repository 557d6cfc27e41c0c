package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Domain prefixes. The version suffix leaves room for changing the format.
const (
	DomainSerialization = "treeconf/serialization/v1"
	DomainReport        = "treeconf/report/v1"
)

// hashWithDomain returns hex(SHA256(domain + 0x00 + data)).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest identifies a canonical tree serialization.
func Digest(serialization string) string {
	return hashWithDomain(DomainSerialization, []byte(serialization))
}

// MarshalReport renders v as RFC 8785 canonical JSON.
func MarshalReport(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("MarshalReport: failed to marshal: %w", err)
	}
	out, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("MarshalReport: failed to canonicalize: %w", err)
	}
	return out, nil
}

// ReportDigest identifies a report by its canonical JSON form.
func ReportDigest(v any) (string, error) {
	b, err := MarshalReport(v)
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainReport, b), nil
}

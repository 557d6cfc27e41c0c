// Package canon provides stable identities for harness output.
//
// Digests are SHA-256 over a domain-separated payload, so a serialization
// digest can never collide with a report digest of the same bytes.
// Reports are rendered as RFC 8785 canonical JSON, which makes two runs
// with identical outcomes byte-identical regardless of map iteration order.
package canon

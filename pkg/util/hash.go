package util

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashSize is the size of a hashlock/payment hash in bytes. The same 32-byte
// digest travels as 0x-prefixed hex on the escrow chain and as standard
// base64 across the payment node boundary; all conversions go through this
// package so a swap can never be broken by a one-sided re-encoding.
const HashSize = 32

// ParseHash decodes a 32-byte digest from its hex form, with or without the
// 0x prefix.
func ParseHash(s string) ([HashSize]byte, error) {
	var hash [HashSize]byte
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return hash, fmt.Errorf("invalid hash %q: %v", s, err)
	}
	if len(raw) != HashSize {
		return hash, fmt.Errorf("invalid hash length: expect %v bytes, got %v", HashSize, len(raw))
	}
	copy(hash[:], raw)
	return hash, nil
}

// HashToHex encodes a digest into the escrow chain's native 0x-hex form.
func HashToHex(hash [HashSize]byte) string {
	return "0x" + hex.EncodeToString(hash[:])
}

// HashToBase64 encodes a digest into the payment node's native form.
func HashToBase64(hash [HashSize]byte) string {
	return base64.StdEncoding.EncodeToString(hash[:])
}

// HashFromBase64 decodes a digest from the payment node's native form. It
// also accepts the URL-safe alphabet some node endpoints return.
func HashFromBase64(s string) ([HashSize]byte, error) {
	var hash [HashSize]byte
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(s)
		if err != nil {
			return hash, fmt.Errorf("invalid base64 hash %q: %v", s, err)
		}
	}
	if len(raw) != HashSize {
		return hash, fmt.Errorf("invalid hash length: expect %v bytes, got %v", HashSize, len(raw))
	}
	copy(hash[:], raw)
	return hash, nil
}

// HashFromBytes copies a raw digest, rejecting any other length.
func HashFromBytes(raw []byte) ([HashSize]byte, error) {
	var hash [HashSize]byte
	if len(raw) != HashSize {
		return hash, fmt.Errorf("invalid hash length: expect %v bytes, got %v", HashSize, len(raw))
	}
	copy(hash[:], raw)
	return hash, nil
}

// Sha256 returns the digest gating a secret.
func Sha256(secret []byte) [HashSize]byte {
	return sha256.Sum256(secret)
}

// Package cryptox implements the credential codec: the one-way transform
// from a plaintext password to the digest stored alongside an account.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Codec hashes plaintext passwords and verifies candidates against stored
// digests. There is no decode direction.
type Codec interface {
	Hash(plaintext string) (string, error)
	Verify(digest string, candidate string) bool
}

// SHA256Codec produces the unsalted SHA-256 hex digest of the plaintext.
// Equal plaintexts always produce equal digests, so verification is a
// straight comparison of hex strings.
//
// The digest carries no per-account salt. BcryptCodec is the stronger
// scheme for new deployments, but its digests are not interchangeable with
// data hashed by this codec.
type SHA256Codec struct{}

func (SHA256Codec) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (SHA256Codec) Verify(digest string, candidate string) bool {
	sum := sha256.Sum256([]byte(candidate))
	enc := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(enc), []byte(digest)) == 1
}

// BcryptCodec hashes with a per-password salt. Two calls with the same
// plaintext produce different digests; verification goes through
// bcrypt.CompareHashAndPassword rather than digest equality.
type BcryptCodec struct {
	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	Cost int
}

func (c BcryptCodec) Hash(plaintext string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (c BcryptCodec) Verify(digest string, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(candidate)) == nil
}

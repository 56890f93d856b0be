// Package password implements one-way hashing and verification of user
// secrets using Argon2id. Hashes are self-describing PHC strings, so cost
// parameters can change without invalidating stored credentials.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithm = "argon2id"

// ErrMalformedHash is returned when an encoded hash cannot be parsed. A
// mismatching secret is not an error; Verify reports that as (false, nil).
var ErrMalformedHash = errors.New("malformed password hash")

// Params holds the Argon2id cost configuration. It is passed explicitly at
// construction; there is no package-level default state.
type Params struct {
	MemoryKiB   uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams follows the RFC 9106 low-memory recommendation.
func DefaultParams() Params {
	return Params{
		MemoryKiB:   64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher derives and verifies Argon2id digests with fixed parameters. Safe
// for concurrent use.
type Hasher struct {
	params Params
}

// NewHasher validates the cost parameters and returns a Hasher.
func NewHasher(p Params) (*Hasher, error) {
	if p.MemoryKiB < 8*1024 {
		return nil, errors.New("argon2 memory must be at least 8 MiB")
	}
	if p.Time < 1 {
		return nil, errors.New("argon2 time cost must be at least 1")
	}
	if p.Parallelism < 1 {
		return nil, errors.New("argon2 parallelism must be at least 1")
	}
	if p.SaltLength < 16 {
		return nil, errors.New("argon2 salt must be at least 16 bytes")
	}
	if p.KeyLength < 16 {
		return nil, errors.New("argon2 key must be at least 16 bytes")
	}
	return &Hasher{params: p}, nil
}

// Hash derives a digest of secret under a freshly generated random salt and
// returns the PHC-encoded string. Two calls with the same secret produce
// different encodings.
func (h *Hasher) Hash(secret string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("could not generate salt: %w", err)
	}

	digest := argon2.IDKey(
		[]byte(secret),
		salt,
		h.params.Time,
		h.params.MemoryKiB,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm,
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Time,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify recomputes the digest of secret using the parameters and salt
// embedded in encoded and compares in constant time. It returns false on
// mismatch and an error only when encoded is not a valid hash.
func (h *Hasher) Verify(secret, encoded string) (bool, error) {
	p, salt, digest, err := decode(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(secret),
		salt,
		p.Time,
		p.MemoryKiB,
		p.Parallelism,
		uint32(len(digest)),
	)

	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

func decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, ErrMalformedHash
	}
	if parts[1] != algorithm {
		return p, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Parallelism); err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	if p.MemoryKiB == 0 || p.Time == 0 || p.Parallelism == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	return p, salt, digest, nil
}

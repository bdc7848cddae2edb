// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vo

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"

	"github.com/MKhiriev/go-valid-record/record"
	"github.com/MKhiriev/go-valid-record/result"
)

// Argon2id tuning parameters, following the OWASP (2024) recommendation:
// 1 iteration, 64 MiB memory, 4 threads, 256-bit key. Package variables
// so deployments (and tests) can tune them.
var (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024 // 64 MiB
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32 // 256 bits
)

// pepper is the secret HMAC key mixed into every password before the
// memory-hard hash. Override in deployment via SetPepper.
var pepper = []byte("go-valid-record-default-pepper")

// SetPepper replaces the process-wide pepper. Call once at startup,
// before any Password is created; hashes created under a different
// pepper will never verify.
func SetPepper(p []byte) {
	if len(p) > 0 {
		pepper = append([]byte(nil), p...)
	}
}

// Password is a value object holding a single "hash" attribute. Its
// validator chain demonstrates composition: notEmpty, then a peppered
// HMAC-SHA256 pre-hash, then Argon2id producing a PHC-encoded string.
//
// The chain is deliberately not idempotent: running it twice would
// double-hash. Create a Password once from the plaintext and keep the
// encoded hash; do not route an encoded hash back through the factory.
type Password struct {
	record.ValueObject
}

// Attributes declares the hashing chain for the single hash attribute.
func (p *Password) Attributes() []record.Attr {
	return []record.Attr{
		{Name: "hash", Spec: record.Spec{Validators: []any{
			"notEmpty",
			record.Named("prehash", prehashValidator),
			record.Named("argon2id", argonValidator),
		}}},
	}
}

// NewPassword hashes plain through the chain and returns the value
// object, or nil with res filled when plain is empty or hashing fails.
func NewPassword(plain string, path string, res *result.OperationResult) *Password {
	return record.New[Password](map[string]any{"hash": plain}, path, res)
}

// Hash returns the PHC-encoded Argon2id hash.
func (p *Password) Hash() string {
	v, _ := p.Get("hash")
	s, _ := v.(string)
	return s
}

// IsEqual reports whether plain hashes to the receiver's stored hash.
//
// Unlike Verify it returns early on malformed state and performs no
// dummy work, so it leaks timing information about whether the stored
// hash is well-formed. Use Verify on authentication paths.
func (p *Password) IsEqual(plain string) bool {
	salt, want, err := decodeHash(p.Hash())
	if err != nil || plain == "" {
		return false
	}
	got := deriveKey(prehash(plain), salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// Fixed substitutes used by Verify when the input is empty or the
// encoded hash is malformed: the full derivation still runs against
// them, keeping the failure path as slow as the success path so that
// user enumeration by timing stays impractical.
var (
	dummyPassword = "go-valid-record-dummy-password"
	dummySalt     = []byte("A16ByteDummySalt")
	dummyWant     = make([]byte, 32)
)

// Verify reports whether plain matches the PHC-encoded hash.
//
// The comparison takes roughly constant time regardless of whether the
// inputs are empty or malformed: bad inputs are replaced by fixed dummy
// values and the Argon2id derivation and constant-time comparison run
// anyway, failing afterwards.
func Verify(plain, encoded string) bool {
	salt, want, err := decodeHash(encoded)

	valid := err == nil && plain != ""
	if !valid {
		plain = dummyPassword
		salt = dummySalt
		want = dummyWant
	}

	got := deriveKey(prehash(plain), salt)
	equal := subtle.ConstantTimeCompare(got, want) == 1
	return equal && valid
}

// prehash computes the peppered HMAC-SHA256 pre-hash, hex encoded.
func prehash(plain string) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(plain))
	return hex.EncodeToString(mac.Sum(nil))
}

// prehashValidator replaces the plaintext value with its pre-hash.
// Requires the value to be a string; the chain's notEmpty runs first.
func prehashValidator(attribute, path string, value *any, res *result.OperationResult) bool {
	s, ok := (*value).(string)
	if !ok {
		if res != nil {
			res.AddError(result.Validation, result.FullName(path, attribute), "must be a string")
		}
		return false
	}
	*value = prehash(s)
	return true
}

// argonValidator replaces the pre-hashed value with a PHC-encoded
// Argon2id hash under a fresh random salt.
func argonValidator(attribute, path string, value *any, res *result.OperationResult) bool {
	s, ok := (*value).(string)
	if !ok {
		if res != nil {
			res.AddError(result.Validation, result.FullName(path, attribute), "must be a string")
		}
		return false
	}

	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		if res != nil {
			res.AddError(result.Undefined, result.FullName(path, attribute), "cannot generate salt: "+err.Error())
		}
		return false
	}

	*value = encodeHash(salt, deriveKey(s, salt))
	return true
}

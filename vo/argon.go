// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var errMalformedHash = errors.New("malformed argon2id hash")

// deriveKey runs Argon2id over the pre-hashed password with the
// package-level tuning parameters.
func deriveKey(prehashed string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(prehashed),
		salt,
		argonTime,
		argonMemory,
		argonThreads,
		argonKeyLen,
	)
}

// encodeHash renders salt and key in the PHC string format:
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>.
func encodeHash(salt, key []byte) string {
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// decodeHash parses a PHC-encoded Argon2id hash produced by encodeHash.
// The embedded m/t/p parameters are parsed but must equal the current
// package parameters; verification across parameter changes is not
// supported.
func decodeHash(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, errMalformedHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, errMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, errMalformedHash
	}
	if memory != argonMemory || time != argonTime || threads != argonThreads {
		return nil, nil, errMalformedHash
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, errMalformedHash
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, errMalformedHash
	}
	if len(key) != int(argonKeyLen) {
		return nil, nil, errMalformedHash
	}
	return salt, key, nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 option fingerprint.
type Digest [32]byte

// fingerprintKey is the BLAKE3 key for option fingerprints: the ASCII
// domain name, zero-padded to 32 bytes. Changing it changes every
// fingerprint.
var fingerprintKey = [32]byte{
	'o', 'p', 't', 'w', 'i', 'r', 'e', '.', 'o', 'p', 't', 'i', 'o', 'n', '.', 'f',
	'i', 'n', 'g', 'e', 'r', 'p', 'r', 'i', 'n', 't', 0, 0, 0, 0, 0, 0,
}

// Fingerprint hashes the CBOR encoding of the option. Options that
// encode identically share a fingerprint, so a missing focused flag
// and focused=false are the same, as are an absent and an empty
// sub-command option list. Unknown wire fields never reach the
// fingerprint because decoding drops them.
func Fingerprint(option CommandOption) (Digest, error) {
	encoded, err := EncodeCBOR(option)
	if err != nil {
		return Digest{}, fmt.Errorf("fingerprint: %w", err)
	}
	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("option: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(encoded)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, for log lines and tables.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}

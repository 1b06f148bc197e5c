// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assetid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/assetledger/blockdigest"
	"github.com/bitmark-inc/assetledger/fault"
)

// Length - number of bytes in an identifier
const Length = 32

// Identifier - the type for an asset identifier
// represented as hex text for JSON encoding
// to get bytes value just use id[:]
type Identifier [Length]byte

// Generate - derive a new identifier from the execution context
//
// BLAKE2b-256 of:
//   parent block hash  32 bytes
//   block height       8 bytes big endian
//   call index         4 bytes big endian
//   issuance counter   4 bytes big endian
//
// the counter only adds entropy; two calls in the same block with the
// same index are separated by it
func Generate(parent blockdigest.Digest, height uint64, callIndex uint32, counter uint32) Identifier {
	buffer := make([]byte, 0, blockdigest.Length+8+4+4)
	buffer = append(buffer, parent[:]...)

	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, height)
	buffer = append(buffer, n...)

	binary.BigEndian.PutUint32(n, callIndex)
	buffer = append(buffer, n[:4]...)

	binary.BigEndian.PutUint32(n, counter)
	buffer = append(buffer, n[:4]...)

	return Identifier(blake2b.Sum256(buffer))
}

// String - convert a binary id to hex string for use by the fmt package (for %s)
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// GoString - convert a binary id to hex string for use by the fmt package (for %#v)
func (id Identifier) GoString() string {
	return "<asset:" + hex.EncodeToString(id[:]) + ">"
}

// Scan - convert a hex text representation to an id for use by the format package scan routines
func (id *Identifier) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(Length) {
		return fault.ErrInvalidAssetId
	}

	byteCount, err := hex.Decode(id[:], token)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.ErrInvalidAssetId
	}
	return nil
}

// MarshalText - convert id to hex text
func (id Identifier) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(id)))
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an id
func (id *Identifier) UnmarshalText(s []byte) error {
	if len(id) != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidAssetId
	}
	byteCount, err := hex.Decode(id[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fault.ErrInvalidAssetId
	}
	return nil
}

// FromBytes - convert and validate a binary byte slice to an id
func FromBytes(id *Identifier, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrInvalidAssetId
	}
	copy(id[:], buffer)
	return nil
}

// FromString - parse hex text into an id
func FromString(s string) (Identifier, error) {
	id := Identifier{}
	err := id.UnmarshalText([]byte(s))
	return id, err
}

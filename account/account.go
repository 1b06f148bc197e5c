// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/assetledger/fault"
)

// miscellaneous constants
const (
	PublicKeyLength = 32

	// variant byte followed by the public key
	EncodedLength = 1 + PublicKeyLength

	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
	ed25519Code    = 1
)

// Account - an owner of assets and balances
//
// a value type so that it can be compared with == and used as a map key
type Account struct {
	Test      bool
	PublicKey [PublicKeyLength]byte
}

// New - create an account from a raw public key
func New(publicKey []byte, test bool) (Account, error) {
	a := Account{
		Test: test,
	}
	if PublicKeyLength != len(publicKey) {
		return a, fault.ErrInvalidAccount
	}
	copy(a.PublicKey[:], publicKey)
	return a, nil
}

// FromBytes - convert the storage form (variant ⧺ public key) to an account
func FromBytes(buffer []byte) (Account, error) {
	if EncodedLength != len(buffer) {
		return Account{}, fault.ErrInvalidAccount
	}

	keyVariant := buffer[0]
	if keyVariant&publicKeyCode != publicKeyCode || ed25519Code != keyVariant>>algorithmShift {
		return Account{}, fault.ErrInvalidAccount
	}

	return New(buffer[1:], 0 != keyVariant&testKeyCode)
}

// FromBase58 - convert the text form to an account, verifying the checksum
func FromBase58(s string) (Account, error) {
	decoded, err := base58.Decode(s)
	if nil != err || len(decoded) != EncodedLength+checksumLength {
		return Account{}, fault.ErrInvalidAccount
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return Account{}, fault.ErrInvalidAccount
	}
	return FromBytes(decoded[:checksumStart])
}

// Bytes - the storage form: variant ⧺ public key
func (account Account) Bytes() []byte {
	keyVariant := byte(ed25519Code<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey[:]...)
}

// String - base58 encoding of the storage form with a checksum
func (account Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for %#v
func (account Account) GoString() string {
	return "<account:" + account.String() + ">"
}

// MarshalText - convert an account to its Base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert Base58 JSON text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}

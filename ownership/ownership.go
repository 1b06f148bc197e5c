// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"bytes"
	"sync"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

// DefaultCapacity - maximum number of assets one account may own
const DefaultCapacity = 100

// from storage/doc.go:
//
//   OwnedAssets  account -> id ⧺ id ⧺ …  (in order of acquisition)

type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	capacity    int
	initialised bool
}

var globalData = globalDataType{
	capacity: DefaultCapacity,
}

// Initialise - set the per account capacity, zero selects the default
func Initialise(capacity int) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	globalData.log = logger.New("ownership")
	globalData.log.Infof("capacity: %d", capacity)
	globalData.capacity = capacity
	globalData.initialised = true

	return nil
}

// Finalise - restore defaults
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		globalData.log.Info("finished")
		globalData.log.Flush()
	}
	globalData.log = nil
	globalData.capacity = DefaultCapacity
	globalData.initialised = false
}

// Capacity - the current per account limit
func Capacity() int {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.capacity
}

// List - the ids held by an account in order of acquisition
func List(reader storage.Reader, owner account.Account) []assetid.Identifier {
	packed := reader.Get(storage.Pool.OwnedAssets, owner.Bytes())
	if 0 != len(packed)%assetid.Length {
		logger.Criticalf("ownership.List: owner: %s  corrupt length: %d", owner, len(packed))
		logger.Panic("ownership.List: database corrupt")
	}

	ids := make([]assetid.Identifier, len(packed)/assetid.Length)
	for i := range ids {
		copy(ids[i][:], packed[i*assetid.Length:])
	}
	return ids
}

// Count - number of ids held by an account
func Count(reader storage.Reader, owner account.Account) int {
	return len(reader.Get(storage.Pool.OwnedAssets, owner.Bytes())) / assetid.Length
}

// HasRoom - true if one more id can be appended for the account
func HasRoom(reader storage.Reader, owner account.Account) bool {
	return Count(reader, owner) < Capacity()
}

// Contains - true if the id is in the account's list
func Contains(reader storage.Reader, owner account.Account, id assetid.Identifier) bool {
	return index(reader.Get(storage.Pool.OwnedAssets, owner.Bytes()), id) >= 0
}

// Append - add an id at the end of an account's list
//
// fails without writing if the list is already full
func Append(trx storage.Transaction, owner account.Account, id assetid.Identifier) error {
	key := owner.Bytes()
	packed := trx.Get(storage.Pool.OwnedAssets, key)

	if len(packed)/assetid.Length >= Capacity() {
		return fault.ErrTooManyOwned
	}

	updated := make([]byte, 0, len(packed)+assetid.Length)
	updated = append(updated, packed...)
	updated = append(updated, id[:]...)
	trx.Put(storage.Pool.OwnedAssets, key, updated)

	return nil
}

// Remove - delete an id from an account's list keeping the order of
// the remaining ids
//
// returns false if the id was not present
func Remove(trx storage.Transaction, owner account.Account, id assetid.Identifier) bool {
	key := owner.Bytes()
	packed := trx.Get(storage.Pool.OwnedAssets, key)

	i := index(packed, id)
	if i < 0 {
		return false
	}

	if len(packed) == assetid.Length {
		trx.Delete(storage.Pool.OwnedAssets, key)
		return true
	}

	updated := make([]byte, 0, len(packed)-assetid.Length)
	updated = append(updated, packed[:i]...)
	updated = append(updated, packed[i+assetid.Length:]...)
	trx.Put(storage.Pool.OwnedAssets, key, updated)

	return true
}

// byte offset of id in the packed list or -1
func index(packed []byte, id assetid.Identifier) int {
	for i := 0; i+assetid.Length <= len(packed); i += assetid.Length {
		if bytes.Equal(packed[i:i+assetid.Length], id[:]) {
			return i
		}
	}
	return -1
}

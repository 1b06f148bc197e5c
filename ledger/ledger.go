// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"math"
	"sync"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

// limits
const (
	DefaultMaximumCollectionLength = 64
	DefaultDestroyLimit            = 10
	MaximumAssetClassLength        = 32
)

// from storage/doc.go:
//
//   CollectionSupply   lp(collection) ⧺ lp(class)                  -> uint64
//   CollectionBalance  lp(collection) ⧺ lp(account) ⧺ lp(class)    -> uint64

type globalDataType struct {
	sync.RWMutex
	log                     *logger.L
	maximumCollectionLength int
	destroyLimit            int
	initialised             bool
}

var globalData = globalDataType{
	maximumCollectionLength: DefaultMaximumCollectionLength,
	destroyLimit:            DefaultDestroyLimit,
}

// Removal - what one DestroyCollection call removed
type Removal struct {
	Supplies int  `json:"supplies"`
	Balances int  `json:"balances"`
	Complete bool `json:"complete"`
}

// Initialise - set the collection limits, zero selects a default
func Initialise(maximumCollectionLength int, destroyLimit int) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if maximumCollectionLength <= 0 {
		maximumCollectionLength = DefaultMaximumCollectionLength
	}
	if destroyLimit <= 0 {
		destroyLimit = DefaultDestroyLimit
	}

	globalData.log = logger.New("ledger")
	globalData.log.Infof("maximum collection length: %d  destroy limit: %d", maximumCollectionLength, destroyLimit)
	globalData.maximumCollectionLength = maximumCollectionLength
	globalData.destroyLimit = destroyLimit
	globalData.initialised = true

	return nil
}

// Finalise - stop the ledger and restore defaults
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.maximumCollectionLength = DefaultMaximumCollectionLength
	globalData.destroyLimit = DefaultDestroyLimit
	globalData.initialised = false

	return nil
}

func limits() (int, int) {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.maximumCollectionLength, globalData.destroyLimit
}

func checkCollection(collection string) error {
	maximum, _ := limits()
	if 0 == len(collection) {
		return fault.ErrEmptyCollection
	}
	if len(collection) > maximum {
		return fault.ErrCollectionTooLong
	}
	return nil
}

func checkClass(class string) error {
	if 0 == len(class) {
		return fault.ErrEmptyAsset
	}
	if len(class) > MaximumAssetClassLength {
		return fault.ErrAssetClassTooLong
	}
	return nil
}

func supplyKey(collection string, class string) []byte {
	return storage.CompoundKey([]byte(collection), []byte(class))
}

func balanceKey(collection string, holder account.Account, class string) []byte {
	return storage.CompoundKey([]byte(collection), holder.Bytes(), []byte(class))
}

// Mint - add amount of a class to a collection and to the recipient
//
// open to any caller
func Mint(call *dispatch.Call, collection string, class string, recipient account.Account, amount uint64) error {
	if err := checkCollection(collection); nil != err {
		return err
	}
	if err := checkClass(class); nil != err {
		return err
	}

	trx := call.Transaction()

	sKey := supplyKey(collection, class)
	supply, _ := trx.GetN(storage.Pool.CollectionSupply, sKey)

	bKey := balanceKey(collection, recipient, class)
	balance, _ := trx.GetN(storage.Pool.CollectionBalance, bKey)

	if supply > math.MaxUint64-amount || balance > math.MaxUint64-amount {
		return fault.ErrQuantityOverflow
	}

	trx.PutN(storage.Pool.CollectionSupply, sKey, supply+amount)
	trx.PutN(storage.Pool.CollectionBalance, bKey, balance+amount)

	call.Deposit(event.LedgerMinted{
		Collection: collection,
		Class:      class,
		Recipient:  recipient,
		Amount:     amount,
	})

	globalData.log.Infof("mint: %q/%q  recipient: %s  amount: %d", collection, class, recipient, amount)
	return nil
}

// DestroyCollection - remove the entries of a collection
//
// at most the destroy limit of entries go per call, supply entries
// before balances; entries written earlier in the same call are
// included; Complete reports that nothing is left, otherwise call
// again to continue
func DestroyCollection(call *dispatch.Call, collection string) (Removal, error) {
	if err := checkCollection(collection); nil != err {
		return Removal{}, err
	}

	_, limit := limits()
	trx := call.Transaction()
	prefix := storage.CompoundKey([]byte(collection))

	supplies, err := trx.NewPrefixCursor(storage.Pool.CollectionSupply, prefix).Fetch(limit + 1)
	if nil != err {
		return Removal{}, err
	}
	balances, err := trx.NewPrefixCursor(storage.Pool.CollectionBalance, prefix).Fetch(limit + 1)
	if nil != err {
		return Removal{}, err
	}

	removal := Removal{
		Complete: len(supplies)+len(balances) <= limit,
	}

	for _, e := range supplies {
		if removal.Supplies >= limit {
			break
		}
		trx.Delete(storage.Pool.CollectionSupply, e.Key)
		removal.Supplies += 1
	}
	for _, e := range balances {
		if removal.Supplies+removal.Balances >= limit {
			break
		}
		trx.Delete(storage.Pool.CollectionBalance, e.Key)
		removal.Balances += 1
	}

	call.Deposit(event.CollectionDestroyed{
		Collection: collection,
		Supplies:   removal.Supplies,
		Balances:   removal.Balances,
		Complete:   removal.Complete,
	})

	globalData.log.Infof("destroy: %q  supplies: %d  balances: %d  complete: %t", collection, removal.Supplies, removal.Balances, removal.Complete)
	return removal, nil
}

// Supply - total quantity of a class in a collection
func Supply(reader storage.Reader, collection string, class string) uint64 {
	n, _ := reader.GetN(storage.Pool.CollectionSupply, supplyKey(collection, class))
	return n
}

// Balance - quantity of a class in a collection held by an account
func Balance(reader storage.Reader, collection string, holder account.Account, class string) uint64 {
	n, _ := reader.GetN(storage.Pool.CollectionBalance, balanceKey(collection, holder, class))
	return n
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/ownership"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

// key of the issuance counter in the AssetCount pool
var countKey = []byte("count")

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

var globalData globalDataType

// Initialise - start the asset registry
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("asset")
	globalData.log.Info("starting…")
	globalData.initialised = true

	return nil
}

// Finalise - stop the asset registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false

	return nil
}

// Create - issue a new asset to the caller with a generated id
func Create(call *dispatch.Call, caller account.Account) (assetid.Identifier, error) {
	counter := Count(call.Transaction())
	id := assetid.Generate(call.ParentHash, call.Height, call.CallIndex, counter)

	globalData.log.Debugf("create: owner: %s  counter: %d  id: %s", caller, counter, id)

	err := Mint(call, caller, id)
	if nil != err {
		return assetid.Identifier{}, err
	}
	return id, nil
}

// Mint - store a new asset under an explicit id
//
// all checks are made before anything is written
func Mint(call *dispatch.Call, owner account.Account, id assetid.Identifier) error {
	trx := call.Transaction()

	counter := Count(trx)
	if math.MaxUint32 == counter {
		return fault.ErrTooManyAssets
	}

	if trx.Has(storage.Pool.Assets, id[:]) {
		return fault.ErrDuplicateAsset
	}

	if !ownership.HasRoom(trx, owner) {
		return fault.ErrTooManyOwned
	}

	putCount(trx, counter+1)

	r := Record{
		Id:    id,
		Owner: owner,
	}
	trx.Put(storage.Pool.Assets, id[:], r.pack())

	err := ownership.Append(trx, owner, id)
	logger.PanicIfError("asset.Mint: ownership append", err)

	call.Deposit(event.AssetCreated{
		Owner: owner,
		Id:    id,
	})

	globalData.log.Infof("minted: %s  owner: %s", id, owner)
	return nil
}

// Transfer - move an asset between accounts
//
// the asking price is left unchanged
func Transfer(call *dispatch.Call, from account.Account, to account.Account, id assetid.Identifier) error {
	if from == to {
		return fault.ErrSelfTransfer
	}

	trx := call.Transaction()

	r, err := Get(trx, id)
	if nil != err {
		return err
	}

	if r.Owner != from {
		return fault.ErrNotAuthorized
	}

	if !ownership.HasRoom(trx, to) {
		return fault.ErrTooManyOwned
	}

	r.Owner = to
	trx.Put(storage.Pool.Assets, id[:], r.pack())

	if !ownership.Remove(trx, from, id) {
		logger.Criticalf("asset.Transfer: id: %s  missing from owner: %s", id, from)
		logger.Panic("asset.Transfer: ownership database corrupt")
	}

	err = ownership.Append(trx, to, id)
	logger.PanicIfError("asset.Transfer: ownership append", err)

	call.Deposit(event.AssetTransferred{
		From: from,
		To:   to,
		Id:   id,
	})

	globalData.log.Infof("transferred: %s  from: %s  to: %s", id, from, to)
	return nil
}

// SetPrice - set or clear (nil price) the asking price
func SetPrice(call *dispatch.Call, owner account.Account, id assetid.Identifier, price *uint64) error {
	trx := call.Transaction()

	r, err := Get(trx, id)
	if nil != err {
		return err
	}

	if r.Owner != owner {
		return fault.ErrNotAuthorized
	}

	if nil != price {
		p := *price
		price = &p
	}
	r.Price = price
	trx.Put(storage.Pool.Assets, id[:], r.pack())

	call.Deposit(event.PriceUpdated{
		Owner: owner,
		Id:    id,
		Price: price,
	})

	if nil == price {
		globalData.log.Infof("price cleared: %s", id)
	} else {
		globalData.log.Infof("price: %s  %d", id, *price)
	}
	return nil
}

// Get - read an asset
func Get(reader storage.Reader, id assetid.Identifier) (*Record, error) {
	packed := reader.Get(storage.Pool.Assets, id[:])
	if nil == packed {
		return nil, fault.ErrAssetNotFound
	}
	return unpack(id, packed), nil
}

// Count - number of assets ever created
func Count(reader storage.Reader) uint32 {
	buffer := reader.Get(storage.Pool.AssetCount, countKey)
	if nil == buffer {
		return 0
	}
	if 4 != len(buffer) {
		logger.Panicf("asset.Count: bad counter: %x", buffer)
	}
	return binary.BigEndian.Uint32(buffer)
}

// OwnedBy - ids owned by an account in order of acquisition
func OwnedBy(reader storage.Reader, owner account.Account) []assetid.Identifier {
	return ownership.List(reader, owner)
}

func putCount(trx storage.Transaction, n uint32) {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, n)
	trx.Put(storage.Pool.AssetCount, countKey, buffer)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

// SupplyEntry - one class of a collection
type SupplyEntry struct {
	Class  string `json:"class"`
	Supply uint64 `json:"supply"`
}

// HoldingEntry - one account balance of a collection
type HoldingEntry struct {
	Holder account.Account `json:"holder"`
	Class  string          `json:"class"`
	Amount uint64          `json:"amount"`
}

// Supplies - committed supply of every class in a collection
func Supplies(collection string) ([]SupplyEntry, error) {
	if err := checkCollection(collection); nil != err {
		return nil, err
	}

	entries := make([]SupplyEntry, 0, 8)
	cursor := storage.Pool.CollectionSupply.NewPrefixCursor(storage.CompoundKey([]byte(collection)))
	err := cursor.Map(func(key []byte, value []byte) error {
		segments, err := storage.SplitCompoundKey(key)
		if nil != err {
			return err
		}
		if 2 != len(segments) || 8 != len(value) {
			logger.Panicf("ledger.Supplies: corrupt entry: %x -> %x", key, value)
		}
		entries = append(entries, SupplyEntry{
			Class:  string(segments[1]),
			Supply: binary.BigEndian.Uint64(value),
		})
		return nil
	})
	return entries, err
}

// Holdings - committed balances of every account in a collection
func Holdings(collection string) ([]HoldingEntry, error) {
	if err := checkCollection(collection); nil != err {
		return nil, err
	}

	entries := make([]HoldingEntry, 0, 8)
	cursor := storage.Pool.CollectionBalance.NewPrefixCursor(storage.CompoundKey([]byte(collection)))
	err := cursor.Map(func(key []byte, value []byte) error {
		segments, err := storage.SplitCompoundKey(key)
		if nil != err {
			return err
		}
		if 3 != len(segments) || 8 != len(value) {
			logger.Panicf("ledger.Holdings: corrupt entry: %x -> %x", key, value)
		}
		holder, err := account.FromBytes(segments[1])
		if nil != err {
			return err
		}
		entries = append(entries, HoldingEntry{
			Holder: holder,
			Class:  string(segments[2]),
			Amount: binary.BigEndian.Uint64(value),
		})
		return nil
	})
	return entries, err
}

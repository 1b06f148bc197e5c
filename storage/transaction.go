// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// Reader - read access to the pools
type Reader interface {
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
}

// Transaction - all writes of one call, committed or aborted together
type Transaction interface {
	Reader
	Abort()
	Begin() error
	Commit() error
	Delete(*PoolHandle, []byte)
	InUse() bool
	IsDeleted(*PoolHandle, []byte) bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	NewPrefixCursor(*PoolHandle, []byte) *FetchCursor
}

// Direct - a Reader for queries made outside of any call
//
// it reads committed data only, so a query running beside a call never
// sees that call's uncommitted writes
var Direct Reader = directReader{}

type directReader struct{}

func (directReader) Get(ph *PoolHandle, key []byte) []byte {
	return ph.getCommitted(key)
}

func (directReader) GetN(ph *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(key, ph.getCommitted(key))
}

func (directReader) Has(ph *PoolHandle, key []byte) bool {
	return ph.hasCommitted(key)
}

// TransactionImpl - the single transaction shared by all calls
type TransactionImpl struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &TransactionImpl{
		access: access,
	}
}

func (d *TransactionImpl) Begin() error {
	return d.access.Begin()
}

func (d *TransactionImpl) InUse() bool {
	return d.access.InUse()
}

func (d *TransactionImpl) Put(handle *PoolHandle, key []byte, value []byte) {
	d.mustBeActive("Put")
	handle.put(key, value)
}

// PutN - store a value as 8 byte big endian
func (d *TransactionImpl) PutN(handle *PoolHandle, key []byte, value uint64) {
	d.mustBeActive("PutN")
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	handle.put(key, buffer)
}

func (d *TransactionImpl) Delete(handle *PoolHandle, key []byte) {
	d.mustBeActive("Delete")
	handle.remove(key)
}

func (d *TransactionImpl) IsDeleted(handle *PoolHandle, key []byte) bool {
	return d.access.IsDeleted(handle.prefixKey(key))
}

func (d *TransactionImpl) Get(ph *PoolHandle, key []byte) []byte {
	return ph.Get(key)
}

func (d *TransactionImpl) GetN(ph *PoolHandle, key []byte) (uint64, bool) {
	return ph.GetN(key)
}

func (d *TransactionImpl) Has(ph *PoolHandle, key []byte) bool {
	return ph.Has(key)
}

// NewPrefixCursor - a cursor over keys starting with prefix that
// includes the writes of this transaction
func (d *TransactionImpl) NewPrefixCursor(handle *PoolHandle, prefix []byte) *FetchCursor {
	cursor := handle.NewPrefixCursor(prefix)
	cursor.staged = true
	return cursor
}

func (d *TransactionImpl) Commit() error {
	return d.access.Commit()
}

func (d *TransactionImpl) Abort() {
	d.access.Abort()
}

// writing outside of Begin/Commit is a programming error
func (d *TransactionImpl) mustBeActive(operation string) {
	if !d.access.InUse() {
		logger.Panicf("transaction.%s: transaction not active", operation)
	}
}

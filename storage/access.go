// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/assetledger/fault"
)

// Access - batched access to one database
//
// reads see the writes staged since Begin
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	DumpTx() []byte
	Get([]byte) ([]byte, error)
	GetCommitted([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	HasCommitted([]byte) (bool, error)
	InUse() bool
	IsDeleted([]byte) bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
	Staged(*ldb_util.Range) iterator.Iterator
}

// AccessData - leveldb implementation of Access
type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch  *leveldb.Batch
	cache  Cache
	staged *memdb.DB // ordered copy of the staged puts, for cursors
}

func newDA(db *leveldb.DB, trx *leveldb.Batch, cache Cache) Access {
	return &AccessData{
		inUse:  false,
		db:     db,
		batch:  trx,
		cache:  cache,
		staged: memdb.New(comparer.DefaultComparer, 0),
	}
}

func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionInUse
	}

	d.inUse = true
	return nil
}

func (d *AccessData) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
	_ = d.staged.Put(key, value)
}

func (d *AccessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), nil)
	d.batch.Delete(key)
	_ = d.staged.Delete(key) // not found is fine
}

// Commit - write the batch and release the access for the next transaction
func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrTransactionNotActive
	}

	err := d.db.Write(d.batch, nil)
	d.reset()
	return err
}

func (d *AccessData) DumpTx() []byte {
	return d.batch.Dump()
}

// Get - staged value if any, otherwise the committed value
func (d *AccessData) Get(key []byte) ([]byte, error) {
	op, val, found := d.cache.Get(string(key))
	if found {
		if dbDelete == op {
			return nil, leveldb.ErrNotFound
		}
		return val, nil
	}
	return d.db.Get(key, nil)
}

// GetCommitted - the committed value, ignoring the open transaction
func (d *AccessData) GetCommitted(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	op, _, found := d.cache.Get(string(key))
	if found {
		return dbPut == op, nil
	}
	return d.db.Has(key, nil)
}

// HasCommitted - check the committed data, ignoring the open transaction
func (d *AccessData) HasCommitted(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

// IsDeleted - true if the key was deleted in the open transaction
func (d *AccessData) IsDeleted(key []byte) bool {
	op, _, found := d.cache.Get(string(key))
	return found && dbDelete == op
}

// Iterator - iterate over committed data only
func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

// Staged - iterate over the puts of the open transaction in key order
func (d *AccessData) Staged(searchRange *ldb_util.Range) iterator.Iterator {
	return d.staged.NewIterator(searchRange)
}

func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

// Abort - discard everything staged since Begin
func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()
	d.reset()
}

// must hold lock
func (d *AccessData) reset() {
	d.batch.Reset()
	d.cache.Clear()
	d.staged.Reset()
	d.inUse = false
}

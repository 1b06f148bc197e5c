// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/assetledger/fault"
)

// FetchCursor - cursor structure
//
// a cursor from a pool walks committed data only; a cursor from a
// transaction also sees the puts and deletes staged in it
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
	staged   bool
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// NewPrefixCursor - a cursor restricted to keys that start with prefix
func (p *PoolHandle) NewPrefixCursor(prefix []byte) *FetchCursor {
	return &FetchCursor{
		pool:     p,
		maxRange: *util.BytesPrefix(p.prefixKey(prefix)),
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return some elements starting from key
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if cursor == nil {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	lastKey := []byte(nil)
	err := cursor.walk(func(key []byte, value []byte) bool {
		lastKey = key
		results = append(results, Element{
			Key:   key[1:], // strip the prefix
			Value: value,
		})
		return len(results) < count
	})

	// the next fetch starts just after the last key seen
	if nil != lastKey {
		cursor.maxRange.Start = append(lastKey, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if cursor == nil {
		return fault.ErrInvalidCursor
	}

	var err error
	walkErr := cursor.walk(func(key []byte, value []byte) bool {
		err = f(key[1:], value)
		return nil == err
	})
	if nil == err {
		err = walkErr
	}
	return err
}

// walk the range in key order passing copies of each prefixed key and
// its value to f until f returns false
//
// for a staged cursor the committed and staged iterators are merged,
// a staged put replaces a committed value and staged deletes are skipped
func (cursor *FetchCursor) walk(f func(key []byte, value []byte) bool) error {
	access := cursor.pool.dataAccess
	if access == nil {
		return nil
	}

	committed := access.Iterator(&cursor.maxRange)
	defer committed.Release()

	staged := iterator.NewEmptyIterator(nil)
	if cursor.staged {
		staged = access.Staged(&cursor.maxRange)
	}
	defer staged.Release()

	cOk := committed.Next()
	sOk := staged.Next()

iterating:
	for cOk || sOk {

		fromStaged := sOk
		if cOk && sOk {
			switch c := bytes.Compare(committed.Key(), staged.Key()); {
			case c < 0:
				fromStaged = false
			case c == 0:
				cOk = committed.Next() // replaced by the staged value
			}
		}

		// contents of the iterator slices must not be modified, and
		// are only valid until the next call to Next
		var key, value []byte
		if fromStaged {
			key = copyBytes(staged.Key())
			value = copyBytes(staged.Value())
			sOk = staged.Next()
		} else {
			key = copyBytes(committed.Key())
			value = copyBytes(committed.Value())
			cOk = committed.Next()
			if cursor.staged && access.IsDeleted(key) {
				continue iterating
			}
		}

		if !f(key, value) {
			break iterating
		}
	}

	if err := committed.Error(); nil != err {
		return err
	}
	return staged.Error()
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

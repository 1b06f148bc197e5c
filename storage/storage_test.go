// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/storage"
)

// configure for testing
func setup(t *testing.T) {
	err := storage.InitialiseInMemory()
	require.Nil(t, err, "storage initialise")
}

// post test cleanup
func teardown() {
	storage.Finalise()
}

func TestInitialiseTwice(t *testing.T) {
	setup(t)
	defer teardown()

	err := storage.InitialiseInMemory()
	assert.Equal(t, fault.ErrAlreadyInitialised, err)
}

func TestNotInitialised(t *testing.T) {
	_, err := storage.NewDBTransaction()
	assert.Equal(t, fault.ErrNotInitialised, err)
}

func TestTransactionCommit(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err, "begin")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.ErrTransactionInUse, err, "second transaction allowed")

	trx.Put(storage.Pool.Assets, []byte("key-one"), []byte("data-one"))
	trx.PutN(storage.Pool.AssetCount, []byte("count"), 42)

	assert.Equal(t, []byte("data-one"), trx.Get(storage.Pool.Assets, []byte("key-one")), "read own write")
	assert.False(t, storage.Pool.OwnedAssets.Has([]byte("key-one")), "pools must not share keys")

	err = trx.Commit()
	require.Nil(t, err, "commit")

	n, found := storage.Direct.GetN(storage.Pool.AssetCount, []byte("count"))
	assert.True(t, found)
	assert.Equal(t, uint64(42), n)
	assert.True(t, storage.Direct.Has(storage.Pool.Assets, []byte("key-one")))
}

func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	trx.Put(storage.Pool.Balances, []byte("keep"), []byte{1})
	require.Nil(t, trx.Commit())

	trx, err = storage.NewDBTransaction()
	require.Nil(t, err)
	trx.Put(storage.Pool.Balances, []byte("discard"), []byte{2})
	trx.Delete(storage.Pool.Balances, []byte("keep"))
	assert.False(t, trx.Has(storage.Pool.Balances, []byte("keep")), "delete not visible in transaction")
	trx.Abort()

	assert.False(t, storage.Direct.Has(storage.Pool.Balances, []byte("discard")), "aborted put survived")
	assert.True(t, storage.Direct.Has(storage.Pool.Balances, []byte("keep")), "aborted delete survived")

	_, err = storage.NewDBTransaction()
	assert.Nil(t, err, "abort did not release the transaction")
}

func TestPrefixCursor(t *testing.T) {
	setup(t)
	defer teardown()

	keys := [][]byte{
		storage.CompoundKey([]byte("arm"), []byte("axe")),
		storage.CompoundKey([]byte("armory"), []byte("bow")),
		storage.CompoundKey([]byte("armory"), []byte("sword")),  // shorter segment sorts first
		storage.CompoundKey([]byte("armory"), []byte("shield")), // ...
		storage.CompoundKey([]byte("zoo"), []byte("lion")),
	}

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	for i, k := range keys {
		trx.PutN(storage.Pool.CollectionSupply, k, uint64(i))
	}
	require.Nil(t, trx.Commit())

	cursor := storage.Pool.CollectionSupply.NewPrefixCursor(storage.CompoundKey([]byte("armory")))

	first, err := cursor.Fetch(2)
	require.Nil(t, err)
	assert.Equal(t, 2, len(first), "first batch")

	rest, err := cursor.Fetch(10)
	require.Nil(t, err)
	assert.Equal(t, 1, len(rest), "second batch")

	all := append(first, rest...)
	for i, e := range all {
		assert.Equal(t, keys[i+1], e.Key, "%d: key", i)
	}

	none, err := cursor.Fetch(10)
	require.Nil(t, err)
	assert.Equal(t, 0, len(none), "cursor not exhausted")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err)
}

func TestTransactionCursor(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	for _, k := range []string{"a", "b", "c"} {
		trx.Put(storage.Pool.Events, []byte(k), []byte(k))
	}
	require.Nil(t, trx.Commit())

	trx, err = storage.NewDBTransaction()
	require.Nil(t, err)
	defer trx.Abort()

	trx.Delete(storage.Pool.Events, []byte("b"))
	trx.Put(storage.Pool.Events, []byte("c"), []byte("C"))
	trx.Put(storage.Pool.Events, []byte("bb"), []byte("BB"))
	trx.Put(storage.Pool.Events, []byte("d"), []byte("D"))
	trx.Put(storage.Pool.Events, []byte("e"), []byte("E"))
	trx.Delete(storage.Pool.Events, []byte("e"))

	collect := func(cursor *storage.FetchCursor) []string {
		seen := []string{}
		err := cursor.Map(func(key []byte, value []byte) error {
			seen = append(seen, string(key)+"="+string(value))
			return nil
		})
		require.Nil(t, err)
		return seen
	}

	assert.Equal(t, []string{"a=a", "bb=BB", "c=C", "d=D"}, collect(trx.NewPrefixCursor(storage.Pool.Events, nil)), "transaction view")
	assert.Equal(t, []string{"a=a", "b=b", "c=c"}, collect(storage.Pool.Events.NewFetchCursor()), "committed view")
	assert.True(t, trx.IsDeleted(storage.Pool.Events, []byte("b")))

	cursor := trx.NewPrefixCursor(storage.Pool.Events, nil)
	first, err := cursor.Fetch(2)
	require.Nil(t, err)
	require.Equal(t, 2, len(first))
	assert.Equal(t, []byte("bb"), first[1].Key)
	rest, err := cursor.Fetch(10)
	require.Nil(t, err)
	require.Equal(t, 2, len(rest), "continue after a staged key")
	assert.Equal(t, []byte("c"), rest[0].Key)
	assert.Equal(t, []byte("C"), rest[0].Value)
}

func TestDirectReadsCommitted(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	trx.PutN(storage.Pool.Balances, []byte("old"), 1)
	require.Nil(t, trx.Commit())

	trx, err = storage.NewDBTransaction()
	require.Nil(t, err)
	trx.PutN(storage.Pool.Balances, []byte("old"), 2)
	trx.PutN(storage.Pool.Balances, []byte("new"), 3)

	n, found := trx.GetN(storage.Pool.Balances, []byte("old"))
	assert.True(t, found)
	assert.Equal(t, uint64(2), n, "transaction read")

	n, found = storage.Direct.GetN(storage.Pool.Balances, []byte("old"))
	assert.True(t, found)
	assert.Equal(t, uint64(1), n, "direct read saw an uncommitted write")
	assert.False(t, storage.Direct.Has(storage.Pool.Balances, []byte("new")), "direct has")
	assert.Nil(t, storage.Direct.Get(storage.Pool.Balances, []byte("new")), "direct get")

	require.Nil(t, trx.Commit())

	n, _ = storage.Direct.GetN(storage.Pool.Balances, []byte("old"))
	assert.Equal(t, uint64(2), n, "after commit")
	assert.True(t, storage.Direct.Has(storage.Pool.Balances, []byte("new")))
}

func TestCompoundKey(t *testing.T) {
	key := storage.CompoundKey([]byte("armory"), []byte{}, []byte("sword"))

	segments, err := storage.SplitCompoundKey(key)
	require.Nil(t, err)
	require.Equal(t, 3, len(segments))
	assert.Equal(t, "armory", string(segments[0]))
	assert.Equal(t, 0, len(segments[1]))
	assert.Equal(t, "sword", string(segments[2]))

	_, err = storage.SplitCompoundKey(key[:len(key)-1])
	assert.Equal(t, fault.ErrInvalidCompoundKey, err, "truncated key")
}

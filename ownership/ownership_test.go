// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/ownership"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func setup(t *testing.T, capacity int) {
	err := storage.InitialiseInMemory()
	require.Nil(t, err, "storage")
	err = ownership.Initialise(capacity)
	require.Nil(t, err, "ownership")
}

func teardown() {
	ownership.Finalise()
	storage.Finalise()
}

func makeAccount(n byte) account.Account {
	a := account.Account{Test: true}
	a.PublicKey[0] = n
	return a
}

func makeId(n byte) assetid.Identifier {
	id := assetid.Identifier{}
	id[0] = n
	id[31] = n
	return id
}

func TestDefaultCapacity(t *testing.T) {
	setup(t, 0)
	defer teardown()

	assert.Equal(t, ownership.DefaultCapacity, ownership.Capacity())

	err := ownership.Initialise(5)
	assert.Equal(t, fault.ErrAlreadyInitialised, err)
}

func TestAppendAndList(t *testing.T) {
	setup(t, 3)
	defer teardown()

	owner := makeAccount(1)
	other := makeAccount(2)

	assert.Equal(t, 0, len(ownership.List(storage.Direct, owner)), "empty list")

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	for i := byte(1); i <= 3; i += 1 {
		err = ownership.Append(trx, owner, makeId(i))
		require.Nil(t, err, "append: %d", i)
	}
	assert.False(t, ownership.HasRoom(trx, owner), "list should be full")

	err = ownership.Append(trx, owner, makeId(4))
	assert.Equal(t, fault.ErrTooManyOwned, err, "capacity not enforced")

	require.Nil(t, trx.Commit())

	expected := []assetid.Identifier{makeId(1), makeId(2), makeId(3)}
	assert.Equal(t, expected, ownership.List(storage.Direct, owner), "list order")
	assert.Equal(t, 3, ownership.Count(storage.Direct, owner))
	assert.True(t, ownership.Contains(storage.Direct, owner, makeId(2)))
	assert.False(t, ownership.Contains(storage.Direct, other, makeId(2)))
	assert.True(t, ownership.HasRoom(storage.Direct, other))
}

func TestRemovePreservesOrder(t *testing.T) {
	setup(t, 0)
	defer teardown()

	owner := makeAccount(7)

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	for i := byte(1); i <= 4; i += 1 {
		require.Nil(t, ownership.Append(trx, owner, makeId(i)))
	}

	assert.True(t, ownership.Remove(trx, owner, makeId(2)), "remove middle")
	assert.False(t, ownership.Remove(trx, owner, makeId(2)), "remove twice")
	assert.False(t, ownership.Remove(trx, owner, makeId(9)), "remove absent")
	require.Nil(t, trx.Commit())

	expected := []assetid.Identifier{makeId(1), makeId(3), makeId(4)}
	assert.Equal(t, expected, ownership.List(storage.Direct, owner))
}

func TestRemoveLastDeletesKey(t *testing.T) {
	setup(t, 0)
	defer teardown()

	owner := makeAccount(9)

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	require.Nil(t, ownership.Append(trx, owner, makeId(1)))
	require.Nil(t, trx.Commit())

	trx, err = storage.NewDBTransaction()
	require.Nil(t, err)
	assert.True(t, ownership.Remove(trx, owner, makeId(1)))
	require.Nil(t, trx.Commit())

	assert.False(t, storage.Pool.OwnedAssets.Has(owner.Bytes()), "empty list left a key")
	assert.Equal(t, 0, len(ownership.List(storage.Direct, owner)))
}

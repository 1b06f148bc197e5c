// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/storage"
)

func TestAppendAndFetch(t *testing.T) {
	require.Nil(t, storage.InitialiseInMemory())
	defer storage.Finalise()

	owner := account.Account{}
	owner.PublicKey[3] = 3
	id := assetid.Identifier{}
	id[0] = 0xaa
	price := uint64(40)

	payloads := []event.Payload{
		event.AssetCreated{Owner: owner, Id: id},
		event.PriceUpdated{Owner: owner, Id: id, Price: &price},
		event.PriceUpdated{Owner: owner, Id: id},
	}

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	records, err := event.Append(trx, 12, 4, payloads)
	require.Nil(t, err)
	require.Nil(t, trx.Commit())

	require.Equal(t, 3, len(records))
	assert.Equal(t, uint64(3), event.Next(storage.Direct))

	stored, err := event.Fetch(1, 10)
	require.Nil(t, err)
	require.Equal(t, 2, len(stored), "fetch from sequence 1")
	assert.Equal(t, "PriceUpdated", stored[0].Name)
	assert.Equal(t, uint64(12), stored[0].Height)
	assert.Equal(t, uint32(4), stored[0].CallIndex)

	var updated event.PriceUpdated
	require.Nil(t, json.Unmarshal(stored[0].Payload, &updated))
	assert.Equal(t, owner, updated.Owner)
	assert.Equal(t, id, updated.Id)
	require.NotNil(t, updated.Price)
	assert.Equal(t, price, *updated.Price)

	var cleared event.PriceUpdated
	require.Nil(t, json.Unmarshal(stored[1].Payload, &cleared))
	assert.Nil(t, cleared.Price, "cleared price")

	// a second call continues the sequence
	trx, err = storage.NewDBTransaction()
	require.Nil(t, err)
	more, err := event.Append(trx, 13, 0, []event.Payload{event.Deposited{Account: owner, Amount: 1}})
	require.Nil(t, err)
	require.Nil(t, trx.Commit())
	assert.Equal(t, uint64(3), more[0].Sequence)

	_, err = event.Fetch(0, 0)
	assert.Equal(t, fault.ErrInvalidCount, err)
}

func TestAppendNothing(t *testing.T) {
	require.Nil(t, storage.InitialiseInMemory())
	defer storage.Finalise()

	trx, err := storage.NewDBTransaction()
	require.Nil(t, err)
	defer trx.Abort()

	records, err := event.Append(trx, 1, 1, nil)
	assert.Nil(t, err)
	assert.Nil(t, records)
	assert.Equal(t, uint64(0), event.Next(trx))
}

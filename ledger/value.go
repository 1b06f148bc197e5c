// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/storage"
)

var valueKey = []byte("value")

// SetValue - replace the single shared value, any caller may set it
//
// an unset value reads as zero
func SetValue(call *dispatch.Call, owner account.Account, value uint32) error {
	trx := call.Transaction()

	old := Value(trx)
	trx.PutN(storage.Pool.Value, valueKey, uint64(value))

	call.Deposit(event.ValueUpdated{
		Owner: owner,
		Old:   old,
		New:   value,
	})

	globalData.log.Infof("value: %d -> %d  owner: %s", old, value, owner)
	return nil
}

// Value - the current shared value
func Value(reader storage.Reader) uint32 {
	n, _ := reader.GetN(storage.Pool.Value, valueKey)
	return uint32(n)
}

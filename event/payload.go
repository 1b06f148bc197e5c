// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/assetid"
)

// Payload - any event that a call can deposit
type Payload interface {
	EventName() string
}

// AssetCreated - a new asset exists
type AssetCreated struct {
	Owner account.Account    `json:"owner"`
	Id    assetid.Identifier `json:"id"`
}

// AssetTransferred - ownership moved between accounts
type AssetTransferred struct {
	From account.Account    `json:"from"`
	To   account.Account    `json:"to"`
	Id   assetid.Identifier `json:"id"`
}

// PriceUpdated - asking price set or cleared, nil Price means not for sale
type PriceUpdated struct {
	Owner account.Account    `json:"owner"`
	Id    assetid.Identifier `json:"id"`
	Price *uint64            `json:"price"`
}

// AssetSold - a purchase completed
type AssetSold struct {
	Buyer account.Account    `json:"buyer"`
	Id    assetid.Identifier `json:"id"`
	Price uint64             `json:"price"`
}

// LedgerMinted - quantity added to a collection
type LedgerMinted struct {
	Collection string          `json:"collection"`
	Class      string          `json:"class"`
	Recipient  account.Account `json:"recipient"`
	Amount     uint64          `json:"amount"`
}

// CollectionDestroyed - entries removed from a collection
type CollectionDestroyed struct {
	Collection string `json:"collection"`
	Supplies   int    `json:"supplies"`
	Balances   int    `json:"balances"`
	Complete   bool   `json:"complete"`
}

// ValueUpdated - the shared ledger value replaced
type ValueUpdated struct {
	Owner account.Account `json:"owner"`
	Old   uint32          `json:"old"`
	New   uint32          `json:"new"`
}

// Deposited - native funds created for an account
type Deposited struct {
	Account account.Account `json:"account"`
	Amount  uint64          `json:"amount"`
}

// Transferred - native funds moved between accounts
type Transferred struct {
	From   account.Account `json:"from"`
	To     account.Account `json:"to"`
	Amount uint64          `json:"amount"`
	Reaped bool            `json:"reaped"`
}

func (AssetCreated) EventName() string        { return "AssetCreated" }
func (AssetTransferred) EventName() string    { return "AssetTransferred" }
func (PriceUpdated) EventName() string        { return "PriceUpdated" }
func (AssetSold) EventName() string           { return "AssetSold" }
func (LedgerMinted) EventName() string        { return "LedgerMinted" }
func (CollectionDestroyed) EventName() string { return "CollectionDestroyed" }
func (ValueUpdated) EventName() string        { return "ValueUpdated" }
func (Deposited) EventName() string           { return "Deposited" }
func (Transferred) EventName() string         { return "Transferred" }

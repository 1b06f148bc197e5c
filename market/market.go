// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"sync"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/asset"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/assetledger/currency"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/ownership"
	"github.com/bitmark-inc/logger"
)

//go:generate mockgen -destination=mocks/mock_currency.go -package=mocks github.com/bitmark-inc/assetledger/market Currency

// Currency - moves the payment from buyer to seller
type Currency interface {
	Transfer(*dispatch.Call, account.Account, account.Account, uint64, currency.Existence) error
}

type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	currency    Currency
	initialised bool
}

var globalData globalDataType

// Initialise - start the market with the currency used for payment
func Initialise(c Currency) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("market")
	globalData.log.Info("starting…")
	globalData.currency = c
	globalData.initialised = true

	return nil
}

// Finalise - stop the market
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.currency = nil
	globalData.initialised = false

	return nil
}

// Buy - purchase an asset that is for sale at no more than maxPrice
//
// the buyer pays the asking price, not maxPrice; the sender side of
// the payment must stay above the minimum balance
func Buy(call *dispatch.Call, buyer account.Account, id assetid.Identifier, maxPrice uint64) error {
	globalData.RLock()
	c := globalData.currency
	log := globalData.log
	globalData.RUnlock()

	if nil == c {
		return fault.ErrNotInitialised
	}

	trx := call.Transaction()

	r, err := asset.Get(trx, id)
	if nil != err {
		return err
	}

	if nil == r.Price {
		return fault.ErrNotForSale
	}
	price := *r.Price
	if price > maxPrice {
		return fault.ErrPriceTooLow
	}

	seller := r.Owner
	if seller == buyer {
		return fault.ErrSelfTransfer
	}

	// no payment may happen for an asset the buyer cannot hold
	if !ownership.HasRoom(trx, buyer) {
		return fault.ErrTooManyOwned
	}

	err = c.Transfer(call, buyer, seller, price, currency.KeepAlive)
	if nil != err {
		log.Debugf("buy: %s  buyer: %s  payment error: %s", id, buyer, err)
		return err
	}

	err = asset.Transfer(call, seller, buyer, id)
	if nil != err {
		return err
	}

	err = asset.SetPrice(call, buyer, id, nil)
	if nil != err {
		return err
	}

	call.Deposit(event.AssetSold{
		Buyer: buyer,
		Id:    id,
		Price: price,
	})

	log.Infof("sold: %s  seller: %s  buyer: %s  price: %d", id, seller, buyer, price)
	return nil
}

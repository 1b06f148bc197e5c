// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/asset"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/assetledger/currency"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/market"
	"github.com/bitmark-inc/assetledger/market/mocks"
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

var (
	alice = makeAccount(1)
	bob   = makeAccount(2)
)

func makeAccount(n byte) account.Account {
	a := account.Account{Test: true}
	a.PublicKey[0] = n
	return a
}

func setup(t *testing.T, c market.Currency) *dispatch.Dispatcher {
	require.Nil(t, storage.InitialiseInMemory(), "storage")
	require.Nil(t, asset.Initialise(), "asset")
	require.Nil(t, currency.Initialise(0), "currency")
	require.Nil(t, market.Initialise(c), "market")
	return dispatch.New(nil)
}

func teardown() {
	_ = market.Finalise()
	_ = currency.Finalise()
	_ = asset.Finalise()
	storage.Finalise()
}

func run(d *dispatch.Dispatcher, name string, f func(*dispatch.Call) error) ([]event.Record, error) {
	return d.Execute(dispatch.Context{Height: 1}, name, f)
}

// create an asset for the owner, priced if price is not nil
func listed(t *testing.T, d *dispatch.Dispatcher, owner account.Account, price *uint64) assetid.Identifier {
	var id assetid.Identifier
	_, err := run(d, "create", func(call *dispatch.Call) error {
		var err error
		id, err = asset.Create(call, owner)
		if nil != err || nil == price {
			return err
		}
		return asset.SetPrice(call, owner, id, price)
	})
	require.Nil(t, err, "create")
	return id
}

func buy(d *dispatch.Dispatcher, buyer account.Account, id assetid.Identifier, maxPrice uint64) ([]event.Record, error) {
	return run(d, "buy", func(call *dispatch.Call) error {
		return market.Buy(call, buyer, id, maxPrice)
	})
}

func TestPurchase(t *testing.T) {
	d := setup(t, currency.Native{})
	defer teardown()

	_, err := run(d, "deposit", func(call *dispatch.Call) error {
		return currency.Deposit(call, bob, 100)
	})
	require.Nil(t, err)

	price := uint64(50)
	id := listed(t, d, alice, &price)

	_, err = buy(d, bob, id, 40)
	assert.Equal(t, fault.ErrPriceTooLow, err, "max price below asking price")

	records, err := buy(d, bob, id, 60)
	require.Nil(t, err)

	r, err := asset.Get(storage.Direct, id)
	require.Nil(t, err)
	assert.Equal(t, bob, r.Owner, "buyer does not own the asset")
	assert.Nil(t, r.Price, "sale did not clear the price")

	assert.Equal(t, uint64(50), currency.BalanceOf(storage.Direct, alice), "seller paid")
	assert.Equal(t, uint64(50), currency.BalanceOf(storage.Direct, bob), "buyer charged asking price")

	assert.Equal(t, []assetid.Identifier{}, asset.OwnedBy(storage.Direct, alice))
	assert.Equal(t, []assetid.Identifier{id}, asset.OwnedBy(storage.Direct, bob))

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Transferred", "AssetTransferred", "PriceUpdated", "AssetSold"}, names)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	d := setup(t, currency.Native{})
	defer teardown()

	_, err := run(d, "deposit", func(call *dispatch.Call) error {
		return currency.Deposit(call, bob, 50)
	})
	require.Nil(t, err)

	price := uint64(50)
	id := listed(t, d, alice, &price)

	// paying everything would leave the buyer below the minimum balance
	_, err = buy(d, bob, id, 50)
	assert.Equal(t, fault.ErrWouldReap, err)
	assert.True(t, fault.IsErrEconomic(err))

	r, err := asset.Get(storage.Direct, id)
	require.Nil(t, err)
	assert.Equal(t, alice, r.Owner)
	require.NotNil(t, r.Price)
	assert.Equal(t, price, *r.Price)
	assert.Equal(t, uint64(50), currency.BalanceOf(storage.Direct, bob))
}

func TestBuyErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// no check may reach the payment
	mock := mocks.NewMockCurrency(ctl)
	mock.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	d := setup(t, mock)
	defer teardown()

	price := uint64(10)
	priced := listed(t, d, alice, &price)
	unpriced := listed(t, d, alice, nil)

	tests := []struct {
		buyer    account.Account
		id       assetid.Identifier
		maxPrice uint64
		err      error
	}{
		{bob, assetid.Identifier{0xfe}, 100, fault.ErrAssetNotFound},
		{bob, unpriced, 100, fault.ErrNotForSale},
		{bob, priced, 9, fault.ErrPriceTooLow},
		{alice, priced, 100, fault.ErrSelfTransfer},
	}

	for i, test := range tests {
		_, err := buy(d, test.buyer, test.id, test.maxPrice)
		assert.Equal(t, test.err, err, "%d: error", i)
	}
}

func TestBuyerFull(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mock := mocks.NewMockCurrency(ctl)
	mock.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	d := setup(t, mock)
	defer teardown()

	for i := 0; i < ownership.DefaultCapacity; i += 1 {
		listed(t, d, bob, nil)
	}

	price := uint64(10)
	id := listed(t, d, alice, &price)

	_, err := buy(d, bob, id, 10)
	assert.Equal(t, fault.ErrTooManyOwned, err, "capacity checked before payment")
}

func TestPaymentFailureRollsBack(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mock := mocks.NewMockCurrency(ctl)

	d := setup(t, mock)
	defer teardown()

	price := uint64(30)
	id := listed(t, d, alice, &price)

	mock.EXPECT().
		Transfer(gomock.Any(), bob, alice, price, currency.KeepAlive).
		Return(fault.ErrInsufficientFunds).
		Times(1)

	records, err := buy(d, bob, id, 35)
	assert.Equal(t, fault.ErrInsufficientFunds, err)
	assert.Nil(t, records)

	r, err := asset.Get(storage.Direct, id)
	require.Nil(t, err)
	assert.Equal(t, alice, r.Owner)
	assert.Equal(t, []assetid.Identifier{}, asset.OwnedBy(storage.Direct, bob))
}

func TestPaymentIsAskingPrice(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mock := mocks.NewMockCurrency(ctl)

	d := setup(t, mock)
	defer teardown()

	price := uint64(50)
	id := listed(t, d, alice, &price)

	mock.EXPECT().
		Transfer(gomock.Any(), bob, alice, uint64(50), currency.KeepAlive).
		Return(nil).
		Times(1)

	_, err := buy(d, bob, id, 60)
	require.Nil(t, err)

	r, err := asset.Get(storage.Direct, id)
	require.Nil(t, err)
	assert.Equal(t, bob, r.Owner)
	assert.Nil(t, r.Price)
}

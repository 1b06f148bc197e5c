// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"math"
	"sync"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

// DefaultMinimumBalance - smallest balance an account may hold
const DefaultMinimumBalance = 1

// Existence - what may happen to the sender of a transfer
type Existence int

// existence requirements
const (
	KeepAlive  Existence = iota // sender must keep at least the minimum balance
	AllowDeath                  // sender below the minimum is removed
)

// String - for %s
func (e Existence) String() string {
	switch e {
	case KeepAlive:
		return "KeepAlive"
	case AllowDeath:
		return "AllowDeath"
	default:
		return "*unknown*"
	}
}

// key of the total in the TotalIssuance pool
var totalKey = []byte("total")

type globalDataType struct {
	sync.RWMutex
	log            *logger.L
	minimumBalance uint64
	initialised    bool
}

var globalData globalDataType

// Initialise - set the minimum balance, zero selects the default
func Initialise(minimumBalance uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if 0 == minimumBalance {
		minimumBalance = DefaultMinimumBalance
	}

	globalData.log = logger.New("currency")
	globalData.log.Infof("minimum balance: %d", minimumBalance)
	globalData.minimumBalance = minimumBalance
	globalData.initialised = true

	return nil
}

// Finalise - stop the currency
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false

	return nil
}

// MinimumBalance - the existence threshold
func MinimumBalance() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.minimumBalance
}

// BalanceOf - free balance of an account
func BalanceOf(reader storage.Reader, a account.Account) uint64 {
	n, _ := reader.GetN(storage.Pool.Balances, a.Bytes())
	return n
}

// TotalIssuance - sum of all balances
func TotalIssuance(reader storage.Reader) uint64 {
	n, _ := reader.GetN(storage.Pool.TotalIssuance, totalKey)
	return n
}

// Deposit - create new funds for an account
func Deposit(call *dispatch.Call, a account.Account, amount uint64) error {
	trx := call.Transaction()

	balance := BalanceOf(trx, a)
	total := TotalIssuance(trx)

	if balance > math.MaxUint64-amount || total > math.MaxUint64-amount {
		return fault.ErrQuantityOverflow
	}
	if balance+amount < MinimumBalance() {
		return fault.ErrBelowMinimum
	}

	trx.PutN(storage.Pool.Balances, a.Bytes(), balance+amount)
	trx.PutN(storage.Pool.TotalIssuance, totalKey, total+amount)

	call.Deposit(event.Deposited{
		Account: a,
		Amount:  amount,
	})

	globalData.log.Infof("deposit: %s  amount: %d", a, amount)
	return nil
}

// Transfer - move funds between accounts
//
// a sender left below the minimum is an error with KeepAlive; with
// AllowDeath the account is removed and its dust leaves the total
func Transfer(call *dispatch.Call, from account.Account, to account.Account, amount uint64, existence Existence) error {
	if 0 == amount || from == to {
		return nil
	}

	trx := call.Transaction()
	minimum := MinimumBalance()

	fromBalance := BalanceOf(trx, from)
	if fromBalance < amount {
		return fault.ErrInsufficientFunds
	}
	remainder := fromBalance - amount

	reaped := false
	if remainder < minimum {
		if KeepAlive == existence {
			return fault.ErrWouldReap
		}
		reaped = true
	}

	toBalance := BalanceOf(trx, to)
	if toBalance > math.MaxUint64-amount {
		return fault.ErrQuantityOverflow
	}
	if toBalance+amount < minimum {
		return fault.ErrBelowMinimum
	}

	if reaped {
		trx.Delete(storage.Pool.Balances, from.Bytes())
		if 0 != remainder {
			total := TotalIssuance(trx)
			trx.PutN(storage.Pool.TotalIssuance, totalKey, total-remainder)
		}
	} else {
		trx.PutN(storage.Pool.Balances, from.Bytes(), remainder)
	}
	trx.PutN(storage.Pool.Balances, to.Bytes(), toBalance+amount)

	call.Deposit(event.Transferred{
		From:   from,
		To:     to,
		Amount: amount,
		Reaped: reaped,
	})

	globalData.log.Infof("transfer: %s -> %s  amount: %d  reaped: %t", from, to, amount, reaped)
	return nil
}

// Native - the native currency as a value, for callers that take an
// interface
type Native struct{}

// Transfer - see the package function
func (Native) Transfer(call *dispatch.Call, from account.Account, to account.Account, amount uint64, existence Existence) error {
	return Transfer(call, from, to, amount, existence)
}

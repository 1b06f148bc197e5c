// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/asset"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/assetledger/configuration"
	"github.com/bitmark-inc/assetledger/currency"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/ledger"
	"github.com/bitmark-inc/assetledger/market"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
)

const (
	defaultEventCount = 20
)

// setup command handler
//
// commands that need neither the configuration file nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "create", "mint-asset", "transfer", "set-price", "buy",
		"deposit", "pay", "mint", "destroy", "set-value",
		"asset", "owned", "supply", "holdings", "balance", "funds", "value", "events":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [--height=N] [--parent=HEX] [--index=N] [command|help] arguments...\n", program)
		fmt.Printf("       HEX is the little endian form, as printed in JSON\n\n")

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                                     (h)    - display this message\n\n")
		fmt.Printf("  version                                  (v)    - display version sting\n\n")
		fmt.Printf("  config-test                              (cfg)  - just check the configuration file\n\n")

		fmt.Printf("  create OWNER                                    - create a new unique asset\n")
		fmt.Printf("  mint-asset OWNER ID                             - record an asset with a chosen identifier\n")
		fmt.Printf("  transfer FROM TO ID                             - give an asset to another account\n")
		fmt.Printf("  set-price OWNER ID [PRICE]                      - list an asset for sale, no PRICE withdraws it\n")
		fmt.Printf("  buy BUYER ID MAX                                - purchase a listed asset for at most MAX\n")
		fmt.Printf("\n")

		fmt.Printf("  deposit ACCOUNT AMOUNT                          - credit native currency to an account\n")
		fmt.Printf("  pay FROM TO AMOUNT [allow-death]                - move native currency between accounts\n")
		fmt.Printf("\n")

		fmt.Printf("  mint COLLECTION CLASS RECIPIENT AMOUNT          - issue fungible units of a class\n")
		fmt.Printf("  destroy COLLECTION                              - remove a batch of a collection's records\n")
		fmt.Printf("                                                    repeat until complete\n")
		fmt.Printf("  set-value OWNER VALUE                           - replace the shared value\n")
		fmt.Printf("\n")

		fmt.Printf("  asset ID                                        - display an asset record\n")
		fmt.Printf("  owned ACCOUNT                                   - list the assets an account holds\n")
		fmt.Printf("  supply COLLECTION [CLASS]                       - display the issued supply\n")
		fmt.Printf("  holdings COLLECTION                             - list every balance of a collection\n")
		fmt.Printf("  balance COLLECTION ACCOUNT CLASS                - display one ledger balance\n")
		fmt.Printf("  funds ACCOUNT                                   - display a native currency balance\n")
		fmt.Printf("  value                                           - display the shared value\n")
		fmt.Printf("  events [START [COUNT]]                          - display the event log\n")
		fmt.Printf("\n")

		return true
	}
}

// configuration commands
//
// commands that only inspect the configuration
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := ""
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJson("configuration", options)
		return true

	default:
		return false
	}
}

// data command handler
//
// state changing calls are run through the dispatcher, queries read
// the committed state directly
func processDataCommand(log *logger.L, d *dispatch.Dispatcher, ctx dispatch.Context, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "create":
		need(command, arguments, 1)
		owner := getAccount(arguments[0])
		var id assetid.Identifier
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			var err error
			id, err = asset.Create(call, owner)
			return err
		})
		printJson("created", id)

	case "mint-asset":
		need(command, arguments, 2)
		owner := getAccount(arguments[0])
		id := getAssetId(arguments[1])
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return asset.Mint(call, owner, id)
		})

	case "transfer":
		need(command, arguments, 3)
		from := getAccount(arguments[0])
		to := getAccount(arguments[1])
		id := getAssetId(arguments[2])
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return asset.Transfer(call, from, to, id)
		})

	case "set-price":
		need(command, arguments, 2)
		owner := getAccount(arguments[0])
		id := getAssetId(arguments[1])
		var price *uint64
		if len(arguments) > 2 {
			p := getAmount(arguments[2])
			price = &p
		}
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return asset.SetPrice(call, owner, id, price)
		})

	case "buy":
		need(command, arguments, 3)
		buyer := getAccount(arguments[0])
		id := getAssetId(arguments[1])
		maxPrice := getAmount(arguments[2])
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return market.Buy(call, buyer, id, maxPrice)
		})

	case "deposit":
		need(command, arguments, 2)
		a := getAccount(arguments[0])
		amount := getAmount(arguments[1])
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return currency.Deposit(call, a, amount)
		})

	case "pay":
		need(command, arguments, 3)
		from := getAccount(arguments[0])
		to := getAccount(arguments[1])
		amount := getAmount(arguments[2])
		existence := currency.KeepAlive
		if len(arguments) > 3 {
			if "allow-death" != arguments[3] {
				exitwithstatus.Message("%s: unknown option: %q", command, arguments[3])
			}
			existence = currency.AllowDeath
		}
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return currency.Transfer(call, from, to, amount, existence)
		})

	case "mint":
		need(command, arguments, 4)
		recipient := getAccount(arguments[2])
		amount := getAmount(arguments[3])
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return ledger.Mint(call, arguments[0], arguments[1], recipient, amount)
		})

	case "destroy":
		need(command, arguments, 1)
		var removal ledger.Removal
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			var err error
			removal, err = ledger.DestroyCollection(call, arguments[0])
			return err
		})
		printJson("removed", removal)

	case "set-value":
		need(command, arguments, 2)
		owner := getAccount(arguments[0])
		value, err := strconv.ParseUint(arguments[1], 10, 32)
		if nil != err {
			exitwithstatus.Message("%s: value: %q error: %s", command, arguments[1], err)
		}
		execute(log, d, ctx, command, func(call *dispatch.Call) error {
			return ledger.SetValue(call, owner, uint32(value))
		})

	case "asset":
		need(command, arguments, 1)
		record, err := asset.Get(storage.Direct, getAssetId(arguments[0]))
		if nil != err {
			exitwithstatus.Message("%s: error: %s", command, err)
		}
		printJson("", record)

	case "owned":
		need(command, arguments, 1)
		printJson("", asset.OwnedBy(storage.Direct, getAccount(arguments[0])))

	case "supply":
		need(command, arguments, 1)
		if len(arguments) > 1 {
			printJson("", ledger.Supply(storage.Direct, arguments[0], arguments[1]))
			break
		}
		entries, err := ledger.Supplies(arguments[0])
		if nil != err {
			exitwithstatus.Message("%s: error: %s", command, err)
		}
		printJson("", entries)

	case "holdings":
		need(command, arguments, 1)
		entries, err := ledger.Holdings(arguments[0])
		if nil != err {
			exitwithstatus.Message("%s: error: %s", command, err)
		}
		printJson("", entries)

	case "balance":
		need(command, arguments, 3)
		holder := getAccount(arguments[1])
		printJson("", ledger.Balance(storage.Direct, arguments[0], holder, arguments[2]))

	case "funds":
		need(command, arguments, 1)
		a := getAccount(arguments[0])
		printJson("", map[string]uint64{
			"balance":       currency.BalanceOf(storage.Direct, a),
			"totalIssuance": currency.TotalIssuance(storage.Direct),
		})

	case "value":
		printJson("", ledger.Value(storage.Direct))

	case "events":
		start := uint64(0)
		count := defaultEventCount
		if len(arguments) > 0 {
			n, err := strconv.ParseUint(arguments[0], 10, 64)
			if nil != err {
				exitwithstatus.Message("%s: invalid start: %q", command, arguments[0])
			}
			start = n
		}
		if len(arguments) > 1 {
			n, err := strconv.Atoi(arguments[1])
			if nil != err || n <= 0 {
				exitwithstatus.Message("%s: invalid count: %q", command, arguments[1])
			}
			count = n
		}
		records, err := event.Fetch(start, count)
		if nil != err {
			exitwithstatus.Message("%s: error: %s", command, err)
		}
		printJson("", records)

	default:
		return false
	}

	return true
}

// run a single call and exit on failure
func execute(log *logger.L, d *dispatch.Dispatcher, ctx dispatch.Context, name string, f func(*dispatch.Call) error) {
	_, err := d.Execute(ctx, name, f)
	if nil != err {
		log.Errorf("%s: failed: %s", name, err)
		exitwithstatus.Message("%s: error: %s", name, err)
	}
}

func need(command string, arguments []string, n int) {
	if len(arguments) < n {
		exitwithstatus.Message("%s: requires %d arguments, %d were given", command, n, len(arguments))
	}
}

func getAccount(s string) account.Account {
	a, err := account.FromBase58(s)
	if nil != err {
		exitwithstatus.Message("account: %q error: %s", s, err)
	}
	return a
}

func getAssetId(s string) assetid.Identifier {
	id, err := assetid.FromString(s)
	if nil != err {
		exitwithstatus.Message("asset id: %q error: %s", s, err)
	}
	return id
}

func getAmount(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		exitwithstatus.Message("amount: %q error: %s", s, fault.ErrInvalidPrice)
	}
	return n
}

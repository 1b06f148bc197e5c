// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strconv"

	"github.com/bitmark-inc/assetledger/asset"
	"github.com/bitmark-inc/assetledger/blockdigest"
	"github.com/bitmark-inc/assetledger/configuration"
	"github.com/bitmark-inc/assetledger/currency"
	"github.com/bitmark-inc/assetledger/dispatch"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/ledger"
	"github.com/bitmark-inc/assetledger/market"
	"github.com/bitmark-inc/assetledger/messagebus"
	"github.com/bitmark-inc/assetledger/ownership"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "height", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'n'},
		{Long: "parent", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'p'},
		{Long: "index", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'i'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.Get(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if processConfigCommand(arguments, theConfiguration) {
		return
	}

	ctx, err := callContext(options)
	if nil != err {
		exitwithstatus.Message("%s: call context error: %s", program, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	err = ownership.Initialise(theConfiguration.Ledger.OwnedCapacity)
	if nil != err {
		log.Criticalf("ownership initialise error: %s", err)
		exitwithstatus.Message("ownership initialise error: %s", err)
	}
	defer ownership.Finalise()

	err = asset.Initialise()
	if nil != err {
		log.Criticalf("asset initialise error: %s", err)
		exitwithstatus.Message("asset initialise error: %s", err)
	}
	defer asset.Finalise()

	err = currency.Initialise(theConfiguration.Ledger.MinimumBalance)
	if nil != err {
		log.Criticalf("currency initialise error: %s", err)
		exitwithstatus.Message("currency initialise error: %s", err)
	}
	defer currency.Finalise()

	err = market.Initialise(currency.Native{})
	if nil != err {
		log.Criticalf("market initialise error: %s", err)
		exitwithstatus.Message("market initialise error: %s", err)
	}
	defer market.Finalise()

	err = ledger.Initialise(theConfiguration.Ledger.MaximumCollectionLength, theConfiguration.Ledger.DestroyLimit)
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	defer ledger.Finalise()

	bus := messagebus.New()
	defer bus.Release()
	published := bus.Chan(0)

	d := dispatch.New(bus)

	if !processDataCommand(log, d, ctx, arguments) {
		processSetupCommand(program, []string{"help"})
		return
	}

	// report what the call published
	records := make([]event.Record, 0, 8)
drain:
	for {
		select {
		case r := <-published:
			records = append(records, r)
		default:
			break drain
		}
	}
	if 0 != len(records) && len(options["quiet"]) == 0 {
		printJson("events", records)
	}
}

// the block position supplied on the command line
func callContext(options map[string][]string) (dispatch.Context, error) {
	ctx := dispatch.Context{}

	if len(options["height"]) > 0 {
		height, err := strconv.ParseUint(options["height"][0], 10, 64)
		if nil != err {
			return ctx, err
		}
		ctx.Height = height
	}

	if len(options["index"]) > 0 {
		index, err := strconv.ParseUint(options["index"][0], 10, 32)
		if nil != err {
			return ctx, err
		}
		ctx.CallIndex = uint32(index)
	}

	// same little endian hex as the JSON form of a digest
	if len(options["parent"]) > 0 {
		buffer, err := hex.DecodeString(options["parent"][0])
		if nil != err {
			return ctx, err
		}
		err = blockdigest.DigestFromBytes(&ctx.ParentHash, buffer)
		if nil != err {
			return ctx, err
		}
	}

	return ctx, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"sync"

	"github.com/bitmark-inc/assetledger/blockdigest"
	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/assetledger/messagebus"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

// Context - where in the chain a call is executed
type Context struct {
	ParentHash blockdigest.Digest `json:"parentHash"`
	Height     uint64             `json:"height"`
	CallIndex  uint32             `json:"callIndex"`
}

// Call - the state available to one executing call
type Call struct {
	Context
	trx    storage.Transaction
	events []event.Payload
}

// Transaction - the open transaction of the call
func (c *Call) Transaction() storage.Transaction {
	return c.trx
}

// Deposit - queue an event, published only if the call succeeds
func (c *Call) Deposit(p event.Payload) {
	c.events = append(c.events, p)
}

// Events - the events deposited so far
func (c *Call) Events() []event.Payload {
	return c.events
}

// Dispatcher - runs calls one at a time, each all or nothing
type Dispatcher struct {
	sync.Mutex
	log *logger.L
	bus *messagebus.Bus
}

// New - create a dispatcher, bus may be nil if nothing listens
func New(bus *messagebus.Bus) *Dispatcher {
	return &Dispatcher{
		log: logger.New("dispatch"),
		bus: bus,
	}
}

// Execute - run a call inside a fresh transaction
//
// if f returns an error every write of the call is discarded and no
// events are recorded; otherwise the events are appended to the log,
// the transaction is committed and the records are sent on the bus
func (d *Dispatcher) Execute(ctx Context, name string, f func(*Call) error) ([]event.Record, error) {
	d.Lock()
	defer d.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		d.log.Errorf("%s: begin error: %s", name, err)
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	call := &Call{
		Context: ctx,
		trx:     trx,
	}

	err = f(call)
	if nil != err {
		d.log.Warnf("%s: height: %d  index: %d  rejected: %s", name, ctx.Height, ctx.CallIndex, err)
		return nil, err
	}

	records, err := event.Append(trx, ctx.Height, ctx.CallIndex, call.events)
	if nil != err {
		d.log.Errorf("%s: event log error: %s", name, err)
		return nil, err
	}

	err = trx.Commit()
	if nil != err {
		d.log.Criticalf("%s: commit error: %s", name, err)
		return nil, err
	}
	committed = true

	d.log.Infof("%s: height: %d  index: %d  events: %d", name, ctx.Height, ctx.CallIndex, len(records))

	if nil != d.bus {
		for _, r := range records {
			d.bus.Send(r)
		}
	}

	return records, nil
}

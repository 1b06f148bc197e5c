// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/assetledger/event"
	"github.com/bitmark-inc/logger"
)

// default listener queue size
const (
	defaultQueueSize = 1000
)

// Bus - fan out committed events to every listener
type Bus struct {
	sync.Mutex
	log       *logger.L
	listeners []chan event.Record
	dropped   uint64
}

// New - create a bus with no listeners
func New() *Bus {
	return &Bus{
		log: logger.New("messagebus"),
	}
}

// Chan - add a listener, size zero selects the default queue size
//
// a listener that falls behind loses records rather than stalling the
// sender
func (b *Bus) Chan(size int) <-chan event.Record {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan event.Record, size)

	b.Lock()
	b.listeners = append(b.listeners, c)
	b.Unlock()

	return c
}

// Send - deliver a record to all current listeners without blocking
func (b *Bus) Send(r event.Record) {
	b.Lock()
	defer b.Unlock()

	for i, c := range b.listeners {
		select {
		case c <- r:
		default:
			b.dropped += 1
			b.log.Warnf("listener: %d full, dropped event: %d %s", i, r.Sequence, r.Name)
		}
	}
}

// Dropped - total number of undelivered records
func (b *Bus) Dropped() uint64 {
	b.Lock()
	defer b.Unlock()
	return b.dropped
}

// Release - close all listener channels
func (b *Bus) Release() {
	b.Lock()
	defer b.Unlock()

	for _, c := range b.listeners {
		close(c)
	}
	b.listeners = nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/assetledger/fault"
	"github.com/bitmark-inc/assetledger/storage"
	"github.com/bitmark-inc/logger"
)

// key of the next sequence number in the EventCount pool
var nextKey = []byte("next")

// Record - an event as stored in the log
type Record struct {
	Sequence  uint64          `json:"sequence"`
	Height    uint64          `json:"height"`
	CallIndex uint32          `json:"callIndex"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
}

// Next - the sequence number the next appended event will receive
func Next(reader storage.Reader) uint64 {
	n, _ := reader.GetN(storage.Pool.EventCount, nextKey)
	return n
}

// Append - add the events of one call to the log
//
// the records are only visible to Fetch after the transaction commits
func Append(trx storage.Transaction, height uint64, callIndex uint32, payloads []Payload) ([]Record, error) {
	if 0 == len(payloads) {
		return nil, nil
	}

	sequence := Next(trx)
	records := make([]Record, 0, len(payloads))

	for _, p := range payloads {
		payload, err := json.Marshal(p)
		if nil != err {
			return nil, err
		}
		r := Record{
			Sequence:  sequence,
			Height:    height,
			CallIndex: callIndex,
			Name:      p.EventName(),
			Payload:   payload,
		}
		packed, err := json.Marshal(r)
		if nil != err {
			return nil, err
		}
		trx.Put(storage.Pool.Events, sequenceKey(sequence), packed)
		records = append(records, r)
		sequence += 1
	}

	trx.PutN(storage.Pool.EventCount, nextKey, sequence)
	return records, nil
}

// Fetch - read up to count committed records starting at a sequence number
func Fetch(start uint64, count int) ([]Record, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	cursor := storage.Pool.Events.NewFetchCursor().Seek(sequenceKey(start))
	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var r Record
		err := json.Unmarshal(item.Value, &r)
		if nil != err {
			logger.Criticalf("event.Fetch: key: %x  error: %s", item.Key, err)
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func sequenceKey(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

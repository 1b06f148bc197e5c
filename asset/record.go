// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/bitmark-inc/assetledger/account"
	"github.com/bitmark-inc/assetledger/assetid"
	"github.com/bitmark-inc/logger"
)

// price flag values in the packed record
const (
	notForSale = 0x00
	priced     = 0x01
)

// Record - a unique asset
type Record struct {
	Id    assetid.Identifier `json:"id"`
	Owner account.Account    `json:"owner"`
	Price *uint64            `json:"price"`
}

// pack a record for the Assets pool:
//   owner   33 bytes
//   flag    1 byte
//   price   8 bytes big endian, only if flag is priced
func (r *Record) pack() []byte {
	buffer := make([]byte, 0, account.EncodedLength+1+8)
	buffer = append(buffer, r.Owner.Bytes()...)
	if nil == r.Price {
		return append(buffer, notForSale)
	}
	buffer = append(buffer, priced)
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, *r.Price)
	return append(buffer, n...)
}

// unpack a stored record, a bad record means the database is corrupt
func unpack(id assetid.Identifier, packed []byte) *Record {
	if len(packed) < account.EncodedLength+1 {
		logger.Panicf("asset: id: %s  truncated record: %x", id, packed)
	}

	owner, err := account.FromBytes(packed[:account.EncodedLength])
	logger.PanicIfError("asset: owner", err)

	r := &Record{
		Id:    id,
		Owner: owner,
	}

	rest := packed[account.EncodedLength:]
	switch rest[0] {
	case notForSale:
	case priced:
		if 9 != len(rest) {
			logger.Panicf("asset: id: %s  bad price: %x", id, rest)
		}
		price := binary.BigEndian.Uint64(rest[1:])
		r.Price = &price
	default:
		logger.Panicf("asset: id: %s  bad flag: %x", id, rest[0])
	}
	return r
}

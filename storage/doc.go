// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes go through a Transaction: they are staged in a batch
// and only reach the database on Commit, Abort discards them.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ⧺            = concatenation of byte data
// 3. asset id     = 32 byte BLAKE2b-256 digest
// 4. owner        = account bytes (variant ⧺ 32 byte public key)
// 5. lp(x)        = uvarint(len(x)) ⧺ x
// 6. *others*     = byte values of various length
//
// Unique assets:
//
//   A ⧺ asset id               - asset record
//                                data: owner ⧺ 00                      (not for sale)
//                                data: owner ⧺ 01 ⧺ price(uint64 BE)   (for sale)
//   C ⧺ "count"                - issuance counter
//                                data: uint32 BE
//   O ⧺ owner                  - owned asset ids, in acquisition order
//                                data: asset id ⧺ asset id ⧺ …
//
// Collection ledger:
//
//   S ⧺ lp(collection) ⧺ lp(class)            - total supply
//                                               data: uint64 BE
//   K ⧺ lp(collection) ⧺ lp(owner) ⧺ lp(class) - account balance
//                                               data: uint64 BE
//   V ⧺ "value"                                - single shared value
//                                               data: uint64 BE (uint32 range)
//
// Native currency:
//
//   B ⧺ owner                  - free balance
//                                data: uint64 BE
//   I ⧺ "total"                - total issuance
//                                data: uint64 BE
//
// Events:
//
//   N ⧺ "next"                 - next event sequence number
//                                data: uint64 BE
//   E ⧺ sequence(uint64 BE)    - committed event
//                                data: JSON record
package storage

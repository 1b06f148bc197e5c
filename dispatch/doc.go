// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - execution host for state changing calls
//
// a call sees the parent block hash, the block height and its index
// in the block; all of its writes go through one storage transaction
package dispatch

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - purchase of assets that their owners have priced
//
// a sale pays the seller, moves the asset to the buyer and takes it
// off the market, all in the buyer's call
package market

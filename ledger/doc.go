// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - fungible quantities of asset classes grouped by
// collection
//
// for every collection and class the supply equals the sum of the
// account balances
package ledger

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package assetid - the 32 byte identifier of a unique asset
//
// identifiers are derived deterministically from the execution
// context, so every node replaying the same calls produces the same
// identifiers
package assetid

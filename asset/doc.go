// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - registry of unique assets
//
// every asset has exactly one owner and an optional asking price;
// records are never deleted
package asset

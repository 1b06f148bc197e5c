// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ownership - bounded per account list of owned asset ids
//
// the list for an account contains an id if and only if the asset
// record names that account as owner; callers keep both sides in step
// inside one transaction
package ownership

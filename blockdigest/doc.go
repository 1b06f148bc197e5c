// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockdigest - the block hash as supplied by the host chain
//
// only the parent block hash is used here, as entropy for asset
// identifiers; blocks themselves are produced elsewhere
package blockdigest

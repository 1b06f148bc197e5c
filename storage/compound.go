// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/assetledger/fault"
)

// CompoundKey - concatenate length prefixed segments: lp(s1) ⧺ lp(s2) ⧺ …
//
// the key of the leading segments is a strict prefix of the full key,
// so a collection "arm" never matches keys of collection "armory"
//
// keys sort by segment length first and then by bytes, so cursors and
// listings return "bow", "sword", "shield" in that order
func CompoundKey(segments ...[]byte) []byte {
	size := 0
	for _, s := range segments {
		size += binary.MaxVarintLen64 + len(s)
	}
	key := make([]byte, 0, size)
	n := make([]byte, binary.MaxVarintLen64)
	for _, s := range segments {
		l := binary.PutUvarint(n, uint64(len(s)))
		key = append(key, n[:l]...)
		key = append(key, s...)
	}
	return key
}

// SplitCompoundKey - reverse of CompoundKey
func SplitCompoundKey(key []byte) ([][]byte, error) {
	segments := make([][]byte, 0, 3)
	for len(key) > 0 {
		length, n := binary.Uvarint(key)
		if n <= 0 || uint64(len(key)-n) < length {
			return nil, fault.ErrInvalidCompoundKey
		}
		key = key[n:]
		segments = append(segments, key[:length])
		key = key[length:]
	}
	return segments, nil
}

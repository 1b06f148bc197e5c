// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - domain events and the persistent append only log
//
// events are deposited by a call and only reach the log when the call
// commits; a failed call leaves no events behind
package event

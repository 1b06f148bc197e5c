// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type EconomicError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ProcessError("already initialised")
	ErrAssetClassTooLong    = InvalidError("asset class is too long")
	ErrAssetNotFound        = NotFoundError("asset not found")
	ErrBelowMinimum         = EconomicError("balance would be below minimum")
	ErrCollectionTooLong    = InvalidError("collection is too long")
	ErrDuplicateAsset       = ExistsError("duplicate asset")
	ErrEmptyAsset           = InvalidError("asset class is empty")
	ErrEmptyCollection      = InvalidError("collection is empty")
	ErrInsufficientFunds    = EconomicError("insufficient funds")
	ErrInvalidAccount       = InvalidError("invalid account")
	ErrInvalidAssetId       = InvalidError("invalid asset id")
	ErrInvalidCompoundKey   = InvalidError("invalid compound key")
	ErrInvalidConfiguration = InvalidError("invalid configuration")
	ErrInvalidCount         = InvalidError("invalid count")
	ErrInvalidCursor        = InvalidError("invalid cursor")
	ErrInvalidDigest        = InvalidError("invalid digest")
	ErrInvalidPrice         = InvalidError("invalid price")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrNotAuthorized        = AuthorisationError("not authorized")
	ErrNotForSale           = EconomicError("asset is not for sale")
	ErrNotInitialised       = ProcessError("not initialised")
	ErrPriceTooLow          = EconomicError("price too low")
	ErrQuantityOverflow     = LimitError("quantity overflow")
	ErrSelfTransfer         = InvalidError("transfer to self")
	ErrTooManyAssets        = LimitError("too many assets")
	ErrTooManyOwned         = LimitError("too many assets owned")
	ErrTransactionInUse     = ProcessError("transaction already in use")
	ErrTransactionNotActive = ProcessError("transaction not active")
	ErrWouldReap            = EconomicError("transfer would reap sender")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e EconomicError) Error() string      { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e LimitError) Error() string         { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// determine the class of an error
func IsErrAuthorisation(e error) bool { _, ok := e.(AuthorisationError); return ok }
func IsErrEconomic(e error) bool      { _, ok := e.(EconomicError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrLimit(e error) bool         { _, ok := e.(LimitError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/assetledger/currency"
	"github.com/bitmark-inc/assetledger/ledger"
	"github.com/bitmark-inc/assetledger/ownership"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = "assetledger.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "assetledger.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the LevelDB files
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LedgerType - deployment parameters
type LedgerType struct {
	OwnedCapacity           int    `gluamapper:"owned_capacity" json:"owned_capacity"`
	MaximumCollectionLength int    `gluamapper:"maximum_collection_length" json:"maximum_collection_length"`
	DestroyLimit            int    `gluamapper:"destroy_limit" json:"destroy_limit"`
	MinimumBalance          uint64 `gluamapper:"minimum_balance" json:"minimum_balance"`
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Ledger        LedgerType           `gluamapper:"ledger" json:"ledger"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Get - read decode and verify the configuration
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},

		Ledger: LedgerType{
			OwnedCapacity:           ownership.DefaultCapacity,
			MaximumCollectionLength: ledger.DefaultMaximumCollectionLength,
			DestroyLimit:            ledger.DefaultDestroyLimit,
			MinimumBalance:          currency.DefaultMinimumBalance,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if options.Ledger.OwnedCapacity <= 0 {
		return nil, fmt.Errorf("owned_capacity: %d must be positive", options.Ledger.OwnedCapacity)
	}
	if options.Ledger.MaximumCollectionLength <= 0 {
		return nil, fmt.Errorf("maximum_collection_length: %d must be positive", options.Ledger.MaximumCollectionLength)
	}
	if options.Ledger.DestroyLimit <= 0 {
		return nil, fmt.Errorf("destroy_limit: %d must be positive", options.Ledger.DestroyLimit)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// database name becomes the full path
	options.Database.Name = EnsureAbsolute(options.Database.Directory, options.Database.Name)

	// done
	return options, nil
}

// EnsureAbsolute - if a path is not absolute, prefix it with a directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

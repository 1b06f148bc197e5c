// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/assetledger/configuration"
	"github.com/bitmark-inc/assetledger/fault"
)

// write a configuration file into a fresh directory
func setup(t *testing.T, text string) (string, string) {
	dir, err := ioutil.TempDir("", "assetledger-config")
	require.Nil(t, err, "temporary directory")

	fileName := filepath.Join(dir, "assetledger.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	require.Nil(t, err, "write configuration")

	return dir, fileName
}

func TestDefaults(t *testing.T) {
	dir, fileName := setup(t, `
return {
    data_directory = ".",
}
`)
	defer os.RemoveAll(dir)

	c, err := configuration.Get(fileName)
	require.Nil(t, err)

	cleanDir := filepath.Clean(dir)
	assert.Equal(t, cleanDir, c.DataDirectory)
	assert.Equal(t, filepath.Join(cleanDir, "data"), c.Database.Directory)
	assert.Equal(t, filepath.Join(cleanDir, "data", "assetledger.leveldb"), c.Database.Name)
	assert.Equal(t, filepath.Join(cleanDir, "log"), c.Logging.Directory)
	assert.Equal(t, "assetledger.log", c.Logging.File)

	assert.Equal(t, 100, c.Ledger.OwnedCapacity)
	assert.Equal(t, 64, c.Ledger.MaximumCollectionLength)
	assert.Equal(t, 10, c.Ledger.DestroyLimit)
	assert.Equal(t, uint64(1), c.Ledger.MinimumBalance)

	info, err := os.Stat(c.Database.Directory)
	require.Nil(t, err, "database directory not created")
	assert.True(t, info.IsDir())
}

func TestOverrides(t *testing.T) {
	dir, fileName := setup(t, `
local M = {}
M.data_directory = arg[0]:match("(.*/)")
M.database = {
    directory = "db",
    name = "test.leveldb",
}
M.ledger = {
    owned_capacity = 5,
    maximum_collection_length = 16,
    destroy_limit = 3,
    minimum_balance = 500,
}
M.logging = {
    size = 4096,
    count = 2,
    levels = {
        DEFAULT = "info",
        asset = "debug",
    },
}
return M
`)
	defer os.RemoveAll(dir)

	c, err := configuration.Get(fileName)
	require.Nil(t, err)

	cleanDir := filepath.Clean(dir)
	assert.Equal(t, cleanDir, c.DataDirectory)
	assert.Equal(t, filepath.Join(cleanDir, "db", "test.leveldb"), c.Database.Name)
	assert.Equal(t, 5, c.Ledger.OwnedCapacity)
	assert.Equal(t, 16, c.Ledger.MaximumCollectionLength)
	assert.Equal(t, 3, c.Ledger.DestroyLimit)
	assert.Equal(t, uint64(500), c.Ledger.MinimumBalance)
	assert.Equal(t, 4096, c.Logging.Size)
	assert.Equal(t, 2, c.Logging.Count)
	assert.Equal(t, "debug", c.Logging.Levels["asset"])
}

func TestInvalid(t *testing.T) {
	tests := []string{
		`return { data_directory = "" }`,
		`return { data_directory = ".", ledger = { destroy_limit = -1 } }`,
		`return { data_directory = ".", database = { name = "sub/x.leveldb" } }`,
		`return { data_directory = "/nonexistent/assetledger/data" }`,
	}

	for i, text := range tests {
		dir, fileName := setup(t, text)
		_, err := configuration.Get(fileName)
		assert.NotNil(t, err, "%d: expected error", i)
		os.RemoveAll(dir)
	}
}

func TestParseRequiresStructPointer(t *testing.T) {
	dir, fileName := setup(t, `return { data_directory = "." }`)
	defer os.RemoveAll(dir)

	var c configuration.Configuration
	assert.Equal(t, fault.ErrInvalidStructPointer, configuration.ParseConfigurationFile(fileName, c))

	n := 0
	assert.Equal(t, fault.ErrInvalidStructPointer, configuration.ParseConfigurationFile(fileName, &n))

	assert.Nil(t, configuration.ParseConfigurationFile(fileName, &c))
	assert.Equal(t, ".", c.DataDirectory)
}

func TestParseRequiresTable(t *testing.T) {
	dir, fileName := setup(t, `return 42`)
	defer os.RemoveAll(dir)

	var c configuration.Configuration
	assert.Equal(t, fault.ErrInvalidConfiguration, configuration.ParseConfigurationFile(fileName, &c))
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/a/b/c", configuration.EnsureAbsolute("/a/b", "c"))
	assert.Equal(t, "/x/y", configuration.EnsureAbsolute("/a/b", "/x/y"))
	assert.Equal(t, "/a/c", configuration.EnsureAbsolute("/a/b", "../c"))
}

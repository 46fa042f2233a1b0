// Copyright 2026 Peter Edge
//
// All rights reserved.

package gdsconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()
	tempDirPath := t.TempDir()
	writeConfig(t, tempDirPath, `version: v1
connection:
  address: 192.168.1.50
  port: 50000
dictionary: build-artifacts/RefTopologyDictionary.json
`)
	config, err := ReadConfig("", tempDirPath)
	require.NoError(t, err)
	require.Equal(t, "192.168.1.50", config.Address)
	require.Equal(t, 50000, config.Port)
	require.Equal(t, "build-artifacts/RefTopologyDictionary.json", config.Dictionary)
}

func TestReadConfigMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	config, err := ReadConfig("", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, &Config{}, config)
}

func TestReadConfigExplicitMissingFileIsError(t *testing.T) {
	t.Parallel()
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"), "")
	require.Error(t, err)
}

func TestReadConfigUnknownFieldIsError(t *testing.T) {
	t.Parallel()
	tempDirPath := t.TempDir()
	writeConfig(t, tempDirPath, `version: v1
unknown_field: true
`)
	_, err := ReadConfig("", tempDirPath)
	require.Error(t, err)
}

func TestReadConfigBadVersionIsError(t *testing.T) {
	t.Parallel()
	tempDirPath := t.TempDir()
	writeConfig(t, tempDirPath, `version: v2
`)
	_, err := ReadConfig("", tempDirPath)
	require.ErrorContains(t, err, "unsupported config version")
}

func TestReadConfigPortOutOfRangeIsError(t *testing.T) {
	t.Parallel()
	tempDirPath := t.TempDir()
	writeConfig(t, tempDirPath, `version: v1
connection:
  port: 70000
`)
	_, err := ReadConfig("", tempDirPath)
	require.ErrorContains(t, err, "out of range")
}

func writeConfig(t *testing.T, dirPath string, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dirPath, ConfigFileName), []byte(data), 0o644))
}

// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdsconfig provides configuration parsing and validation for gdsctl.
//
// Configuration is optional: a gdsctl.yaml file in the working directory (or
// a path given with --config) supplies connection defaults for flags the
// user did not set. A missing file is not an error.
package gdsconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file name searched for in the working directory.
const ConfigFileName = "gdsctl.yaml"

// ExternalConfig is the YAML-serializable configuration file structure.
type ExternalConfig struct {
	// Version is the configuration file version (must be "v1").
	Version string `yaml:"version"`
	// Connection holds connection defaults.
	Connection ExternalConnectionConfig `yaml:"connection"`
	// Dictionary is the default project dictionary path.
	Dictionary string `yaml:"dictionary"`
}

// ExternalConnectionConfig holds connection defaults.
type ExternalConnectionConfig struct {
	// Address is the GDS IP address or hostname.
	Address string `yaml:"address"`
	// Port is the GDS HTTP API port.
	Port int `yaml:"port"`
}

// Config is the validated runtime configuration derived from the config file.
//
// Zero-valued fields mean the file did not set them; callers fall back to
// flag defaults.
type Config struct {
	// Address is the default GDS address.
	Address string
	// Port is the default GDS port.
	Port int
	// Dictionary is the default project dictionary path.
	Dictionary string
}

// NewConfig validates an ExternalConfig and returns a runtime Config.
func NewConfig(externalConfig ExternalConfig) (*Config, error) {
	if externalConfig.Version != "v1" {
		return nil, fmt.Errorf("unsupported config version %q, must be v1", externalConfig.Version)
	}
	if externalConfig.Connection.Port < 0 || externalConfig.Connection.Port > 65535 {
		return nil, fmt.Errorf("connection.port %d out of range", externalConfig.Connection.Port)
	}
	return &Config{
		Address:    externalConfig.Connection.Address,
		Port:       externalConfig.Connection.Port,
		Dictionary: externalConfig.Dictionary,
	}, nil
}

// ReadConfig reads and validates the configuration file at the given path.
//
// If path is empty, gdsctl.yaml in dirPath is used. A missing file yields an
// empty Config; an unreadable or invalid file is an error.
func ReadConfig(path string, dirPath string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dirPath, ConfigFileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var externalConfig ExternalConfig
	if err := unmarshalYAMLStrict(data, &externalConfig); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return NewConfig(externalConfig)
}

// *** PRIVATE ***

// unmarshalYAMLStrict unmarshals the data as YAML with strict field checking.
// If the data length is 0, this is a no-op.
func unmarshalYAMLStrict(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	yamlDecoder := yaml.NewDecoder(bytes.NewReader(data))
	// Reject unknown fields.
	yamlDecoder.KnownFields(true)
	if err := yamlDecoder.Decode(v); err != nil {
		return fmt.Errorf("could not unmarshal as YAML: %w", err)
	}
	return nil
}

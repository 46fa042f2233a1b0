// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdsdict resolves and loads project dictionaries.
//
// A project dictionary is a JSON file describing every telemetry channel,
// command, and event of a given embedded-control build. The file is named
// "*Dictionary.json" by convention, which is how autodetection in the
// working directory finds it.
package gdsdict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DictionaryFileSuffix is the file name suffix that marks a project dictionary.
const DictionaryFileSuffix = "Dictionary.json"

var (
	// ErrDictionaryNotFound is returned when no dictionary path was given and
	// none could be autodetected in the search directory.
	ErrDictionaryNotFound = errors.New("no project dictionary found")
	// ErrInvalidDictionary is returned when a dictionary path exists but the
	// file does not look like a project dictionary.
	ErrInvalidDictionary = errors.New("invalid project dictionary")
)

// Dictionary is a loaded project dictionary.
type Dictionary struct {
	// Metadata describes the build this dictionary was generated from.
	Metadata Metadata
	// Commands maps full command names ("<component>.<name>") to their entries.
	Commands map[string]CommandEntry
	// Channels maps full channel names to their entries.
	Channels map[string]ChannelEntry
	// Events maps full event names to their entries.
	Events map[string]EventEntry
}

// Metadata describes the build a dictionary was generated from.
type Metadata struct {
	// DeploymentName is the name of the deployment (e.g. "Ref").
	DeploymentName string `json:"deploymentName"`
	// ProjectVersion is the project version string.
	ProjectVersion string `json:"projectVersion"`
	// SpecVersion is the dictionary format version.
	SpecVersion string `json:"dictionarySpecVersion"`
}

// CommandEntry describes a single command available on the instance.
type CommandEntry struct {
	// Opcode is the numeric command opcode.
	Opcode uint32 `json:"opcode"`
	// Description is the human-readable command description.
	Description string `json:"description"`
	// Arguments are the declared command arguments, in order.
	Arguments []ArgumentEntry `json:"arguments"`
}

// ArgumentEntry describes a declared command argument.
//
// Type is an opaque type name from the dictionary (e.g. "U32", "string").
// This layer never interprets it; argument values stay raw strings until the
// dictionary-aware sending layer converts them.
type ArgumentEntry struct {
	// Name is the argument name.
	Name string `json:"name"`
	// Type is the dictionary type name.
	Type string `json:"type"`
}

// ChannelEntry describes a single telemetry channel.
type ChannelEntry struct {
	// ID is the numeric channel ID.
	ID uint32 `json:"id"`
	// Description is the human-readable channel description.
	Description string `json:"description"`
}

// EventEntry describes a single event definition.
type EventEntry struct {
	// ID is the numeric event ID.
	ID uint32 `json:"id"`
	// Severity is the event severity name (e.g. "WARNING_HI").
	Severity string `json:"severity"`
	// Description is the human-readable event description.
	Description string `json:"description"`
}

// CommandNames returns every command name in the dictionary, sorted.
//
// This is the index consulted by shell completion and list mode.
func (d *Dictionary) CommandNames() []string {
	names := make([]string, 0, len(d.Commands))
	for name := range d.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePath determines the effective dictionary path.
//
// If explicitPath is non-empty it is used as given (after ~ expansion).
// Otherwise the lexically first "*Dictionary.json" file in dirPath is used.
// Returns ErrDictionaryNotFound if nothing was given or found, and
// ErrInvalidDictionary if the candidate path fails the format check.
//
// ResolvePath only reads the filesystem and is idempotent: full validation
// and shell completion both call it and must agree on the result.
func ResolvePath(explicitPath string, dirPath string) (string, error) {
	if explicitPath != "" {
		expandedPath, err := expandHome(explicitPath)
		if err != nil {
			return "", err
		}
		if err := checkFormat(expandedPath); err != nil {
			return "", err
		}
		return expandedPath, nil
	}
	matches, err := filepath.Glob(filepath.Join(dirPath, "*"+DictionaryFileSuffix))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s", ErrDictionaryNotFound, dirPath)
	}
	// Glob results are sorted, so the first match is deterministic.
	foundPath := matches[0]
	if err := checkFormat(foundPath); err != nil {
		return "", err
	}
	return foundPath, nil
}

// Load reads and parses the dictionary at the given path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDictionaryNotFound, path)
		}
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	var externalDictionary externalDictionary
	if err := json.Unmarshal(data, &externalDictionary); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidDictionary, path, err)
	}
	if externalDictionary.Commands == nil {
		return nil, fmt.Errorf("%w: %s has no commands section", ErrInvalidDictionary, path)
	}
	dictionary := &Dictionary{
		Metadata: externalDictionary.Metadata,
		Commands: externalDictionary.Commands,
		Channels: externalDictionary.Channels,
		Events:   externalDictionary.Events,
	}
	if dictionary.Channels == nil {
		dictionary.Channels = make(map[string]ChannelEntry)
	}
	if dictionary.Events == nil {
		dictionary.Events = make(map[string]EventEntry)
	}
	return dictionary, nil
}

// *** PRIVATE ***

// externalDictionary is the JSON-serializable dictionary file structure.
type externalDictionary struct {
	Metadata Metadata                `json:"metadata"`
	Commands map[string]CommandEntry `json:"commands"`
	Channels map[string]ChannelEntry `json:"channels"`
	Events   map[string]EventEntry   `json:"events"`
}

// checkFormat verifies that path exists and carries the dictionary format
// signature: a JSON object with a commands section.
func checkFormat(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDictionaryNotFound, path)
		}
		return fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	var signature struct {
		Commands json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal(data, &signature); err != nil {
		return fmt.Errorf("%w: %s is not a JSON dictionary: %v", ErrInvalidDictionary, path, err)
	}
	if len(signature.Commands) == 0 {
		return fmt.Errorf("%w: %s has no commands section", ErrInvalidDictionary, path)
	}
	return nil
}

// expandHome expands a leading ~ in a path to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

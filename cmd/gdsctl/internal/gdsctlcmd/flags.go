// Copyright 2026 Peter Edge
//
// All rights reserved.

package gdsctlcmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/groundsys/gdsctl/internal/gds/gdsconfig"
	"github.com/groundsys/gdsctl/internal/gds/gdsdict"
	"github.com/groundsys/gdsctl/internal/gds/gdsfilter"
	"github.com/spf13/pflag"
)

const (
	// DictionaryFlagName is the flag name for the project dictionary path.
	DictionaryFlagName = "dictionary"
	// IPAddressFlagName is the flag name for the GDS address.
	IPAddressFlagName = "ip-address"
	// PortFlagName is the flag name for the GDS port.
	PortFlagName = "port"
	// ConfigFlagName is the flag name for the gdsctl config file path.
	ConfigFlagName = "config"
	// IDsFlagName is the flag name for ID filtering.
	IDsFlagName = "ids"
	// ComponentsFlagName is the flag name for component filtering.
	ComponentsFlagName = "components"
	// SearchFlagName is the flag name for substring filtering.
	SearchFlagName = "search"
	// JSONFlagName is the flag name for JSON output.
	JSONFlagName = "json"
	// TimeoutFlagName is the flag name for the retrieval timeout.
	TimeoutFlagName = "timeout"
	// LimitFlagName is the flag name for the retrieval limit.
	LimitFlagName = "limit"
)

// defaultPort is the default GDS HTTP API port.
const defaultPort = 50050

// ConnectionFlags is the shared argument group for connecting to the GDS.
type ConnectionFlags struct {
	// Dictionary is the project dictionary path, empty for autodetection.
	Dictionary string
	// IPAddress is the GDS IP address or hostname.
	IPAddress string
	// Port is the GDS HTTP API port.
	Port int
	// Config is the gdsctl config file path, empty for autodetection.
	Config string

	flagSet *pflag.FlagSet
}

// NewConnectionFlags creates a fresh connection argument group.
func NewConnectionFlags() *ConnectionFlags {
	return &ConnectionFlags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *ConnectionFlags) Bind(flagSet *pflag.FlagSet) {
	f.flagSet = flagSet
	flagSet.StringVarP(
		&f.Dictionary,
		DictionaryFlagName,
		"d",
		"",
		"Path to the project dictionary file (default: autodetect in the working directory)",
	)
	flagSet.StringVar(
		&f.IPAddress,
		IPAddressFlagName,
		"127.0.0.1",
		"IP address or hostname of the GDS HTTP API",
	)
	flagSet.IntVar(
		&f.Port,
		PortFlagName,
		defaultPort,
		"Port of the GDS HTTP API",
	)
	flagSet.StringVar(
		&f.Config,
		ConfigFlagName,
		"",
		"Path to a gdsctl.yaml config file (default: gdsctl.yaml in the working directory, if present)",
	)
}

// Resolve fills in connection values the user omitted: first from the
// optional gdsctl.yaml config file, then by resolving the project dictionary
// path. Flags the user set explicitly are never overwritten. Resolution
// failures are invalid argument errors.
func (f *ConnectionFlags) Resolve() error {
	workingDirPath, err := os.Getwd()
	if err != nil {
		return err
	}
	config, err := gdsconfig.ReadConfig(f.Config, workingDirPath)
	if err != nil {
		return NewInvalidArgumentError(err.Error())
	}
	if !f.flagSet.Changed(IPAddressFlagName) && config.Address != "" {
		f.IPAddress = config.Address
	}
	if !f.flagSet.Changed(PortFlagName) && config.Port != 0 {
		f.Port = config.Port
	}
	if f.Dictionary == "" {
		f.Dictionary = config.Dictionary
	}
	dictionaryPath, err := gdsdict.ResolvePath(f.Dictionary, workingDirPath)
	if err != nil {
		if errors.Is(err, gdsdict.ErrDictionaryNotFound) || errors.Is(err, gdsdict.ErrInvalidDictionary) {
			return NewInvalidArgumentError(err.Error())
		}
		return err
	}
	f.Dictionary = dictionaryPath
	return nil
}

// SearchFlags is the shared argument group for filtering channels, commands,
// or events. The command name is substituted into the help text.
type SearchFlags struct {
	// IDs are numeric IDs to filter by.
	IDs []uint
	// Components are component names to filter by.
	Components []string
	// Search is a substring the printed output must contain.
	Search string
	// JSON prints entries as JSON instead of formatted lines.
	JSON bool

	commandName string
}

// NewSearchFlags creates a fresh search argument group for the named command.
func NewSearchFlags(commandName string) *SearchFlags {
	return &SearchFlags{
		commandName: commandName,
	}
}

// Bind registers the flag definitions with the given flag set.
func (f *SearchFlags) Bind(flagSet *pflag.FlagSet) {
	flagSet.UintSliceVarP(
		&f.IDs,
		IDsFlagName,
		"i",
		nil,
		fmt.Sprintf("Only show %s matching the given ID(s)", f.commandName),
	)
	flagSet.StringSliceVarP(
		&f.Components,
		ComponentsFlagName,
		"c",
		nil,
		fmt.Sprintf("Only show %s from the given component(s)", f.commandName),
	)
	flagSet.StringVarP(
		&f.Search,
		SearchFlagName,
		"s",
		"",
		fmt.Sprintf("Only show %s whose printed output contains the given string", f.commandName),
	)
	flagSet.BoolVarP(
		&f.JSON,
		JSONFlagName,
		"j",
		false,
		fmt.Sprintf("Print each of the %s as JSON", f.commandName),
	)
}

// Filter returns the filter predicate for the bound flag values.
func (f *SearchFlags) Filter() gdsfilter.Filter {
	ids := make([]uint32, 0, len(f.IDs))
	for _, id := range f.IDs {
		ids = append(ids, uint32(id))
	}
	if len(ids) == 0 {
		ids = nil
	}
	return gdsfilter.Filter{
		IDs:        ids,
		Components: f.Components,
		Search:     f.Search,
	}
}

// RetrievalFlags is the shared argument group controlling how long and how
// much to retrieve. The command name is substituted into the help text.
type RetrievalFlags struct {
	// Timeout is how many seconds to wait for new entries, 0 for no timeout.
	Timeout float64
	// Limit stops retrieval after this many entries, 0 for no limit.
	Limit int

	commandName string
}

// NewRetrievalFlags creates a fresh retrieval argument group for the named command.
func NewRetrievalFlags(commandName string) *RetrievalFlags {
	return &RetrievalFlags{
		commandName: commandName,
	}
}

// Bind registers the flag definitions with the given flag set, skipping any
// flag named in exclude. Callers pass an explicit (possibly empty) exclusion
// list so a command can reuse the group minus flags that do not apply.
func (f *RetrievalFlags) Bind(flagSet *pflag.FlagSet, exclude ...string) {
	excluded := make(map[string]struct{}, len(exclude))
	for _, flagName := range exclude {
		excluded[flagName] = struct{}{}
	}
	if _, ok := excluded[TimeoutFlagName]; !ok {
		flagSet.Float64VarP(
			&f.Timeout,
			TimeoutFlagName,
			"t",
			0,
			fmt.Sprintf("Wait at most this many seconds for new %s, 0 to wait indefinitely", f.commandName),
		)
	}
	if _, ok := excluded[LimitFlagName]; !ok {
		flagSet.IntVarP(
			&f.Limit,
			LimitFlagName,
			"L",
			0,
			fmt.Sprintf("Stop after printing this many %s, 0 for no limit", f.commandName),
		)
	}
}

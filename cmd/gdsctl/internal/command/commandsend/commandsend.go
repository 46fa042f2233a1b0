// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package commandsend implements the "command-send" subcommand.
package commandsend

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/groundsys/gdsctl/cmd/gdsctl/internal/gdsctlcmd"
	"github.com/groundsys/gdsctl/internal/gds/gdsclient"
	"github.com/groundsys/gdsctl/internal/gds/gdscommandsend"
	"github.com/groundsys/gdsctl/internal/gds/gdsdict"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// name is the subcommand name.
	name = "command-send"
	// argumentsFlagName is the flag name for raw command argument tokens.
	argumentsFlagName = "arguments"
	// listFlagName is the flag name for list mode.
	listFlagName = "list"
)

// NewDescriptor returns the descriptor for the command-send subcommand,
// which sends a command to the running instance or lists available commands.
func NewDescriptor(logger *slog.Logger) gdsctlcmd.Descriptor {
	return &descriptor{
		logger:          logger,
		connectionFlags: gdsctlcmd.NewConnectionFlags(),
		searchFlags:     gdsctlcmd.NewSearchFlags("commands"),
		retrievalFlags:  gdsctlcmd.NewRetrievalFlags("commands"),
	}
}

type descriptor struct {
	logger          *slog.Logger
	connectionFlags *gdsctlcmd.ConnectionFlags
	searchFlags     *gdsctlcmd.SearchFlags
	retrievalFlags  *gdsctlcmd.RetrievalFlags
	// arguments are raw string tokens; their types are only known to the
	// dictionary, so interpretation is deferred to the sending layer.
	arguments []string
	list      bool
}

func (*descriptor) Name() string {
	return name
}

func (*descriptor) Short() string {
	return "Send the given command to the running instance, in \"<component>.<name>\" form"
}

func (*descriptor) Args() cobra.PositionalArgs {
	// The positional command-name is optional; list mode goes without one.
	return cobra.MaximumNArgs(1)
}

func (d *descriptor) BindFlags(flagSet *pflag.FlagSet) {
	d.connectionFlags.Bind(flagSet)
	flagSet.StringArrayVar(
		&d.arguments,
		argumentsFlagName,
		nil,
		"Argument to the command being sent, repeat the flag once per argument",
	)
	flagSet.BoolVarP(
		&d.list,
		listFlagName,
		"l",
		false,
		"Print a list of all available commands instead of sending one",
	)
	d.searchFlags.Bind(flagSet)
	d.retrievalFlags.Bind(flagSet, gdsctlcmd.TimeoutFlagName)
}

func (d *descriptor) Validate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !d.list {
		return gdsctlcmd.NewInvalidArgumentError("one of command-name or --list is required")
	}
	return d.connectionFlags.Resolve()
}

func (d *descriptor) Run(ctx context.Context, cmd *cobra.Command, args []string) error {
	var commandName string
	if len(args) > 0 {
		commandName = args[0]
	}
	// The handler is only constructed once this branch is selected.
	client := gdsclient.NewClient(d.logger, d.connectionFlags.IPAddress, d.connectionFlags.Port)
	command := gdscommandsend.NewCommand(d.logger, client, cmd.OutOrStdout())
	return command.Handle(ctx, &gdscommandsend.Request{
		DictionaryPath: d.connectionFlags.Dictionary,
		CommandName:    commandName,
		Arguments:      d.arguments,
		List:           d.list,
		Filter:         d.searchFlags.Filter(),
		Limit:          d.retrievalFlags.Limit,
		JSON:           d.searchFlags.JSON,
	})
}

// CompleteArgs shell-completes the positional command-name against the
// project dictionary's command-name index.
//
// Completion runs as its own process with only partially parsed flags, so
// the dictionary is resolved from whatever the shell has provided so far.
// Resolution failures must never break the shell session: they downgrade to
// a completion-channel warning and an empty candidate list.
func (d *descriptor) CompleteArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		// The single positional is already present.
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	workingDirPath, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	dictionaryPath, err := gdsdict.ResolvePath(d.connectionFlags.Dictionary, workingDirPath)
	if err != nil {
		cobra.CompErrorln("no project dictionary found to complete command names")
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	dictionary, err := gdsdict.Load(dictionaryPath)
	if err != nil {
		cobra.CompErrorln("no project dictionary found to complete command names")
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, commandName := range dictionary.CommandNames() {
		if strings.HasPrefix(commandName, toComplete) {
			completions = append(completions, commandName)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

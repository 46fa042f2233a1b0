// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package channels implements the "channels" subcommand.
package channels

import (
	"context"
	"log/slog"

	"github.com/groundsys/gdsctl/cmd/gdsctl/internal/gdsctlcmd"
	"github.com/groundsys/gdsctl/internal/gds/gdschannels"
	"github.com/groundsys/gdsctl/internal/gds/gdsclient"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// name is the subcommand name.
const name = "channels"

// NewDescriptor returns the descriptor for the channels subcommand, which
// prints new telemetry channel readings received from the running instance.
func NewDescriptor(logger *slog.Logger) gdsctlcmd.Descriptor {
	return &descriptor{
		logger:          logger,
		connectionFlags: gdsctlcmd.NewConnectionFlags(),
		searchFlags:     gdsctlcmd.NewSearchFlags(name),
		retrievalFlags:  gdsctlcmd.NewRetrievalFlags(name),
	}
}

type descriptor struct {
	logger          *slog.Logger
	connectionFlags *gdsctlcmd.ConnectionFlags
	searchFlags     *gdsctlcmd.SearchFlags
	retrievalFlags  *gdsctlcmd.RetrievalFlags
}

func (*descriptor) Name() string {
	return name
}

func (*descriptor) Short() string {
	return "Print new telemetry channel readings received from the running instance, sorted by timestamp"
}

func (*descriptor) Args() cobra.PositionalArgs {
	return cobra.NoArgs
}

func (d *descriptor) BindFlags(flagSet *pflag.FlagSet) {
	d.connectionFlags.Bind(flagSet)
	d.searchFlags.Bind(flagSet)
	d.retrievalFlags.Bind(flagSet)
}

func (d *descriptor) Validate(cmd *cobra.Command, args []string) error {
	return d.connectionFlags.Resolve()
}

func (d *descriptor) Run(ctx context.Context, cmd *cobra.Command, args []string) error {
	// The handler is only constructed once this branch is selected.
	client := gdsclient.NewClient(d.logger, d.connectionFlags.IPAddress, d.connectionFlags.Port)
	command := gdschannels.NewCommand(d.logger, client, cmd.OutOrStdout())
	return command.Handle(ctx, &gdschannels.Request{
		Filter:  d.searchFlags.Filter(),
		Timeout: d.retrievalFlags.Timeout,
		Limit:   d.retrievalFlags.Limit,
		JSON:    d.searchFlags.JSON,
	})
}

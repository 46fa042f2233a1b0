// Copyright 2026 Peter Edge
//
// All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/groundsys/gdsctl/cmd/gdsctl/internal/command/channels"
	"github.com/groundsys/gdsctl/cmd/gdsctl/internal/command/commandsend"
	"github.com/groundsys/gdsctl/cmd/gdsctl/internal/command/events"
	"github.com/groundsys/gdsctl/cmd/gdsctl/internal/gdsctlcmd"
	"github.com/spf13/cobra"
)

// version is the gdsctl version reported by -V/--version.
const version = "1.0.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := newRootCommand("gdsctl", logger).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCommand creates the root gdsctl command with all sub-commands registered.
func newRootCommand(name string, logger *slog.Logger) *cobra.Command {
	var printVersion bool
	rootCommand := &cobra.Command{
		Use:   name,
		Short: "Interact with a running ground data system (GDS) instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
				return err
			}
			// No subcommand given: print the full help and succeed.
			return cmd.Help()
		},
	}
	rootCommand.Flags().BoolVarP(&printVersion, "version", "V", false, "Print the gdsctl version and exit")
	registry := gdsctlcmd.NewRegistry()
	registry.Inject(rootCommand, channels.NewDescriptor(logger))
	registry.Inject(rootCommand, commandsend.NewDescriptor(logger))
	registry.Inject(rootCommand, events.NewDescriptor(logger))
	return rootCommand
}

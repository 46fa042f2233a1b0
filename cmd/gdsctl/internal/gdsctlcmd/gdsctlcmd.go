// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdsctlcmd provides the subcommand contract and shared argument
// groups for gdsctl commands.
//
// Every subcommand implements Descriptor and is registered into a Registry,
// which builds the cobra command for it: create the subparser, bind the
// flags, and attach validation and execution. Subcommands compose their flag
// surface from the shared connection, search, and retrieval groups.
package gdsctlcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Descriptor is the contract every gdsctl subcommand implements.
//
// Descriptors are stateless apart from their bound flag values: they are
// registered once at startup and live for a single parse/validate/execute
// sequence.
type Descriptor interface {
	// Name returns the subcommand name. Names must be unique within a Registry.
	Name() string
	// Short returns the one-line subcommand description.
	Short() string
	// Args returns the positional argument contract for the subcommand.
	Args() cobra.PositionalArgs
	// BindFlags registers the subcommand's flags, composed from the shared
	// argument groups plus any command-specific flags.
	BindFlags(flagSet *pflag.FlagSet)
	// Validate checks the parsed flags and positional arguments before
	// execution. It may fill in values the user omitted (notably the
	// dictionary path) but never overwrites values the user set explicitly.
	Validate(cmd *cobra.Command, args []string) error
	// Run executes the subcommand. Implementations construct their handler
	// here so unselected subcommands pay no startup cost.
	Run(ctx context.Context, cmd *cobra.Command, args []string) error
}

// ArgCompleter is implemented by descriptors that shell-complete their
// positional argument.
type ArgCompleter interface {
	// CompleteArgs returns completion candidates for the positional argument.
	// It runs in a separate completion process with only partially parsed
	// flags and must never fail the shell session.
	CompleteArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)
}

// Registry is the subcommand table mapping names to descriptors.
type Registry struct {
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
	}
}

// Inject registers the descriptor and adds it to the parent command as a
// subcommand. Registering two descriptors with the same name is a
// configuration error and panics.
func (r *Registry) Inject(parent *cobra.Command, descriptor Descriptor) {
	name := descriptor.Name()
	if _, ok := r.descriptors[name]; ok {
		panic(fmt.Sprintf("subcommand %s already registered", name))
	}
	r.descriptors[name] = descriptor
	cmd := &cobra.Command{
		Use:   name,
		Short: descriptor.Short(),
		Args:  descriptor.Args(),
		// Runtime failures do not reprint usage; validation failures below
		// re-enable it.
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := descriptor.Validate(cmd, args); err != nil {
				if IsInvalidArgumentError(err) {
					cmd.SilenceUsage = false
				}
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return descriptor.Run(cmd.Context(), cmd, args)
		},
	}
	descriptor.BindFlags(cmd.Flags())
	if completer, ok := descriptor.(ArgCompleter); ok {
		cmd.ValidArgsFunction = completer.CompleteArgs
	}
	parent.AddCommand(cmd)
}

// Lookup returns the descriptor registered under name and whether it exists.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	descriptor, ok := r.descriptors[name]
	return descriptor, ok
}

// NewInvalidArgumentError returns an error that is reported through the
// parser's usage-error path: the message is printed along with the command
// usage and the process exits nonzero.
func NewInvalidArgumentError(message string) error {
	return &invalidArgumentError{message: message}
}

// NewInvalidArgumentErrorf returns a formatted invalid argument error.
func NewInvalidArgumentErrorf(format string, args ...any) error {
	return &invalidArgumentError{message: fmt.Sprintf(format, args...)}
}

// IsInvalidArgumentError reports whether err is an invalid argument error.
func IsInvalidArgumentError(err error) bool {
	var invalidArgumentErr *invalidArgumentError
	return errors.As(err, &invalidArgumentErr)
}

// *** PRIVATE ***

type invalidArgumentError struct {
	message string
}

func (e *invalidArgumentError) Error() string {
	return e.message
}

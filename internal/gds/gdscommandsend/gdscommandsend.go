// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdscommandsend implements the business logic of the "command-send"
// command: listing available commands and sending one to the instance.
package gdscommandsend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/groundsys/gdsctl/internal/gds/gdsclient"
	"github.com/groundsys/gdsctl/internal/gds/gdsdict"
	"github.com/groundsys/gdsctl/internal/gds/gdsfilter"
	"github.com/groundsys/gdsctl/internal/pkg/cliio"
)

// Command handles the "command-send" subcommand with validated arguments.
type Command interface {
	// Handle either lists available commands (list mode) or sends one.
	Handle(ctx context.Context, request *Request) error
}

// Request is the validated argument record for the command-send command.
type Request struct {
	// DictionaryPath is the resolved project dictionary path.
	DictionaryPath string
	// CommandName is the full name of the command to send; empty in list mode.
	CommandName string
	// Arguments are the raw string argument tokens for the command.
	//
	// Tokens stay untyped at this layer: the dictionary declares the types,
	// and conversion happens where the dictionary metadata is applied.
	Arguments []string
	// List requests printing available commands instead of sending one.
	List bool
	// Filter restricts which commands list mode prints.
	Filter gdsfilter.Filter
	// Limit stops list mode output after this many commands, 0 for no limit.
	Limit int
	// JSON prints list-mode entries as JSON instead of a table.
	JSON bool
}

// NewCommand creates a new command-send command.
func NewCommand(logger *slog.Logger, client gdsclient.Client, writer io.Writer) Command {
	return &command{
		logger: logger,
		client: client,
		writer: writer,
	}
}

type command struct {
	logger *slog.Logger
	client gdsclient.Client
	writer io.Writer
}

func (c *command) Handle(ctx context.Context, request *Request) error {
	dictionary, err := gdsdict.Load(request.DictionaryPath)
	if err != nil {
		return err
	}
	if request.List {
		return c.list(dictionary, request)
	}
	return c.send(ctx, dictionary, request)
}

// *** PRIVATE ***

// listEntry is the JSON-serializable list-mode representation of a command.
type listEntry struct {
	Name        string   `json:"name"`
	Opcode      uint32   `json:"opcode"`
	Description string   `json:"description"`
	Arguments   []string `json:"arguments"`
}

func (c *command) list(dictionary *gdsdict.Dictionary, request *Request) error {
	var entries []listEntry
	for _, name := range dictionary.CommandNames() {
		commandEntry := dictionary.Commands[name]
		text := name + " " + commandEntry.Description
		if !request.Filter.Matches(commandEntry.Opcode, name, text) {
			continue
		}
		entries = append(entries, listEntry{
			Name:        name,
			Opcode:      commandEntry.Opcode,
			Description: commandEntry.Description,
			Arguments:   argumentSignature(commandEntry),
		})
		if request.Limit > 0 && len(entries) >= request.Limit {
			break
		}
	}
	if request.JSON {
		return cliio.WriteJSON(c.writer, entries...)
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Name,
			strconv.FormatUint(uint64(entry.Opcode), 10),
			strings.Join(entry.Arguments, " "),
			entry.Description,
		})
	}
	return cliio.WriteTable(c.writer, []string{"NAME", "OPCODE", "ARGUMENTS", "DESCRIPTION"}, rows)
}

func (c *command) send(ctx context.Context, dictionary *gdsdict.Dictionary, request *Request) error {
	commandEntry, ok := dictionary.Commands[request.CommandName]
	if !ok {
		return fmt.Errorf("command %q not found in dictionary, use --list to see available commands", request.CommandName)
	}
	if len(request.Arguments) != len(commandEntry.Arguments) {
		return fmt.Errorf(
			"command %q takes %d argument(s) (%s), got %d",
			request.CommandName,
			len(commandEntry.Arguments),
			strings.Join(argumentSignature(commandEntry), " "),
			len(request.Arguments),
		)
	}
	if err := c.client.SendCommand(ctx, request.CommandName, request.Arguments); err != nil {
		return err
	}
	c.logger.Debug("command sent", "name", request.CommandName, "opcode", commandEntry.Opcode)
	_, err := fmt.Fprintf(c.writer, "Sent %s (opcode %d)\n", request.CommandName, commandEntry.Opcode)
	return err
}

// argumentSignature renders a command's declared arguments as "name:type" tokens.
func argumentSignature(commandEntry gdsdict.CommandEntry) []string {
	signature := make([]string, 0, len(commandEntry.Arguments))
	for _, argument := range commandEntry.Arguments {
		signature = append(signature, argument.Name+":"+argument.Type)
	}
	return signature
}

// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdsevents implements the business logic of the "events" command:
// retrieving, filtering, and printing event records.
package gdsevents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/groundsys/gdsctl/internal/gds/gdsclient"
	"github.com/groundsys/gdsctl/internal/gds/gdsfilter"
	"github.com/groundsys/gdsctl/internal/pkg/cliio"
)

// pollInterval is how long to wait between history polls when no new
// records arrived.
const pollInterval = time.Second

// Command handles the "events" subcommand with validated arguments.
type Command interface {
	// Handle retrieves and prints event records until the timeout expires
	// or the limit is reached.
	Handle(ctx context.Context, request *Request) error
}

// Request is the validated argument record for the events command.
type Request struct {
	// Filter restricts which records are printed.
	Filter gdsfilter.Filter
	// Timeout is how many seconds to wait for new records, 0 for no timeout.
	Timeout float64
	// Limit stops retrieval after this many records were printed, 0 for no limit.
	Limit int
	// JSON prints each record as JSON instead of a formatted line.
	JSON bool
}

// NewCommand creates a new events command.
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
	if request.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(request.Timeout*float64(time.Second)))
		defer cancel()
	}
	c.logger.Debug("retrieving event records", "timeout", request.Timeout, "limit", request.Limit)
	var after uint64
	var printed int
	for {
		records, err := c.client.GetEvents(ctx, after)
		if err != nil {
			// Timeout expiry is normal completion, not an error.
			if errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		for _, record := range records {
			if record.Index > after {
				after = record.Index
			}
			line := formatRecord(record)
			if !request.Filter.Matches(record.ID, record.Name, line) {
				continue
			}
			if request.JSON {
				if err := cliio.WriteJSON(c.writer, record); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintln(c.writer, line); err != nil {
					return err
				}
			}
			printed++
			if request.Limit > 0 && printed >= request.Limit {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil
			}
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// *** PRIVATE ***

// formatRecord renders a record as a single display line. This is also the
// text the --search filter matches against.
func formatRecord(record gdsclient.EventRecord) string {
	return fmt.Sprintf("%s %s (%d) %s: %s", record.Time, record.Name, record.ID, record.Severity, record.Message)
}

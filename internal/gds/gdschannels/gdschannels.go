// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdschannels implements the business logic of the "channels" command:
// retrieving, filtering, and printing telemetry channel readings.
package gdschannels

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
// readings arrived.
const pollInterval = time.Second

// Command handles the "channels" subcommand with validated arguments.
type Command interface {
	// Handle retrieves and prints channel readings until the timeout expires
	// or the limit is reached.
	Handle(ctx context.Context, request *Request) error
}

// Request is the validated argument record for the channels command.
type Request struct {
	// Filter restricts which readings are printed.
	Filter gdsfilter.Filter
	// Timeout is how many seconds to wait for new readings, 0 for no timeout.
	Timeout float64
	// Limit stops retrieval after this many readings were printed, 0 for no limit.
	Limit int
	// JSON prints each reading as JSON instead of a formatted line.
	JSON bool
}

// NewCommand creates a new channels command.
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
	c.logger.Debug("retrieving channel readings", "timeout", request.Timeout, "limit", request.Limit)
	var after uint64
	var printed int
	for {
		readings, err := c.client.GetChannels(ctx, after)
		if err != nil {
			// Timeout expiry is normal completion, not an error.
			if errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		for _, reading := range readings {
			if reading.Index > after {
				after = reading.Index
			}
			line := formatReading(reading)
			if !request.Filter.Matches(reading.ID, reading.Name, line) {
				continue
			}
			if request.JSON {
				if err := cliio.WriteJSON(c.writer, reading); err != nil {
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

// formatReading renders a reading as a single display line. This is also the
// text the --search filter matches against.
func formatReading(reading gdsclient.ChannelReading) string {
	return fmt.Sprintf("%s %s (%d) = %s", reading.Time, reading.Name, reading.ID, reading.Value)
}

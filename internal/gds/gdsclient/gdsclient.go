// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package gdsclient provides a client for the GDS HTTP API.
//
// The GDS exposes telemetry channel readings and event records as JSON
// history endpoints, and accepts commands as JSON posts. Values are
// transported as pre-rendered strings; this client never decodes telemetry.
package gdsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/groundsys/gdsctl/internal/pkg/backoff"
)

const (
	// maxAttempts is the number of attempts for a single API call.
	maxAttempts = 3
	// initialDelay is the initial retry delay.
	initialDelay = 200 * time.Millisecond
	// maxDelay is the maximum retry delay.
	maxDelay = 2 * time.Second
)

// ChannelReading is a single telemetry channel reading from the GDS history.
type ChannelReading struct {
	// Index is the monotonically increasing history index of this reading.
	Index uint64 `json:"index"`
	// ID is the numeric channel ID.
	ID uint32 `json:"id"`
	// Name is the full channel name ("<component>.<name>").
	Name string `json:"name"`
	// Time is the reading timestamp as rendered by the GDS.
	Time string `json:"time"`
	// Value is the reading value as rendered by the GDS.
	Value string `json:"value"`
}

// EventRecord is a single event record from the GDS history.
type EventRecord struct {
	// Index is the monotonically increasing history index of this record.
	Index uint64 `json:"index"`
	// ID is the numeric event ID.
	ID uint32 `json:"id"`
	// Name is the full event name ("<component>.<name>").
	Name string `json:"name"`
	// Severity is the event severity name.
	Severity string `json:"severity"`
	// Time is the event timestamp as rendered by the GDS.
	Time string `json:"time"`
	// Message is the formatted event message.
	Message string `json:"message"`
}

// Client is the interface for talking to a running GDS instance.
type Client interface {
	// GetChannels fetches channel readings with history index greater than after.
	GetChannels(ctx context.Context, after uint64) ([]ChannelReading, error)
	// GetEvents fetches event records with history index greater than after.
	GetEvents(ctx context.Context, after uint64) ([]EventRecord, error)
	// SendCommand sends the named command with raw string argument tokens.
	// Argument conversion to dictionary types happens on the GDS side.
	SendCommand(ctx context.Context, name string, arguments []string) error
}

// NewClient creates a new GDS client for the given address and port.
func NewClient(logger *slog.Logger, address string, port int) Client {
	return &client{
		logger:     logger,
		baseURL:    fmt.Sprintf("http://%s:%d", address, port),
		httpClient: http.DefaultClient,
	}
}

type client struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
}

func (c *client) GetChannels(ctx context.Context, after uint64) ([]ChannelReading, error) {
	body, err := c.get(ctx, "/channels", after)
	if err != nil {
		return nil, err
	}
	var channelsResp channelsResponse
	if err := json.Unmarshal(body, &channelsResp); err != nil {
		return nil, fmt.Errorf("parsing channels response: %w", err)
	}
	return channelsResp.Channels, nil
}

func (c *client) GetEvents(ctx context.Context, after uint64) ([]EventRecord, error) {
	body, err := c.get(ctx, "/events", after)
	if err != nil {
		return nil, err
	}
	var eventsResp eventsResponse
	if err := json.Unmarshal(body, &eventsResp); err != nil {
		return nil, fmt.Errorf("parsing events response: %w", err)
	}
	return eventsResp.Events, nil
}

func (c *client) SendCommand(ctx context.Context, name string, arguments []string) error {
	requestBody, err := json.Marshal(commandRequest{
		Name:      name,
		Arguments: arguments,
	})
	if err != nil {
		return err
	}
	_, err = backoff.Retry(
		ctx,
		maxAttempts,
		initialDelay,
		maxDelay,
		func(ctx context.Context) ([]byte, bool, error) {
			return c.do(ctx, http.MethodPost, c.baseURL+"/commands", requestBody)
		},
	)
	return err
}

// *** PRIVATE ***

// channelsResponse is the JSON response from the channels history endpoint.
type channelsResponse struct {
	Channels []ChannelReading `json:"channels"`
}

// eventsResponse is the JSON response from the events history endpoint.
type eventsResponse struct {
	Events []EventRecord `json:"events"`
}

// commandRequest is the JSON request body for sending a command.
type commandRequest struct {
	Name      string   `json:"name"`
	Arguments []string `json:"arguments"`
}

// get performs a retried GET against a history endpoint.
func (c *client) get(ctx context.Context, path string, after uint64) ([]byte, error) {
	reqURL := c.baseURL + path + "?after=" + url.QueryEscape(strconv.FormatUint(after, 10))
	return backoff.Retry(
		ctx,
		maxAttempts,
		initialDelay,
		maxDelay,
		func(ctx context.Context) ([]byte, bool, error) {
			return c.do(ctx, http.MethodGet, reqURL, nil)
		},
	)
}

// do performs a single HTTP request.
//
// Connection errors and 5xx responses are retryable, everything else is not.
func (c *client) do(ctx context.Context, method string, reqURL string, requestBody []byte) ([]byte, bool, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		bodyReader = bytes.NewReader(requestBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, false, err
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed, may retry", "url", reqURL, "error", err)
		return nil, true, fmt.Errorf("connecting to GDS: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Debug("server error, may retry", "url", reqURL, "status", resp.StatusCode)
		return nil, true, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, false, nil
}

// Copyright 2026 Peter Edge
//
// All rights reserved.

package gdscommandsend

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/groundsys/gdsctl/internal/gds/gdsclient"
	"github.com/groundsys/gdsctl/internal/gds/gdsdict"
	"github.com/groundsys/gdsctl/internal/gds/gdsfilter"
	"github.com/stretchr/testify/require"
)

const testDictionaryPath = "testdata/RefTopologyDictionary.json"

func TestHandleList(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	command := NewCommand(slog.New(slog.DiscardHandler), &fakeClient{}, &buffer)
	err := command.Handle(context.Background(), &Request{
		DictionaryPath: testDictionaryPath,
		List:           true,
	})
	require.NoError(t, err)
	output := buffer.String()
	require.Contains(t, output, "NAME")
	require.Contains(t, output, "cmdDisp.CMD_NO_OP")
	require.Contains(t, output, "eventLogger.SET_EVENT_FILTER")
	require.Contains(t, output, "severity:FilterSeverity")
}

func TestHandleListFiltered(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	command := NewCommand(slog.New(slog.DiscardHandler), &fakeClient{}, &buffer)
	err := command.Handle(context.Background(), &Request{
		DictionaryPath: testDictionaryPath,
		List:           true,
		Filter:         gdsfilter.Filter{Components: []string{"eventLogger"}},
	})
	require.NoError(t, err)
	output := buffer.String()
	require.Contains(t, output, "eventLogger.SET_EVENT_FILTER")
	require.NotContains(t, output, "cmdDisp.CMD_NO_OP")
}

func TestHandleListJSON(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	command := NewCommand(slog.New(slog.DiscardHandler), &fakeClient{}, &buffer)
	err := command.Handle(context.Background(), &Request{
		DictionaryPath: testDictionaryPath,
		List:           true,
		Filter:         gdsfilter.Filter{IDs: []uint32{1280}},
		JSON:           true,
	})
	require.NoError(t, err)
	require.JSONEq(
		t,
		`{"name": "cmdDisp.CMD_NO_OP", "opcode": 1280, "description": "No-op command", "arguments": []}`,
		buffer.String(),
	)
}

func TestHandleSend(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	client := &fakeClient{}
	command := NewCommand(slog.New(slog.DiscardHandler), client, &buffer)
	err := command.Handle(context.Background(), &Request{
		DictionaryPath: testDictionaryPath,
		CommandName:    "eventLogger.SET_EVENT_FILTER",
		Arguments:      []string{"WARNING_LO", "ENABLED"},
	})
	require.NoError(t, err)
	require.Equal(t, "eventLogger.SET_EVENT_FILTER", client.sentName)
	require.Equal(t, []string{"WARNING_LO", "ENABLED"}, client.sentArguments)
	require.Equal(t, "Sent eventLogger.SET_EVENT_FILTER (opcode 1537)\n", buffer.String())
}

func TestHandleSendUnknownCommand(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	command := NewCommand(slog.New(slog.DiscardHandler), &fakeClient{}, &buffer)
	err := command.Handle(context.Background(), &Request{
		DictionaryPath: testDictionaryPath,
		CommandName:    "bogus.CMD",
	})
	require.ErrorContains(t, err, "not found in dictionary")
}

func TestHandleSendArityMismatch(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	command := NewCommand(slog.New(slog.DiscardHandler), &fakeClient{}, &buffer)
	err := command.Handle(context.Background(), &Request{
		DictionaryPath: testDictionaryPath,
		CommandName:    "eventLogger.SET_EVENT_FILTER",
		Arguments:      []string{"WARNING_LO"},
	})
	require.ErrorContains(t, err, "takes 2 argument(s)")
}

func TestHandleMissingDictionary(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	command := NewCommand(slog.New(slog.DiscardHandler), &fakeClient{}, &buffer)
	err := command.Handle(context.Background(), &Request{
		DictionaryPath: "testdata/nonexistent.json",
		List:           true,
	})
	require.ErrorIs(t, err, gdsdict.ErrDictionaryNotFound)
}

// fakeClient records the last sent command.
type fakeClient struct {
	sentName      string
	sentArguments []string
}

func (f *fakeClient) GetChannels(ctx context.Context, after uint64) ([]gdsclient.ChannelReading, error) {
	return nil, nil
}

func (f *fakeClient) GetEvents(ctx context.Context, after uint64) ([]gdsclient.EventRecord, error) {
	return nil, nil
}

func (f *fakeClient) SendCommand(ctx context.Context, name string, arguments []string) error {
	f.sentName = name
	f.sentArguments = arguments
	return nil
}

// Copyright 2026 Peter Edge
//
// All rights reserved.

package commandsend

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/groundsys/gdsctl/cmd/gdsctl/internal/gdsctlcmd"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testDictionaryData = `{
  "metadata": {"deploymentName": "Ref"},
  "commands": {
    "EVENTS.CMD_A": {"opcode": 1, "description": "a", "arguments": []},
    "EVENTS.CMD_B": {"opcode": 2, "description": "b", "arguments": []},
    "OTHER.CMD_C": {"opcode": 3, "description": "c", "arguments": []}
  },
  "channels": {},
  "events": {}
}`

func TestValidateRequiresCommandNameOrList(t *testing.T) {
	t.Chdir(writeDictionaryDir(t))
	d, cmd := newBoundDescriptor(t)

	// Neither a command name nor --list: usage error.
	err := d.Validate(cmd, nil)
	require.Error(t, err)
	require.True(t, gdsctlcmd.IsInvalidArgumentError(err))
	require.ErrorContains(t, err, "command-name or --list")

	// A command name alone is enough; default validation then resolves the dictionary.
	d, cmd = newBoundDescriptor(t)
	require.NoError(t, d.Validate(cmd, []string{"EVENTS.CMD_A"}))
	require.NotEmpty(t, d.connectionFlags.Dictionary)

	// --list alone is enough.
	d, cmd = newBoundDescriptor(t)
	require.NoError(t, cmd.Flags().Set(listFlagName, "true"))
	require.NoError(t, d.Validate(cmd, nil))
}

func TestValidateMissingDictionary(t *testing.T) {
	t.Chdir(t.TempDir())
	d, cmd := newBoundDescriptor(t)
	err := d.Validate(cmd, []string{"EVENTS.CMD_A"})
	require.Error(t, err)
	require.True(t, gdsctlcmd.IsInvalidArgumentError(err))
}

func TestCompleteArgs(t *testing.T) {
	t.Chdir(writeDictionaryDir(t))
	d, cmd := newBoundDescriptor(t)
	completions, directive := d.CompleteArgs(cmd, nil, "EV")
	require.Equal(t, []string{"EVENTS.CMD_A", "EVENTS.CMD_B"}, completions)
	require.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCompleteArgsNoPrefix(t *testing.T) {
	t.Chdir(writeDictionaryDir(t))
	d, cmd := newBoundDescriptor(t)
	completions, _ := d.CompleteArgs(cmd, nil, "")
	require.Equal(t, []string{"EVENTS.CMD_A", "EVENTS.CMD_B", "OTHER.CMD_C"}, completions)
}

func TestCompleteArgsExplicitDictionaryFlag(t *testing.T) {
	// The dictionary flag is honored even though full validation never ran.
	dictionaryPath := filepath.Join(writeDictionaryDir(t), "RefTopologyDictionary.json")
	t.Chdir(t.TempDir())
	d, cmd := newBoundDescriptor(t)
	require.NoError(t, cmd.Flags().Set(gdsctlcmd.DictionaryFlagName, dictionaryPath))
	completions, _ := d.CompleteArgs(cmd, nil, "OTHER")
	require.Equal(t, []string{"OTHER.CMD_C"}, completions)
}

func TestCompleteArgsNoDictionaryIsEmptyNotFatal(t *testing.T) {
	t.Chdir(t.TempDir())
	d, cmd := newBoundDescriptor(t)
	var completions []string
	var directive cobra.ShellCompDirective
	require.NotPanics(t, func() {
		completions, directive = d.CompleteArgs(cmd, nil, "EV")
	})
	require.Empty(t, completions)
	require.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCompleteArgsPositionalAlreadyGiven(t *testing.T) {
	t.Chdir(writeDictionaryDir(t))
	d, cmd := newBoundDescriptor(t)
	completions, _ := d.CompleteArgs(cmd, []string{"EVENTS.CMD_A"}, "EV")
	require.Empty(t, completions)
}

// newBoundDescriptor creates a descriptor with its flags bound to a fresh command.
func newBoundDescriptor(t *testing.T) (*descriptor, *cobra.Command) {
	t.Helper()
	d, ok := NewDescriptor(slog.New(slog.DiscardHandler)).(*descriptor)
	require.True(t, ok)
	cmd := &cobra.Command{Use: name}
	d.BindFlags(cmd.Flags())
	return d, cmd
}

// writeDictionaryDir writes the test dictionary into a new temp directory.
func writeDictionaryDir(t *testing.T) string {
	t.Helper()
	tempDirPath := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(tempDirPath, "RefTopologyDictionary.json"),
		[]byte(testDictionaryData),
		0o644,
	))
	return tempDirPath
}

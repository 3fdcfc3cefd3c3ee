package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// setConfigFile points the commands at cfgPath for the duration of the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()

	previous := configFile
	configFile = cfgPath
	t.Cleanup(func() {
		configFile = previous
	})
}

func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage: [invalid"), 0644))
	return cfgPath
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, name := range []string{"run", "batch", "version"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "opportunity-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRunCommand_Flags(t *testing.T) {
	flag := runCmd.Flags().Lookup("company")
	require.NotNil(t, flag, "run command should have --company flag")
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])

	jsonFlag := runCmd.Flags().Lookup("json")
	require.NotNil(t, jsonFlag, "run command should have --json flag")
	assert.Equal(t, "false", jsonFlag.DefValue)
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("companies-file")
	require.NotNil(t, flag, "batch command should have --companies-file flag")
	assert.Equal(t, "", flag.DefValue)

	limit := batchCmd.Flags().Lookup("limit")
	require.NotNil(t, limit, "batch command should have --limit flag")
	assert.Equal(t, "0", limit.DefValue)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "opportunity-cli dev\n", out.String())
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "root should have --%s flag", name)
		assert.Equal(t, "", flag.DefValue)
	}
}

package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlinker/internal/cli"
)

func TestLintCommand_SummaryOrderFlag(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	flag := lintCmd.Flags().Lookup("summary-order")
	require.NotNil(t, flag, "summary-order flag should exist")
	assert.Equal(t, "kinds", flag.DefValue)

	formatFlag := lintCmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	for _, format := range []string{"text", "table", "json", "sarif", "markdown", "summary"} {
		assert.Contains(t, formatFlag.Usage, format)
	}
}

func TestLintCommand_FlagDefaults(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	defaults := map[string]string{
		"format":     "text",
		"flavor":     "gfm",
		"threshold":  "0",
		"ngram-size": "2",
		"jobs":       "0",
	}
	for name, want := range defaults {
		flag := lintCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, want, flag.DefValue, name)
	}

	exclude := lintCmd.Flags().ShorthandLookup("e")
	require.NotNil(t, exclude)
	assert.Equal(t, "exclude", exclude.Name)
}

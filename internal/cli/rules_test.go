package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_FormatFlag(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	flag := cmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "json"})
	require.NoError(t, cmd.Execute())

	var kinds []kindInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &kinds))

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Name)
		assert.NotEmpty(t, k.Description, k.Name)
		assert.True(t, k.Enabled, k.Name)
	}
	assert.Equal(t, []string{"similar_files", "duplicate_alias", "broken_wikilink", "unlinked_text"}, names)
}

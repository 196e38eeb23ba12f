package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	root := rootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "generate", "sweep", "sync-occupancy"})

	gen, _, err := root.Find([]string{"generate"})
	require.NoError(t, err)
	assert.NotNil(t, gen.Flags().Lookup("days"))
}

func TestRootCmd_MissingConfig(t *testing.T) {
	root := rootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"sweep", "--config", "does-not-exist.toml"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.toml")
}

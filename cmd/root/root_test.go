package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RegistersPersistentFlags(t *testing.T) {
	Init()

	for _, name := range []string{"user", "data-dir", "output"} {
		flag := Cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
	}
	assert.Equal(t, "u", Cmd.PersistentFlags().Lookup("user").Shorthand)
}

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "cca-audit", Cmd.Use)
	assert.NotEmpty(t, Cmd.Short)
	assert.NotNil(t, Cmd.Run)
}

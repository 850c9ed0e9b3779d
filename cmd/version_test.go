package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUpdate_DevBuild(t *testing.T) {
	prev := version
	version = "dev"
	t.Cleanup(func() { version = prev })

	err := runUpdate(updateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development build")
}

func TestSetVersion(t *testing.T) {
	prevVersion, prevBuild := version, buildTime
	t.Cleanup(func() { SetVersion(prevVersion, prevBuild) })

	SetVersion("1.2.3", "2026-01-01")
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "2026-01-01", buildTime)
	assert.Equal(t, "1.2.3", rootCmd.Version)
}

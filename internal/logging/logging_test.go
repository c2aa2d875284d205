package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "assetflow.log")
	logger, closer, err := Setup("debug", path)
	require.NoError(t, err)

	logger.WithField("query", "atm").Debug("search complete")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "search complete")
	assert.Contains(t, string(data), "query=atm")
}

func TestSetupUnknownLevel(t *testing.T) {
	logger, closer, err := Setup("chatty", "")
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigureLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	defer Configure(Config{Level: "info", Pretty: true})

	Info().Msg("ignored")
	assert.Empty(t, buf.String())

	Warn().Msg("kept")
	assert.Contains(t, buf.String(), `"message":"kept"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestConfigureUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "chatty", Output: &buf})
	defer Configure(Config{Level: "info", Pretty: true})

	Debug().Msg("ignored")
	assert.Empty(t, buf.String())

	Info().Msg("kept")
	assert.Contains(t, buf.String(), `"message":"kept"`)
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "stockkeeper.db", c.DatabaseDSN)
	assert.Equal(t, "sha256", c.Hasher)
	assert.Equal(t, "log", c.SMSGateway)
	assert.Equal(t, 10*time.Minute, c.ChallengeTTL)
	assert.Equal(t, 587, c.SMTPPort)
	assert.Empty(t, c.SessionSecret)
}

func TestLoadConfig_NoArgsKeepsDefaults(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"stockkeeper"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "stockkeeper.db", cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Minute, cfg.ChallengeTTL)
}

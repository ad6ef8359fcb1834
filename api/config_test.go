package api

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tydonelson/ranked-choice/logging"
)

func TestReadConfig(t *testing.T) {
	logging.Log = logrus.New()
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "30s")
	require.NoError(t, SetupViper())

	conf := ReadConfig()

	assert.Equal(t, "sqlite", conf.Driver)
	assert.Equal(t, 9090, conf.Port)
	assert.Equal(t, 30*time.Second, conf.TTL)
	assert.Equal(t, "file:ranked-choice.db", conf.DSN)
	assert.Equal(t, 10, conf.VoteBurst)
	assert.InDelta(t, 5.0, conf.VotesPerSecond, 0.001)
	assert.Empty(t, conf.RedisAddr)
}

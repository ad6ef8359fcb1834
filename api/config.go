package api

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/tydonelson/ranked-choice/logging"
)

type Config struct {
	StorageConfig
	ServerConfig
	CacheConfig
	LimitsConfig
}

type StorageConfig struct {
	Driver           string
	TableNamePolls   string
	TableNameBallots string
	Endpoint         string
	DSN              string
}

type ServerConfig struct {
	Port int
	Mode string
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

type LimitsConfig struct {
	VotesPerSecond float64
	VoteBurst      int
}

var settingsOnce sync.Once

// SetupViper registers defaults and environment lookups. A config.yaml in
// the working directory is read when present.
func SetupViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("storage.driver", "dynamodb")
	viper.SetDefault("storage.dsn", "file:ranked-choice.db")
	viper.SetDefault("cache.ttl", 10*time.Minute)
	viper.SetDefault("limits.votesPerSecond", 5.0)
	viper.SetDefault("limits.voteBurst", 10)
	viper.SetDefault("log.level", "debug")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

func ReadConfig() *Config {
	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:           getStringOrDefault("storage.driver", "dynamodb"),
			TableNamePolls:   viper.GetString("storage.TableNamePolls"),
			TableNameBallots: viper.GetString("storage.TableNameBallots"),
			Endpoint:         viper.GetString("storage.endpoint"),
			DSN:              viper.GetString("storage.dsn"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
			Mode: viper.GetString("server.mode"),
		},
		CacheConfig: CacheConfig{
			RedisAddr: viper.GetString("cache.redisAddr"),
			TTL:       viper.GetDuration("cache.ttl"),
		},
		LimitsConfig: LimitsConfig{
			VotesPerSecond: viper.GetFloat64("limits.votesPerSecond"),
			VoteBurst:      getIntOrDefault("limits.voteBurst", 10),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Printf("Reading settings! storage driver: %s", conf.Driver)
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

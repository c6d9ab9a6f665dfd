package main

import (
	"flag"
	"io"

	"github.com/iov-one/htlc/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// Configuration keys. Each can be set using an environment variable with the
// ASWAPD_ prefix, for example ASWAPD_DB.
const (
	cfgDB       = "db"
	cfgBackend  = "backend"
	cfgLogLevel = "log_level"
	cfgFile     = "config"
)

const (
	backendIAVL = "iavl"
	backendBolt = "bolt"
)

type config struct {
	DB       string
	Backend  string
	LogLevel string
}

// loadConfig reads the configuration defaults. Values come from environment
// variables and an optional configuration file pointed to by ASWAPD_CONFIG.
// Environment variables take precedence over the file.
func loadConfig() (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("ASWAPD")
	v.AutomaticEnv()

	v.SetDefault(cfgDB, "./aswapd.db")
	v.SetDefault(cfgBackend, backendIAVL)
	v.SetDefault(cfgLogLevel, "info")

	if path := v.GetString(cfgFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot read config file %q: %s", path, err)
		}
	}

	return &config{
		DB:       v.GetString(cfgDB),
		Backend:  v.GetString(cfgBackend),
		LogLevel: v.GetString(cfgLogLevel),
	}, nil
}

// storeFlags registers flags common to all commands accessing the store.
// Configuration values are used as defaults.
func storeFlags(fl *flag.FlagSet, cfg *config) {
	fl.StringVar(&cfg.DB, "db", cfg.DB,
		"Path to the database. You can use ASWAPD_DB environment variable to set it.")
	fl.StringVar(&cfg.Backend, "backend", cfg.Backend,
		"Storage backend, either iavl or bolt. You can use ASWAPD_BACKEND environment variable to set it.")
	fl.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"Log level: debug, info, error or none. You can use ASWAPD_LOG_LEVEL environment variable to set it.")
}

// newLogger returns a logger writing to given output, filtered by the
// configured level.
func newLogger(w io.Writer, level string) (log.Logger, error) {
	allow, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "aswapd")
	return log.NewFilter(logger, allow), nil
}

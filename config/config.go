// Package config loads settings from flags, MANCALA_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug        = "debug"
	ConfigDifficulty   = "difficulty"
	ConfigStonesPerPit = "stones-per-pit"
	ConfigAIPlayer     = "ai-player"
	ConfigNatsURL      = "nats-url"
	ConfigBotSubject   = "bot-subject"
	ConfigBotTimeout   = "bot-timeout"
	ConfigCPUProfile   = "cpu-profile"
	ConfigConfigFile   = "config-file"
)

type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDifficulty, "medium")
	v.SetDefault(ConfigStonesPerPit, 4)
	v.SetDefault(ConfigAIPlayer, 1)
	v.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	v.SetDefault(ConfigBotSubject, "mancala.bot")
	v.SetDefault(ConfigBotTimeout, 30*time.Second)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigConfigFile, "")
}

// DefaultConfig has every key at its default, with no flags, file or
// environment applied.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load parses args and reads the environment and config file on top of the
// defaults. It returns the positional arguments left after the flags.
func (c *Config) Load(args []string) ([]string, error) {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("mancala", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigDifficulty, "medium", "AI difficulty: easy, medium, hard or expert")
	fs.Int(ConfigStonesPerPit, 4, "stones in each pit at the start of a game")
	fs.Int(ConfigAIPlayer, 1, "which player (0 or 1) the computer plays in the shell")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "the NATS server URL")
	fs.String(ConfigBotSubject, "mancala.bot", "the NATS subject the bot listens on")
	fs.Duration(ConfigBotTimeout, 30*time.Second, "longest time the bot may search one position")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigConfigFile, "", "a YAML, TOML or JSON config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}

	c.SetEnvPrefix("mancala")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return fs.Args(), nil
}
